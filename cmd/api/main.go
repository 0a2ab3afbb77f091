// @title                       Compras API
// @version                     1.0
// @description                 API de compras e inventario: pedidos, entradas por nota fiscal, unidades, salidas y cuotas.
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"

	_ "github.com/jhoicas/Compras-api/docs"
	"github.com/jhoicas/Compras-api/internal/application/analytics"
	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
	"github.com/jhoicas/Compras-api/internal/infrastructure/cache"
	"github.com/jhoicas/Compras-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Compras-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Compras-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Compras-api/internal/interfaces/http"
	"github.com/jhoicas/Compras-api/pkg/config"
	"github.com/jhoicas/Compras-api/pkg/logger"
)

// txRunner lo cumplen memory.Store y postgres.TxRunner.
type txRunner interface {
	purchasing.TxRunner
	inventory.TxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		repos repository.Repos
		tx    txRunner
	)
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", postgres.RedactedDSN(cfg.DB)).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		log.Info().Str("dsn", postgres.RedactedDSN(cfg.DB)).Msg("conectado a PostgreSQL")
		if cfg.DB.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		repos = postgres.NewRepos(pool)
		tx = postgres.NewTxRunner(pool)
	default:
		store := memory.NewStore()
		repos = store.Repos()
		tx = store
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
	}

	// Caché de reportes: sin Redis los reportes se calculan en cada consulta.
	var (
		invalidator ports.ReportInvalidator
		reportCache analytics.ReportCache
	)
	if cfg.Redis.Enabled() {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis no responde; se reintenta en cada consulta")
		}
		rc := cache.NewReportCache(client, cfg.Redis.TTL)
		invalidator, reportCache = rc, rc
	}

	productUC := usecase.NewProductUseCase(repos.Products, invalidator, log.Component("products"))
	orderUC := purchasing.NewOrderUseCase(tx, repos, invalidator, log.Component("orders"))
	entryUC := purchasing.NewEntryUseCase(tx, repos, invalidator, log.Component("stock_entries"))
	exitUC := inventory.NewExitUseCase(tx, repos, invalidator, log.Component("stock_exits"))
	installmentUC := inventory.NewInstallmentUseCase(tx, repos, log.Component("installments"))
	reportUC := analytics.NewReportUseCase(repos, reportCache, infrapdf.NewStockReportGenerator(cfg.App.Name), log.Component("reports"))

	authUC := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log.Component("auth"))
	created, err := authUC.SeedAdmin(ctx, auth.AdminSeed{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("crear administrador inicial")
	}
	if created {
		log.Info().Str("email", cfg.Seed.AdminEmail).Msg("administrador inicial creado")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Compras API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        usecase.NewUserUseCase(repos.Users, log.Component("users")),
		ProductUC:     productUC,
		OrderUC:       orderUC,
		EntryUC:       entryUC,
		ExitUC:        exitUC,
		InstallmentUC: installmentUC,
		ReportUC:      reportUC,
		JWTSecret:     cfg.JWT.Secret,
		Log:           log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
