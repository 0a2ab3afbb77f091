// Package http expone los casos de uso como API JSON sobre Fiber.
// Todas las respuestas usan el sobre {success, data, error, message}.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/analytics"
	"github.com/jhoicas/Compras-api/internal/application/auth"
	"github.com/jhoicas/Compras-api/internal/application/inventory"
	"github.com/jhoicas/Compras-api/internal/application/purchasing"
	"github.com/jhoicas/Compras-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	ProductUC     *usecase.ProductUseCase
	OrderUC       *purchasing.OrderUseCase
	EntryUC       *purchasing.EntryUseCase
	ExitUC        *inventory.ExitUseCase
	InstallmentUC *inventory.InstallmentUseCase
	ReportUC      *analytics.ReportUseCase
	JWTSecret     string
	Log           zerolog.Logger
}

// Router registra las rutas de la API. Los permisos por rol los aplican los casos de uso.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("", AuthMiddleware(deps.JWTSecret))

	userHandler := NewUserHandler(deps.UserUC, log)
	protected.Get("/users/me", userHandler.Me)
	protected.Post("/users", userHandler.Create)

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, log)
	products.Get("", productHandler.List)
	products.Post("", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC, log)
	orders.Get("", orderHandler.List)
	orders.Post("", orderHandler.Create)
	orders.Get("/:id", orderHandler.Get)
	orders.Put("/:id", orderHandler.Update)
	orders.Get("/:id/receiving", orderHandler.Receiving)
	orders.Put("/:id/approve", orderHandler.Approve)
	orders.Put("/:id/reject", orderHandler.Reject)
	orders.Put("/:id/items/:itemId/approve", orderHandler.ApproveItem)
	orders.Put("/:id/items/:itemId/reject", orderHandler.RejectItem)

	entries := protected.Group("/stock-entries")
	entryHandler := NewStockEntryHandler(deps.EntryUC, log)
	entries.Get("", entryHandler.List)
	entries.Post("", entryHandler.Create)
	entries.Get("/:id", entryHandler.Get)
	entries.Get("/:id/installments", entryHandler.Installments)

	exitHandler := NewStockExitHandler(deps.ExitUC, log)
	protected.Get("/stock-items", exitHandler.StockItems)
	exits := protected.Group("/stock-exits")
	exits.Get("", exitHandler.List)
	exits.Post("", exitHandler.Create)
	exits.Get("/:id", exitHandler.Get)
	exits.Put("/:id", exitHandler.Update)
	exits.Delete("/:id", exitHandler.Delete)
	exits.Put("/:id/confirm", exitHandler.Confirm)

	installments := protected.Group("/installments")
	installmentHandler := NewInstallmentHandler(deps.InstallmentUC, log)
	installments.Get("", installmentHandler.List)
	installments.Put("/:id/pay", installmentHandler.Pay)

	reportHandler := NewReportHandler(deps.ReportUC, log)
	protected.Get("/dashboard/stats", reportHandler.Dashboard)
	protected.Get("/reports/stock", reportHandler.Stock)
	protected.Get("/reports/stock/pdf", reportHandler.StockPDF)
}
