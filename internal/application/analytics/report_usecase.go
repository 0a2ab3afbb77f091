package analytics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/inventory"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ReportUseCase genera el dashboard y el reporte de stock.
//
// Fuente de datos: los repositorios de lectura (fuera de transacción). No guarda estado propio;
// la caché es opcional y se invalida desde los casos de uso que escriben.
type ReportUseCase struct {
	repos    repository.Repos
	cache    ReportCache
	renderer StockReportRenderer
	log      zerolog.Logger
}

// NewReportUseCase construye el caso de uso. cache y renderer pueden ser nil.
func NewReportUseCase(repos repository.Repos, cache ReportCache, renderer StockReportRenderer, log zerolog.Logger) *ReportUseCase {
	return &ReportUseCase{repos: repos, cache: cache, renderer: renderer, log: log}
}

// DashboardStats construye el DashboardStatsDTO.
//
// Cinco lecturas en paralelo:
//  1. Count del catálogo                 → TotalProducts
//  2. pedidos pending + partial          → PendingOrders
//  3. unidades disponibles               → TotalStockValue + StockItemsCount
//  4. entradas                           → MonthlyEntries (histórico completo)
//  5. salidas                            → MonthlyExits (histórico completo)
func (uc *ReportUseCase) DashboardStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	return fetch(ctx, uc, "dashboard", uc.loadDashboard)
}

func (uc *ReportUseCase) loadDashboard(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	var (
		products  int
		pending   []*entity.Order
		partial   []*entity.Order
		available []*entity.StockItem
		entries   []*entity.StockEntry
		exits     []*entity.StockExit
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = uc.repos.Products.Count(gctx)
		return wrap("catálogo", err)
	})
	g.Go(func() (err error) {
		if pending, err = uc.repos.Orders.List(gctx, repository.OrderFilter{Status: entity.OrderStatusPending}); err != nil {
			return wrap("pedidos pendientes", err)
		}
		partial, err = uc.repos.Orders.List(gctx, repository.OrderFilter{Status: entity.OrderStatusPartial})
		return wrap("pedidos parciales", err)
	})
	g.Go(func() (err error) {
		available, err = uc.repos.StockItems.List(gctx, repository.StockItemFilter{Status: entity.StockItemAvailable})
		return wrap("unidades disponibles", err)
	})
	g.Go(func() (err error) {
		entries, err = uc.repos.Entries.List(gctx)
		return wrap("entradas", err)
	})
	g.Go(func() (err error) {
		exits, err = uc.repos.Exits.List(gctx)
		return wrap("salidas", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := &dto.DashboardStatsDTO{
		TotalProducts:   products,
		PendingOrders:   len(pending) + len(partial),
		TotalStockValue: decimal.Zero,
		StockItemsCount: len(available),
		MonthlyEntries:  decimal.Zero,
		MonthlyExits:    decimal.Zero,
	}
	for _, it := range available {
		stats.TotalStockValue = stats.TotalStockValue.Add(it.UnitCost)
	}
	for _, e := range entries {
		stats.MonthlyEntries = stats.MonthlyEntries.Add(e.TotalValue)
	}
	for _, e := range exits {
		stats.MonthlyExits = stats.MonthlyExits.Add(e.TotalCost)
	}
	return stats, nil
}

// StockReport agrupa las unidades disponibles por producto y las cruza con el catálogo.
func (uc *ReportUseCase) StockReport(ctx context.Context) (*dto.StockReportDTO, error) {
	return fetch(ctx, uc, "stock", uc.loadStockReport)
}

func (uc *ReportUseCase) loadStockReport(ctx context.Context) (*dto.StockReportDTO, error) {
	var (
		products []*entity.Product
		items    []*entity.StockItem
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		products, err = uc.repos.Products.List(gctx)
		return wrap("catálogo", err)
	})
	g.Go(func() (err error) {
		items, err = uc.repos.StockItems.List(gctx, repository.StockItemFilter{Status: entity.StockItemAvailable})
		return wrap("unidades disponibles", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := inventory.BuildStockReport(items, products)
	out := &dto.StockReportDTO{
		Rows:          make([]dto.StockReportRowDTO, 0, len(report.Rows)),
		TotalQuantity: report.TotalQuantity,
		GrandTotal:    report.GrandTotal,
		GeneratedAt:   time.Now().UTC(),
	}
	for _, r := range report.Rows {
		out.Rows = append(out.Rows, dto.StockReportRowDTO{
			ProductID:       r.ProductID,
			ProductName:     r.ProductName,
			Supplier:        r.Supplier,
			UnitType:        r.UnitType,
			Quantity:        r.Quantity,
			CatalogUnitCost: r.CatalogUnitCost,
			AverageUnitCost: r.AverageUnitCost,
			TotalValue:      r.TotalValue,
			LastEntryDate:   dto.NewDate(r.LastEntryDate),
			InCatalog:       r.InCatalog,
		})
	}
	return out, nil
}

// StockReportPDF genera el PDF del reporte de stock. Devuelve los bytes y el nombre sugerido.
func (uc *ReportUseCase) StockReportPDF(ctx context.Context) ([]byte, string, error) {
	if uc.renderer == nil {
		return nil, "", errors.New("reporte: generador PDF no configurado")
	}
	report, err := uc.StockReport(ctx)
	if err != nil {
		return nil, "", err
	}
	pdf, err := uc.renderer.RenderStockReport(ctx, report)
	if err != nil {
		return nil, "", fmt.Errorf("reporte: generar PDF: %w", err)
	}
	filename := fmt.Sprintf("estoque_%s.pdf", report.GeneratedAt.Format("2006-01-02"))
	return pdf, filename, nil
}

// fetch lee de la caché versionada o calcula con load. Si la caché falla se calcula directo.
func fetch[T any](ctx context.Context, uc *ReportUseCase, name string, load func(context.Context) (*T, error)) (*T, error) {
	if uc.cache == nil {
		return load(ctx)
	}
	key, err := uc.cache.BuildKey(ctx, "reports", name)
	if err != nil {
		uc.log.Warn().Err(err).Str("report", name).Msg("caché de reportes no disponible")
		return load(ctx)
	}
	var out T
	var loadErr error
	err = uc.cache.FetchJSON(ctx, key, &out, func(ctx context.Context) (interface{}, error) {
		v, err := load(ctx)
		loadErr = err
		return v, err
	})
	if loadErr != nil {
		return nil, loadErr
	}
	if err != nil {
		uc.log.Warn().Err(err).Str("report", name).Msg("caché de reportes no disponible")
		return load(ctx)
	}
	return &out, nil
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("reporte: %s: %w", what, err)
	}
	return nil
}
