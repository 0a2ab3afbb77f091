// Package analytics contiene las proyecciones de solo lectura: estadísticas del dashboard
// y reporte de stock por producto (JSON y PDF).
package analytics

import (
	"context"

	"github.com/jhoicas/Compras-api/internal/application/dto"
)

// ReportCache caché versionada de lecturas agregadas. Cada mutación confirmada sube la
// versión, por lo que las claves construidas después de una escritura nunca devuelven datos viejos.
type ReportCache interface {
	BuildKey(ctx context.Context, parts ...string) (string, error)
	FetchJSON(ctx context.Context, key string, dest interface{}, loader func(context.Context) (interface{}, error)) error
}

// StockReportRenderer genera la representación PDF del reporte de stock.
type StockReportRenderer interface {
	RenderStockReport(ctx context.Context, report *dto.StockReportDTO) ([]byte, error)
}
