package ports

import (
	"context"

	"github.com/rs/zerolog"
)

// ReportInvalidator puerto de salida hacia la caché de lecturas agregadas (dashboard y reporte de stock).
// Los casos de uso lo llaman después de cada mutación confirmada; un nil significa "sin caché".
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

// InvalidateReports invalida la caché si existe. Un fallo no revierte la mutación ya confirmada:
// se registra y la entrada vieja expira por TTL.
func InvalidateReports(ctx context.Context, inv ReportInvalidator, log zerolog.Logger) {
	if inv == nil {
		return
	}
	if err := inv.Invalidate(ctx); err != nil {
		log.Error().Err(err).Msg("no se pudo invalidar la caché de reportes")
	}
}
