package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Compras-api/internal/application/dto"
	"github.com/jhoicas/Compras-api/internal/application/ports"
	"github.com/jhoicas/Compras-api/internal/domain"
	"github.com/jhoicas/Compras-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Compras-api/internal/domain/inventory"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ExitUseCase libro de salidas: consume unidades concretas, confirmación por admin,
// edición de metadatos y borrado con devolución de unidades al stock.
type ExitUseCase struct {
	tx      TxRunner
	repos   repository.Repos
	reports ports.ReportInvalidator
	log     zerolog.Logger
}

// NewExitUseCase construye el caso de uso.
func NewExitUseCase(tx TxRunner, repos repository.Repos, reports ports.ReportInvalidator, log zerolog.Logger) *ExitUseCase {
	return &ExitUseCase{tx: tx, repos: repos, reports: reports, log: log}
}

// Create registra la salida y marca cada unidad como exited. Si alguna unidad no existe o
// ya salió, no se modifica nada.
func (uc *ExitUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateStockExitRequest) (*dto.StockExitResponse, error) {
	if len(in.StockItemIDs) == 0 {
		return nil, fmt.Errorf("%w: la salida necesita al menos una unidad", domain.ErrValidation)
	}
	seen := make(map[string]bool, len(in.StockItemIDs))
	for _, id := range in.StockItemIDs {
		if strings.TrimSpace(id) == "" {
			return nil, fmt.Errorf("%w: id de unidad vacío", domain.ErrValidation)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: unidad %s repetida", domain.ErrValidation, id)
		}
		seen[id] = true
	}
	if in.ExitDate.IsZero() {
		return nil, fmt.Errorf("%w: fecha de salida obligatoria", domain.ErrValidation)
	}

	exitDate := in.ExitDate.Time
	exit := &entity.StockExit{
		ID:            uuid.New().String(),
		StockItemIDs:  append([]string(nil), in.StockItemIDs...),
		ExitDate:      exitDate,
		Observation:   strings.TrimSpace(in.Observation),
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
		CreatedAt:     time.Now(),
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		items, err := r.StockItems.GetByIDsForUpdate(ctx, in.StockItemIDs)
		if err != nil {
			return err
		}
		if len(items) != len(in.StockItemIDs) {
			found := make(map[string]bool, len(items))
			for _, it := range items {
				found[it.ID] = true
			}
			for _, id := range in.StockItemIDs {
				if !found[id] {
					return fmt.Errorf("%w: la unidad %s no existe", domain.ErrConflict, id)
				}
			}
		}
		for _, it := range items {
			if !it.IsAvailable() {
				return fmt.Errorf("%w: la unidad %s de %s no está disponible", domain.ErrConflict, it.ID, it.ProductName)
			}
		}

		exit.Items, exit.TotalCost = domaininv.SummarizeExit(items)
		for _, it := range items {
			d := exitDate
			it.Status = entity.StockItemExited
			it.ExitDate = &d
			it.ExitID = exit.ID
		}
		if err := r.StockItems.UpdateBatch(ctx, items); err != nil {
			return err
		}
		return r.Exits.Create(ctx, exit)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("exit_id", exit.ID).Int("stock_items", len(exit.StockItemIDs)).
		Str("total_cost", exit.TotalCost.String()).Msg("salida registrada")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	resp := dto.NewStockExitResponse(exit)
	return &resp, nil
}

// Confirm confirma la salida (solo admin). Confirmar dos veces es un conflicto.
func (uc *ExitUseCase) Confirm(ctx context.Context, actor entity.Actor, id string) (*dto.StockExitResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede confirmar salidas", domain.ErrForbidden)
	}
	var exit *entity.StockExit
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if exit, err = loadExitForUpdate(ctx, r.Exits, id); err != nil {
			return err
		}
		if exit.IsConfirmed() {
			return fmt.Errorf("%w: la salida ya fue confirmada por %s", domain.ErrConflict, exit.ConfirmedByName)
		}
		now := time.Now()
		exit.ConfirmedBy = actor.ID
		exit.ConfirmedByName = actor.Name
		exit.ConfirmedAt = &now
		return r.Exits.Update(ctx, exit)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("exit_id", exit.ID).Str("by", actor.ID).Msg("salida confirmada")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	resp := dto.NewStockExitResponse(exit)
	return &resp, nil
}

// Update edita fecha y observación. Una nueva fecha se copia a las unidades consumidas.
// Una salida confirmada solo la edita un administrador.
func (uc *ExitUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateStockExitRequest) (*dto.StockExitResponse, error) {
	if in.ExitDate != nil && in.ExitDate.IsZero() {
		return nil, fmt.Errorf("%w: fecha de salida obligatoria", domain.ErrValidation)
	}
	var exit *entity.StockExit
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if exit, err = loadExitForUpdate(ctx, r.Exits, id); err != nil {
			return err
		}
		if exit.IsConfirmed() && !actor.IsAdmin() {
			return fmt.Errorf("%w: la salida ya está confirmada", domain.ErrForbidden)
		}
		if in.Observation != nil {
			exit.Observation = strings.TrimSpace(*in.Observation)
		}
		if in.ExitDate != nil && !in.ExitDate.Time.Equal(exit.ExitDate) {
			exit.ExitDate = in.ExitDate.Time
			items, err := r.StockItems.ListByExit(ctx, exit.ID)
			if err != nil {
				return err
			}
			for _, it := range items {
				d := exit.ExitDate
				it.ExitDate = &d
			}
			if err := r.StockItems.UpdateBatch(ctx, items); err != nil {
				return err
			}
		}
		return r.Exits.Update(ctx, exit)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("exit_id", exit.ID).Str("exit_date", exit.ExitDate.Format(dto.DateLayout)).
		Str("by", actor.ID).Msg("salida actualizada")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	resp := dto.NewStockExitResponse(exit)
	return &resp, nil
}

// Delete devuelve las unidades al stock y elimina la salida, en una sola transacción.
// Una salida confirmada solo la borra un administrador.
func (uc *ExitUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	restocked := 0
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		exit, err := loadExitForUpdate(ctx, r.Exits, id)
		if err != nil {
			return err
		}
		if exit.IsConfirmed() && !actor.IsAdmin() {
			return fmt.Errorf("%w: la salida ya está confirmada", domain.ErrForbidden)
		}
		items, err := r.StockItems.GetByIDsForUpdate(ctx, exit.StockItemIDs)
		if err != nil {
			return err
		}
		for _, it := range items {
			if it.ExitID != exit.ID {
				continue
			}
			it.Status = entity.StockItemAvailable
			it.ExitDate = nil
			it.ExitID = ""
			restocked++
		}
		if err := r.StockItems.UpdateBatch(ctx, items); err != nil {
			return err
		}
		return r.Exits.Delete(ctx, exit.ID)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("exit_id", id).Int("restocked", restocked).Msg("salida eliminada")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	return nil
}

// Get obtiene una salida por ID.
func (uc *ExitUseCase) Get(ctx context.Context, id string) (*dto.StockExitResponse, error) {
	exit, err := uc.repos.Exits.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exit == nil {
		return nil, fmt.Errorf("%w: salida %s", domain.ErrNotFound, id)
	}
	resp := dto.NewStockExitResponse(exit)
	return &resp, nil
}

// List lista las salidas, de la más reciente a la más antigua.
func (uc *ExitUseCase) List(ctx context.Context) ([]dto.StockExitResponse, error) {
	list, err := uc.repos.Exits.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockExitResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewStockExitResponse(e))
	}
	return out, nil
}

// StockItems consulta la vista explotada del inventario. Search busca en producto y proveedor
// sin distinguir mayúsculas ni acentos.
func (uc *ExitUseCase) StockItems(ctx context.Context, filter dto.StockItemFilter) ([]dto.StockItemResponse, error) {
	status := entity.StockItemStatus(filter.Status)
	switch status {
	case "", entity.StockItemAvailable, entity.StockItemExited:
	default:
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, filter.Status)
	}
	list, err := uc.repos.StockItems.List(ctx, repository.StockItemFilter{Status: status, ProductID: filter.ProductID})
	if err != nil {
		return nil, err
	}
	term := foldText(filter.Search)
	out := make([]dto.StockItemResponse, 0, len(list))
	for _, it := range list {
		if !matchesSearch(term, it.ProductName, it.Supplier, it.InvoiceNumber) {
			continue
		}
		out = append(out, dto.NewStockItemResponse(it))
	}
	return out, nil
}

func loadExitForUpdate(ctx context.Context, repo repository.StockExitRepository, id string) (*entity.StockExit, error) {
	exit, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if exit == nil {
		return nil, fmt.Errorf("%w: salida %s", domain.ErrNotFound, id)
	}
	return exit, nil
}
