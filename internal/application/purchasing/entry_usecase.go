package purchasing

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
	"github.com/jhoicas/Compras-api/internal/domain/inventory"
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// EntryUseCase libro de entradas: recepción de mercancía contra pedidos aprobados.
// Cada entrada genera en la misma transacción sus unidades físicas y sus cuotas de pago.
type EntryUseCase struct {
	tx      TxRunner
	repos   repository.Repos
	reports ports.ReportInvalidator
	log     zerolog.Logger
	newID   inventory.IDGenerator
}

// NewEntryUseCase construye el caso de uso.
func NewEntryUseCase(tx TxRunner, repos repository.Repos, reports ports.ReportInvalidator, log zerolog.Logger) *EntryUseCase {
	return &EntryUseCase{
		tx:      tx,
		repos:   repos,
		reports: reports,
		log:     log,
		newID:   func() string { return uuid.New().String() },
	}
}

// Create valida y registra una entrada. Orden de validación:
//  1. el pedido existe (NotFound) y tiene al menos una línea aprobada (Conflict);
//  2. cada línea referida pertenece al pedido (NotFound) y está aprobada (Conflict);
//  3. lo pedido en esta entrada más lo ya recibido no supera lo pedido (OverReceipt);
//  4. estructura: notas, cantidades, costos, cuotas, forma de pago y fechas (Validation).
func (uc *EntryUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateStockEntryRequest) (*dto.StockEntryCreatedResponse, error) {
	var (
		entry        *entity.StockEntry
		stockItems   []*entity.StockItem
		installments []*entity.PaymentInstallment
	)
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		order, err := loadOrderForUpdate(ctx, r.Orders, in.OrderID)
		if err != nil {
			return err
		}
		if !inventory.HasApprovedItem(order) {
			return fmt.Errorf("%w: el pedido %s no tiene líneas aprobadas", domain.ErrConflict, order.OrderNumber)
		}

		requested := make(map[string]int)
		for _, inv := range in.Invoices {
			for _, line := range inv.Items {
				item := order.Item(line.OrderItemID)
				if item == nil {
					return fmt.Errorf("%w: la línea %s no pertenece al pedido %s", domain.ErrNotFound, line.OrderItemID, order.OrderNumber)
				}
				if item.Status != entity.ItemStatusApproved {
					return fmt.Errorf("%w: la línea de %s no está aprobada", domain.ErrConflict, item.ProductName)
				}
				requested[line.OrderItemID] += line.Quantity
			}
		}

		previous, err := r.Entries.ListByOrder(ctx, order.ID)
		if err != nil {
			return err
		}
		received := inventory.ReceivedByOrderItem(previous)
		for itemID, qty := range requested {
			item := order.Item(itemID)
			if remaining := inventory.Remaining(*item, received); qty > remaining {
				return fmt.Errorf("%w: %s pide %d y quedan %d por recibir", domain.ErrOverReceipt, item.ProductName, qty, remaining)
			}
		}

		if err := validateEntryShape(in); err != nil {
			return err
		}

		entry = uc.buildEntry(actor, order, in)
		stockItems = inventory.Explode(entry, uc.newID)
		if installments, err = inventory.ComputeInstallments(entry.ID, entry.TotalValue, entry.Installments, entry.FirstDueDate, uc.newID); err != nil {
			return err
		}

		if err := r.Entries.Create(ctx, entry); err != nil {
			return err
		}
		if err := r.StockItems.CreateBatch(ctx, stockItems); err != nil {
			return err
		}
		return r.Installments.CreateBatch(ctx, installments)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("entry_id", entry.ID).Str("order_id", entry.OrderID).
		Int("stock_items", len(stockItems)).Str("total", entry.TotalValue.String()).Msg("entrada registrada")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	return &dto.StockEntryCreatedResponse{
		Entry:        dto.NewStockEntryResponse(entry),
		Installments: dto.NewInstallmentResponses(installments),
		StockItems:   len(stockItems),
	}, nil
}

func validateEntryShape(in dto.CreateStockEntryRequest) error {
	if len(in.Invoices) == 0 {
		return fmt.Errorf("%w: la entrada necesita al menos una nota fiscal", domain.ErrValidation)
	}
	for _, inv := range in.Invoices {
		if len(inv.Items) == 0 {
			return fmt.Errorf("%w: la nota %q no tiene líneas", domain.ErrValidation, inv.InvoiceNumber)
		}
		for _, line := range inv.Items {
			if line.Quantity < 1 {
				return fmt.Errorf("%w: la cantidad recibida debe ser >= 1", domain.ErrValidation)
			}
			if !entity.ValidMoney(line.AdjustedUnitCost) {
				return fmt.Errorf("%w: el costo ajustado debe ser >= 0 con hasta %d decimales", domain.ErrValidation, entity.MoneyScale)
			}
		}
	}
	if in.Installments < 1 || in.Installments > entity.MaxInstallments {
		return fmt.Errorf("%w: número de cuotas debe estar entre 1 y %d", domain.ErrValidation, entity.MaxInstallments)
	}
	if !entity.PaymentMethod(in.PaymentMethod).IsValid() {
		return fmt.Errorf("%w: forma de pago %q desconocida", domain.ErrValidation, in.PaymentMethod)
	}
	if in.Date.IsZero() {
		return fmt.Errorf("%w: fecha de entrada obligatoria", domain.ErrValidation)
	}
	if in.FirstDueDate.IsZero() {
		return fmt.Errorf("%w: primer vencimiento obligatorio", domain.ErrValidation)
	}
	return nil
}

func (uc *EntryUseCase) buildEntry(actor entity.Actor, order *entity.Order, in dto.CreateStockEntryRequest) *entity.StockEntry {
	entry := &entity.StockEntry{
		ID:            uc.newID(),
		Date:          in.Date.Time,
		OrderID:       order.ID,
		OrderNumber:   order.OrderNumber,
		PaymentMethod: entity.PaymentMethod(in.PaymentMethod),
		Installments:  in.Installments,
		FirstDueDate:  in.FirstDueDate.Time,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
		CreatedAt:     time.Now(),
	}
	entry.Invoices = make([]entity.StockEntryInvoice, 0, len(in.Invoices))
	for _, inv := range in.Invoices {
		invoice := entity.StockEntryInvoice{
			ID:            uc.newID(),
			InvoiceNumber: strings.TrimSpace(inv.InvoiceNumber),
			Items:         make([]entity.StockEntryInvoiceItem, 0, len(inv.Items)),
		}
		for _, line := range inv.Items {
			item := order.Item(line.OrderItemID)
			invoice.Items = append(invoice.Items, entity.StockEntryInvoiceItem{
				ID:               uc.newID(),
				OrderItemID:      item.ID,
				ProductID:        item.ProductID,
				ProductName:      item.ProductName,
				Supplier:         item.Supplier,
				Quantity:         line.Quantity,
				OriginalUnitCost: item.UnitCost,
				AdjustedUnitCost: line.AdjustedUnitCost,
			})
		}
		entry.Invoices = append(entry.Invoices, invoice)
	}
	inventory.RecalculateEntry(entry)
	return entry
}

// Get obtiene una entrada por ID.
func (uc *EntryUseCase) Get(ctx context.Context, id string) (*dto.StockEntryResponse, error) {
	entry, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewStockEntryResponse(entry)
	return &resp, nil
}

// List lista todas las entradas, de la más reciente a la más antigua.
func (uc *EntryUseCase) List(ctx context.Context) ([]dto.StockEntryResponse, error) {
	list, err := uc.repos.Entries.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockEntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewStockEntryResponse(e))
	}
	return out, nil
}

// Installments cuotas de una entrada.
func (uc *EntryUseCase) Installments(ctx context.Context, id string) ([]dto.InstallmentResponse, error) {
	if _, err := uc.load(ctx, id); err != nil {
		return nil, err
	}
	list, err := uc.repos.Installments.List(ctx, repository.InstallmentFilter{StockEntryID: id})
	if err != nil {
		return nil, err
	}
	return dto.NewInstallmentResponses(list), nil
}

func (uc *EntryUseCase) load(ctx context.Context, id string) (*entity.StockEntry, error) {
	entry, err := uc.repos.Entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, fmt.Errorf("%w: entrada %s", domain.ErrNotFound, id)
	}
	return entry, nil
}
