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

// OrderUseCase libro de pedidos: creación, edición y aprobación/rechazo por pedido o por línea.
// El estado del pedido siempre se deriva de sus líneas (inventory.RecalculateOrder).
type OrderUseCase struct {
	tx      TxRunner
	repos   repository.Repos
	reports ports.ReportInvalidator
	log     zerolog.Logger
}

// NewOrderUseCase construye el caso de uso. repos son los repositorios de lectura (fuera de tx).
func NewOrderUseCase(tx TxRunner, repos repository.Repos, reports ports.ReportInvalidator, log zerolog.Logger) *OrderUseCase {
	return &OrderUseCase{tx: tx, repos: repos, reports: reports, log: log}
}

// Create registra un pedido con todas sus líneas en estado pending.
func (uc *OrderUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	number := strings.TrimSpace(in.OrderNumber)
	if number == "" {
		return nil, fmt.Errorf("%w: número de pedido obligatorio", domain.ErrValidation)
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: fecha del pedido obligatoria", domain.ErrValidation)
	}
	if err := validateOrderItems(in.Items); err != nil {
		return nil, err
	}

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		OrderNumber:   number,
		Date:          in.Date.Time,
		CreatedBy:     actor.ID,
		CreatedByName: actor.Name,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		existing, err := r.Orders.GetByNumber(ctx, number)
		if err != nil {
			return err
		}
		if existing != nil {
			return fmt.Errorf("%w: ya existe el pedido %s", domain.ErrDuplicate, number)
		}
		order.Items = make([]entity.OrderItem, 0, len(in.Items))
		for _, req := range in.Items {
			product, err := loadProduct(ctx, r.Products, req.ProductID)
			if err != nil {
				return err
			}
			order.Items = append(order.Items, newPendingItem(uuid.New().String(), product, req.Quantity))
		}
		inventory.RecalculateOrder(order)
		return r.Orders.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("order_number", order.OrderNumber).Int("items", len(order.Items)).Msg("pedido creado")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// Update edita cabecera y/o líneas.
//
// Un usuario no administrador devuelve todas las líneas a pending y borra las aprobaciones.
// Un administrador conserva el estado de una línea cuando ya existía con el mismo producto y
// cantidad (por ID si se envía, si no por producto+cantidad); el resto queda pending.
// No se permite quitar una línea con unidades recibidas ni bajar su cantidad por debajo de lo recibido.
func (uc *OrderUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if in.Date != nil && in.Date.IsZero() {
		return nil, fmt.Errorf("%w: fecha del pedido obligatoria", domain.ErrValidation)
	}
	if in.Items != nil {
		if err := validateOrderItems(in.Items); err != nil {
			return nil, err
		}
	}

	var order *entity.Order
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if order, err = loadOrderForUpdate(ctx, r.Orders, id); err != nil {
			return err
		}
		if in.OrderNumber != nil {
			number := strings.TrimSpace(*in.OrderNumber)
			if number == "" {
				return fmt.Errorf("%w: número de pedido obligatorio", domain.ErrValidation)
			}
			if number != order.OrderNumber {
				existing, err := r.Orders.GetByNumber(ctx, number)
				if err != nil {
					return err
				}
				if existing != nil {
					return fmt.Errorf("%w: ya existe el pedido %s", domain.ErrDuplicate, number)
				}
				order.OrderNumber = number
			}
		}
		if in.Date != nil {
			order.Date = in.Date.Time
		}
		if in.Items != nil {
			entries, err := r.Entries.ListByOrder(ctx, order.ID)
			if err != nil {
				return err
			}
			received := inventory.ReceivedByOrderItem(entries)
			items, err := mergeItems(ctx, r.Products, order.Items, in.Items, received, actor.IsAdmin())
			if err != nil {
				return err
			}
			order.Items = items
		}
		if !actor.IsAdmin() {
			for i := range order.Items {
				resetApproval(&order.Items[i])
			}
		}
		inventory.RecalculateOrder(order)
		order.UpdatedAt = time.Now()
		return r.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("status", string(order.Status)).Bool("admin", actor.IsAdmin()).Msg("pedido editado")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// mergeItems construye las nuevas líneas a partir de las anteriores y de la petición.
func mergeItems(
	ctx context.Context,
	products repository.ProductRepository,
	prior []entity.OrderItem,
	reqs []dto.OrderItemRequest,
	received map[string]int,
	isAdmin bool,
) ([]entity.OrderItem, error) {
	used := make(map[string]bool, len(prior))
	byID := make(map[string]entity.OrderItem, len(prior))
	for _, it := range prior {
		byID[it.ID] = it
	}

	// Primero las líneas con ID explícito, para que el emparejamiento por producto+cantidad
	// no consuma una línea que otra petición reclama por ID.
	matched := make([]*entity.OrderItem, len(reqs))
	for i, req := range reqs {
		if req.ID == "" {
			continue
		}
		it, ok := byID[req.ID]
		if !ok {
			return nil, fmt.Errorf("%w: la línea %s no pertenece al pedido", domain.ErrNotFound, req.ID)
		}
		if used[req.ID] {
			return nil, fmt.Errorf("%w: línea %s repetida", domain.ErrValidation, req.ID)
		}
		used[req.ID] = true
		matched[i] = &it
	}
	for i, req := range reqs {
		if req.ID != "" {
			continue
		}
		for _, it := range prior {
			if !used[it.ID] && it.ProductID == req.ProductID && it.Quantity == req.Quantity {
				used[it.ID] = true
				m := it
				matched[i] = &m
				break
			}
		}
	}

	for _, it := range prior {
		if !used[it.ID] && received[it.ID] > 0 {
			return nil, fmt.Errorf("%w: la línea de %s ya tiene %d unidades recibidas y no puede eliminarse",
				domain.ErrConflict, it.ProductName, received[it.ID])
		}
	}

	out := make([]entity.OrderItem, 0, len(reqs))
	for i, req := range reqs {
		prev := matched[i]
		if prev != nil && prev.ProductID == req.ProductID {
			if got := received[prev.ID]; req.Quantity < got {
				return nil, fmt.Errorf("%w: la línea de %s ya tiene %d unidades recibidas; la cantidad no puede bajar a %d",
					domain.ErrConflict, prev.ProductName, got, req.Quantity)
			}
			item := *prev
			item.Quantity = req.Quantity
			if !isAdmin || prev.Quantity != req.Quantity {
				resetApproval(&item)
			}
			out = append(out, item)
			continue
		}
		if prev != nil && received[prev.ID] > 0 {
			return nil, fmt.Errorf("%w: la línea %s ya tiene unidades recibidas; no se puede cambiar su producto",
				domain.ErrConflict, prev.ID)
		}
		product, err := loadProduct(ctx, products, req.ProductID)
		if err != nil {
			return nil, err
		}
		itemID := uuid.New().String()
		if prev != nil {
			itemID = prev.ID
		}
		out = append(out, newPendingItem(itemID, product, req.Quantity))
	}
	return out, nil
}

// Approve aprueba todas las líneas del pedido (solo admin).
func (uc *OrderUseCase) Approve(ctx context.Context, actor entity.Actor, id string) (*dto.OrderResponse, error) {
	return uc.decideAll(ctx, actor, id, entity.ItemStatusApproved)
}

// Reject rechaza todas las líneas del pedido (solo admin).
func (uc *OrderUseCase) Reject(ctx context.Context, actor entity.Actor, id string) (*dto.OrderResponse, error) {
	return uc.decideAll(ctx, actor, id, entity.ItemStatusRejected)
}

func (uc *OrderUseCase) decideAll(ctx context.Context, actor entity.Actor, id string, target entity.ItemStatus) (*dto.OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede aprobar o rechazar pedidos", domain.ErrForbidden)
	}
	var order *entity.Order
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if order, err = loadOrderForUpdate(ctx, r.Orders, id); err != nil {
			return err
		}
		if allInStatus(order.Items, target) {
			return fmt.Errorf("%w: el pedido %s ya está %s", domain.ErrConflict, order.OrderNumber, target)
		}
		if target == entity.ItemStatusRejected {
			if err := uc.ensureNothingReceived(ctx, r, order, ""); err != nil {
				return err
			}
		}
		for i := range order.Items {
			decide(&order.Items[i], target, actor)
		}
		inventory.RecalculateOrder(order)
		order.UpdatedAt = time.Now()
		return r.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("status", string(order.Status)).Str("by", actor.ID).Msg("pedido decidido")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// ApproveItem aprueba una línea pendiente (solo admin). El pedido puede quedar partial.
func (uc *OrderUseCase) ApproveItem(ctx context.Context, actor entity.Actor, id, itemID string) (*dto.OrderResponse, error) {
	return uc.decideItem(ctx, actor, id, itemID, entity.ItemStatusApproved)
}

// RejectItem rechaza una línea pendiente (solo admin).
func (uc *OrderUseCase) RejectItem(ctx context.Context, actor entity.Actor, id, itemID string) (*dto.OrderResponse, error) {
	return uc.decideItem(ctx, actor, id, itemID, entity.ItemStatusRejected)
}

func (uc *OrderUseCase) decideItem(ctx context.Context, actor entity.Actor, id, itemID string, target entity.ItemStatus) (*dto.OrderResponse, error) {
	if !actor.IsAdmin() {
		return nil, fmt.Errorf("%w: solo un administrador puede aprobar o rechazar líneas", domain.ErrForbidden)
	}
	var order *entity.Order
	err := uc.tx.Run(ctx, func(r repository.Repos) error {
		var err error
		if order, err = loadOrderForUpdate(ctx, r.Orders, id); err != nil {
			return err
		}
		item := order.Item(itemID)
		if item == nil {
			return fmt.Errorf("%w: línea %s en el pedido %s", domain.ErrNotFound, itemID, order.OrderNumber)
		}
		if item.Status != entity.ItemStatusPending {
			return fmt.Errorf("%w: la línea de %s ya está %s", domain.ErrConflict, item.ProductName, item.Status)
		}
		if target == entity.ItemStatusRejected {
			if err := uc.ensureNothingReceived(ctx, r, order, itemID); err != nil {
				return err
			}
		}
		decide(item, target, actor)
		inventory.RecalculateOrder(order)
		order.UpdatedAt = time.Now()
		return r.Orders.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("item_id", itemID).Str("item_status", string(target)).
		Str("status", string(order.Status)).Msg("línea decidida")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// ensureNothingReceived falla si la línea (o cualquier línea, con itemID vacío) tiene recepciones.
func (uc *OrderUseCase) ensureNothingReceived(ctx context.Context, r repository.Repos, order *entity.Order, itemID string) error {
	entries, err := r.Entries.ListByOrder(ctx, order.ID)
	if err != nil {
		return err
	}
	received := inventory.ReceivedByOrderItem(entries)
	for _, it := range order.Items {
		if itemID != "" && it.ID != itemID {
			continue
		}
		if received[it.ID] > 0 {
			return fmt.Errorf("%w: la línea de %s ya tiene %d unidades recibidas", domain.ErrConflict, it.ProductName, received[it.ID])
		}
	}
	return nil
}

// Get obtiene un pedido por ID.
func (uc *OrderUseCase) Get(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	resp := dto.NewOrderResponse(order)
	return &resp, nil
}

// List lista pedidos, opcionalmente filtrados por estado.
func (uc *OrderUseCase) List(ctx context.Context, filter dto.OrderListFilter) ([]dto.OrderResponse, error) {
	status := entity.OrderStatus(filter.Status)
	switch status {
	case "", entity.OrderStatusPending, entity.OrderStatusApproved, entity.OrderStatusRejected, entity.OrderStatusPartial:
	default:
		return nil, fmt.Errorf("%w: estado %q desconocido", domain.ErrValidation, filter.Status)
	}
	list, err := uc.repos.Orders.List(ctx, repository.OrderFilter{Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.NewOrderResponse(o))
	}
	return out, nil
}

// ReceivingSummary cantidades pedidas, recibidas y pendientes por línea.
func (uc *OrderUseCase) ReceivingSummary(ctx context.Context, id string) (*dto.ReceivingSummaryResponse, error) {
	order, err := uc.repos.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	entries, err := uc.repos.Entries.ListByOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	received := inventory.ReceivedByOrderItem(entries)

	resp := &dto.ReceivingSummaryResponse{OrderID: order.ID, OrderNumber: order.OrderNumber}
	approved := 0
	pending := 0
	for _, it := range order.Items {
		remaining := inventory.Remaining(it, received)
		resp.Lines = append(resp.Lines, dto.ReceivingLineResponse{
			OrderItemID: it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Supplier:    it.Supplier,
			Status:      string(it.Status),
			UnitCost:    it.UnitCost,
			Ordered:     it.Quantity,
			Received:    received[it.ID],
			Remaining:   remaining,
		})
		if it.Status == entity.ItemStatusApproved {
			approved++
			pending += remaining
		}
	}
	resp.FullyServed = approved > 0 && pending == 0
	return resp, nil
}

func validateOrderItems(items []dto.OrderItemRequest) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: el pedido necesita al menos una línea", domain.ErrValidation)
	}
	if len(items) > entity.MaxOrderItems {
		return fmt.Errorf("%w: máximo %d líneas por pedido", domain.ErrValidation, entity.MaxOrderItems)
	}
	for _, it := range items {
		if strings.TrimSpace(it.ProductID) == "" {
			return fmt.Errorf("%w: producto obligatorio en cada línea", domain.ErrValidation)
		}
		if it.Quantity < 1 {
			return fmt.Errorf("%w: la cantidad debe ser >= 1", domain.ErrValidation)
		}
	}
	return nil
}

func loadProduct(ctx context.Context, repo repository.ProductRepository, id string) (*entity.Product, error) {
	product, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return product, nil
}

func loadOrderForUpdate(ctx context.Context, repo repository.OrderRepository, id string) (*entity.Order, error) {
	order, err := repo.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, fmt.Errorf("%w: pedido %s", domain.ErrNotFound, id)
	}
	return order, nil
}

func newPendingItem(id string, p *entity.Product, quantity int) entity.OrderItem {
	return entity.OrderItem{
		ID:          id,
		ProductID:   p.ID,
		ProductName: p.Name,
		Supplier:    p.Supplier,
		UnitCost:    p.UnitCost,
		Quantity:    quantity,
		Status:      entity.ItemStatusPending,
	}
}

func resetApproval(it *entity.OrderItem) {
	it.Status = entity.ItemStatusPending
	it.ApprovedBy = ""
	it.ApprovedByName = ""
}

func decide(it *entity.OrderItem, status entity.ItemStatus, actor entity.Actor) {
	it.Status = status
	it.ApprovedBy = actor.ID
	it.ApprovedByName = actor.Name
}

func allInStatus(items []entity.OrderItem, status entity.ItemStatus) bool {
	for _, it := range items {
		if it.Status != status {
			return false
		}
	}
	return len(items) > 0
}
