package dto

import "github.com/jhoicas/Compras-api/internal/domain/entity"

// Conversión entidad -> respuesta. Las entidades nunca salen por HTTP sin pasar por aquí.

// NewOrderResponse mapea un pedido.
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{
			ID:             it.ID,
			ProductID:      it.ProductID,
			ProductName:    it.ProductName,
			Supplier:       it.Supplier,
			UnitCost:       it.UnitCost,
			Quantity:       it.Quantity,
			TotalValue:     it.TotalValue,
			Status:         string(it.Status),
			ApprovedBy:     it.ApprovedBy,
			ApprovedByName: it.ApprovedByName,
		})
	}
	return OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		Date:          NewDate(o.Date),
		Items:         items,
		TotalValue:    o.TotalValue,
		CreatedBy:     o.CreatedBy,
		CreatedByName: o.CreatedByName,
		Status:        string(o.Status),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// NewStockEntryResponse mapea una entrada con sus notas.
func NewStockEntryResponse(e *entity.StockEntry) StockEntryResponse {
	invoices := make([]StockEntryInvoiceResponse, 0, len(e.Invoices))
	for _, inv := range e.Invoices {
		items := make([]StockEntryInvoiceItemResponse, 0, len(inv.Items))
		for _, it := range inv.Items {
			items = append(items, StockEntryInvoiceItemResponse{
				ID:               it.ID,
				OrderItemID:      it.OrderItemID,
				ProductID:        it.ProductID,
				ProductName:      it.ProductName,
				Supplier:         it.Supplier,
				Quantity:         it.Quantity,
				OriginalUnitCost: it.OriginalUnitCost,
				AdjustedUnitCost: it.AdjustedUnitCost,
				TotalValue:       it.TotalValue,
			})
		}
		invoices = append(invoices, StockEntryInvoiceResponse{
			ID:            inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			Items:         items,
			TotalValue:    inv.TotalValue,
		})
	}
	return StockEntryResponse{
		ID:            e.ID,
		Date:          NewDate(e.Date),
		OrderID:       e.OrderID,
		OrderNumber:   e.OrderNumber,
		Invoices:      invoices,
		TotalQuantity: e.TotalQuantity,
		TotalValue:    e.TotalValue,
		PaymentMethod: string(e.PaymentMethod),
		Installments:  e.Installments,
		FirstDueDate:  NewDate(e.FirstDueDate),
		CreatedBy:     e.CreatedBy,
		CreatedByName: e.CreatedByName,
		CreatedAt:     e.CreatedAt,
	}
}

// NewInstallmentResponse mapea una cuota.
func NewInstallmentResponse(p *entity.PaymentInstallment) InstallmentResponse {
	return InstallmentResponse{
		ID:                p.ID,
		StockEntryID:      p.StockEntryID,
		InstallmentNumber: p.InstallmentNumber,
		Value:             p.Value,
		DueDate:           NewDate(p.DueDate),
		Paid:              p.IsPaid(),
		PaidAt:            p.PaidAt,
	}
}

// NewInstallmentResponses mapea una lista de cuotas.
func NewInstallmentResponses(list []*entity.PaymentInstallment) []InstallmentResponse {
	out := make([]InstallmentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, NewInstallmentResponse(p))
	}
	return out
}

// NewStockItemResponse mapea una unidad física.
func NewStockItemResponse(s *entity.StockItem) StockItemResponse {
	r := StockItemResponse{
		ID:            s.ID,
		StockEntryID:  s.StockEntryID,
		InvoiceNumber: s.InvoiceNumber,
		ProductID:     s.ProductID,
		ProductName:   s.ProductName,
		Supplier:      s.Supplier,
		UnitCost:      s.UnitCost,
		EntryDate:     NewDate(s.EntryDate),
		Status:        string(s.Status),
		ExitID:        s.ExitID,
	}
	if s.ExitDate != nil {
		d := NewDate(*s.ExitDate)
		r.ExitDate = &d
	}
	return r
}

// NewStockExitResponse mapea una salida.
func NewStockExitResponse(e *entity.StockExit) StockExitResponse {
	items := make([]StockExitItemResponse, 0, len(e.Items))
	for _, it := range e.Items {
		items = append(items, StockExitItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Supplier:    it.Supplier,
			Quantity:    it.Quantity,
			UnitCost:    it.UnitCost,
			TotalCost:   it.TotalCost,
		})
	}
	return StockExitResponse{
		ID:              e.ID,
		StockItemIDs:    append([]string(nil), e.StockItemIDs...),
		Items:           items,
		TotalCost:       e.TotalCost,
		ExitDate:        NewDate(e.ExitDate),
		Observation:     e.Observation,
		CreatedBy:       e.CreatedBy,
		CreatedByName:   e.CreatedByName,
		Confirmed:       e.IsConfirmed(),
		ConfirmedBy:     e.ConfirmedBy,
		ConfirmedByName: e.ConfirmedByName,
		ConfirmedAt:     e.ConfirmedAt,
		CreatedAt:       e.CreatedAt,
	}
}
