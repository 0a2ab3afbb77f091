package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Compras-api/internal/domain/entity"
	"github.com/jhoicas/Compras-api/internal/domain/inventory"
)

func items(statuses ...entity.ItemStatus) []entity.OrderItem {
	out := make([]entity.OrderItem, len(statuses))
	for i, s := range statuses {
		out[i] = entity.OrderItem{Status: s, Quantity: 1, UnitCost: decimal.NewFromInt(10)}
	}
	return out
}

func TestDeriveOrderStatus(t *testing.T) {
	const (
		p = entity.ItemStatusPending
		a = entity.ItemStatusApproved
		r = entity.ItemStatusRejected
	)
	tests := []struct {
		name  string
		items []entity.OrderItem
		want  entity.OrderStatus
	}{
		{"todos pendientes", items(p, p, p), entity.OrderStatusPending},
		{"todos aprobados", items(a, a), entity.OrderStatusApproved},
		{"todos rechazados", items(r, r, r), entity.OrderStatusRejected},
		{"aprobado y rechazado", items(a, r), entity.OrderStatusPartial},
		{"aprobado y pendiente", items(a, p), entity.OrderStatusPartial},
		{"rechazado y pendiente", items(p, r), entity.OrderStatusPartial},
		{"una sola línea aprobada", items(a), entity.OrderStatusApproved},
		{"sin líneas", nil, entity.OrderStatusPending},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inventory.DeriveOrderStatus(tt.items))
		})
	}
}

func TestRecalculateOrder_TotalesYEstado(t *testing.T) {
	o := &entity.Order{
		Items: []entity.OrderItem{
			{UnitCost: decimal.RequireFromString("2500.00"), Quantity: 3, Status: entity.ItemStatusApproved},
			{UnitCost: decimal.RequireFromString("12.345"), Quantity: 2, Status: entity.ItemStatusPending},
		},
		Status: entity.OrderStatusApproved, // valor inconsistente que debe corregirse
	}
	inventory.RecalculateOrder(o)

	assert.True(t, decimal.RequireFromString("7500").Equal(o.Items[0].TotalValue))
	assert.True(t, decimal.RequireFromString("24.69").Equal(o.Items[1].TotalValue))
	assert.True(t, decimal.RequireFromString("7524.69").Equal(o.TotalValue))
	assert.Equal(t, entity.OrderStatusPartial, o.Status)

	sum := decimal.Zero
	for _, it := range o.Items {
		sum = sum.Add(it.TotalValue)
	}
	assert.True(t, sum.Equal(o.TotalValue), "el total del pedido debe ser la suma de sus líneas")
}

func TestHasApprovedItem(t *testing.T) {
	assert.False(t, inventory.HasApprovedItem(&entity.Order{Items: items(entity.ItemStatusPending, entity.ItemStatusRejected)}))
	assert.True(t, inventory.HasApprovedItem(&entity.Order{Items: items(entity.ItemStatusRejected, entity.ItemStatusApproved)}))
}
