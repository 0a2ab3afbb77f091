package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto del catálogo.
type CreateProductRequest struct {
	Name     string          `json:"name" validate:"required,min=1,max=200"`
	Supplier string          `json:"supplier" validate:"required,min=1,max=200"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	UnitType string          `json:"unit_type" validate:"required,max=50"`
}

// UpdateProductRequest entrada para actualizar un producto; los campos nil no cambian.
type UpdateProductRequest struct {
	Name     *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Supplier *string          `json:"supplier" validate:"omitempty,min=1,max=200"`
	UnitCost *decimal.Decimal `json:"unit_cost"`
	UnitType *string          `json:"unit_type" validate:"omitempty,max=50"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Supplier  string          `json:"supplier"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
	UnitType  string          `json:"unit_type"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
