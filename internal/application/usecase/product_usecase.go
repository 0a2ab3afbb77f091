package usecase

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
	"github.com/jhoicas/Compras-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. Editar o borrar un producto no toca
// pedidos, entradas ni unidades ya registradas: esos guardan su propia copia.
type ProductUseCase struct {
	repo    repository.ProductRepository
	reports ports.ReportInvalidator
	log     zerolog.Logger
}

// NewProductUseCase construye el caso de uso. reports puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, reports ports.ReportInvalidator, log zerolog.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, reports: reports, log: log}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name, supplier, unitType := strings.TrimSpace(in.Name), strings.TrimSpace(in.Supplier), strings.TrimSpace(in.UnitType)
	if name == "" || supplier == "" || unitType == "" {
		return nil, fmt.Errorf("%w: nombre, proveedor y tipo de unidad son obligatorios", domain.ErrValidation)
	}
	if !entity.ValidMoney(in.UnitCost) {
		return nil, fmt.Errorf("%w: el costo unitario debe ser >= 0 con hasta %d decimales", domain.ErrValidation, entity.MoneyScale)
	}
	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		Name:      name,
		Supplier:  supplier,
		UnitCost:  in.UnitCost,
		UnitType:  unitType,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.log.Info().Str("product_id", product.ID).Msg("producto creado")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos enviados.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if product.Name = strings.TrimSpace(*in.Name); product.Name == "" {
			return nil, fmt.Errorf("%w: el nombre es obligatorio", domain.ErrValidation)
		}
	}
	if in.Supplier != nil {
		if product.Supplier = strings.TrimSpace(*in.Supplier); product.Supplier == "" {
			return nil, fmt.Errorf("%w: el proveedor es obligatorio", domain.ErrValidation)
		}
	}
	if in.UnitCost != nil {
		if !entity.ValidMoney(*in.UnitCost) {
			return nil, fmt.Errorf("%w: el costo unitario debe ser >= 0 con hasta %d decimales", domain.ErrValidation, entity.MoneyScale)
		}
		product.UnitCost = *in.UnitCost
	}
	if in.UnitType != nil {
		if product.UnitType = strings.TrimSpace(*in.UnitType); product.UnitType == "" {
			return nil, fmt.Errorf("%w: el tipo de unidad es obligatorio", domain.ErrValidation)
		}
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	return toProductResponse(product), nil
}

// List devuelve el catálogo completo ordenado por nombre.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Delete elimina un producto por ID.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.log.Info().Str("product_id", id).Msg("producto eliminado")
	ports.InvalidateReports(ctx, uc.reports, uc.log)
	return nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, id)
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Supplier:  p.Supplier,
		UnitCost:  p.UnitCost,
		UnitType:  p.UnitType,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
