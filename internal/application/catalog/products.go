// Package catalog gestiona las entidades maestras sobre las que operan los
// documentos: productos, ubicaciones de stock, cuentas de efectivo y las
// consultas de celdas de stock.
package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
)

// ProductsUseCase casos de uso de Product.
type ProductsUseCase struct {
	products      repository.ProductRepository
	cells         repository.StockCellRepository
	purchaseLines repository.PurchaseLineRepository
	salesLines    repository.SalesLineRepository
}

// NewProductsUseCase construye el caso de uso.
func NewProductsUseCase(
	products repository.ProductRepository,
	cells repository.StockCellRepository,
	purchaseLines repository.PurchaseLineRepository,
	salesLines repository.SalesLineRepository,
) *ProductsUseCase {
	return &ProductsUseCase{
		products:      products,
		cells:         cells,
		purchaseLines: purchaseLines,
		salesLines:    salesLines,
	}
}

// Create crea un producto. Nombre único entre activos; is_inventory por
// defecto true.
func (uc *ProductsUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}
	if in.CostAverage.IsNegative() {
		return nil, fmt.Errorf("%w: cost_average no puede ser negativo", domain.ErrValidation)
	}
	existing, err := uc.products.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: producto %q", domain.ErrNameAlreadyExists, in.Name)
	}

	isInventory := true
	if in.IsInventory != nil {
		isInventory = *in.IsInventory
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        in.Name,
		UnitMeasure: in.UnitMeasure,
		IsInventory: isInventory,
		CostAverage: in.CostAverage,
		Audit: entity.Audit{
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: userID,
			UpdatedBy: userID,
		},
	}
	if err := uc.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID devuelve un producto activo.
func (uc *ProductsUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	return product, nil
}

// List lista productos activos.
func (uc *ProductsUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.products.List(limit, offset)
}

// Update edita un producto. is_inventory y cost_average quedan congelados
// cuando el producto ya tiene celdas de stock (historial de movimientos).
func (uc *ProductsUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil && *in.Name != product.Name {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrValidation)
		}
		existing, err := uc.products.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: producto %q", domain.ErrNameAlreadyExists, *in.Name)
		}
		product.Name = *in.Name
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}

	if in.IsInventory != nil || in.CostAverage != nil {
		history, err := uc.cells.CountByProduct(product.ID)
		if err != nil {
			return nil, err
		}
		if history > 0 {
			return nil, fmt.Errorf("%w: is_inventory y cost_average no son editables con historial de movimientos", domain.ErrValidation)
		}
		if in.IsInventory != nil {
			product.IsInventory = *in.IsInventory
		}
		if in.CostAverage != nil {
			if in.CostAverage.IsNegative() {
				return nil, fmt.Errorf("%w: cost_average no puede ser negativo", domain.ErrValidation)
			}
			product.CostAverage = *in.CostAverage
		}
	}

	product.UpdatedAt = time.Now().UTC()
	product.UpdatedBy = userID
	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// Delete soft delete de un producto. Se bloquea si tiene stock positivo en
// alguna ubicación o si alguna línea activa de compra o venta lo referencia.
func (uc *ProductsUseCase) Delete(ctx context.Context, id, userID string) error {
	product, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}

	withStock, err := uc.cells.CountPositiveByProduct(product.ID)
	if err != nil {
		return err
	}
	if withStock > 0 {
		return fmt.Errorf("%w: el producto todavía tiene stock", domain.ErrValidation)
	}
	inPurchases, err := uc.purchaseLines.CountActiveByProduct(product.ID)
	if err != nil {
		return err
	}
	if inPurchases > 0 {
		return fmt.Errorf("%w: el producto aparece en líneas de compra activas", domain.ErrValidation)
	}
	inSales, err := uc.salesLines.CountActiveByProduct(product.ID)
	if err != nil {
		return err
	}
	if inSales > 0 {
		return fmt.Errorf("%w: el producto aparece en líneas de venta activas", domain.ErrValidation)
	}

	product.SoftDelete(time.Now().UTC(), userID)
	return uc.products.Update(product)
}
