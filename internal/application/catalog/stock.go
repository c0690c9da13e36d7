package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
)

// StockQueriesUseCase consultas de solo lectura sobre celdas de stock.
type StockQueriesUseCase struct {
	cells     repository.StockCellRepository
	locations repository.StockLocationRepository
}

// NewStockQueriesUseCase construye el caso de uso.
func NewStockQueriesUseCase(cells repository.StockCellRepository, locations repository.StockLocationRepository) *StockQueriesUseCase {
	return &StockQueriesUseCase{cells: cells, locations: locations}
}

// ListByLocation devuelve los saldos de una ubicación.
func (uc *StockQueriesUseCase) ListByLocation(ctx context.Context, locationID string) ([]dto.StockCellResponse, error) {
	location, err := uc.locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación de stock", domain.ErrNotFound)
	}
	cells, err := uc.cells.ListByLocation(location.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockCellResponse, 0, len(cells))
	for _, cell := range cells {
		out = append(out, dto.StockCellResponse{
			ProductID:       cell.ProductID,
			StockLocationID: cell.StockLocationID,
			Quantity:        cell.Quantity,
		})
	}
	return out, nil
}

// GetCell devuelve el saldo de un producto en una ubicación. Si la celda no
// existe todavía, el saldo es cero.
func (uc *StockQueriesUseCase) GetCell(ctx context.Context, productID, locationID string) (*dto.StockCellResponse, error) {
	cell, err := uc.cells.Get(productID, locationID)
	if err != nil {
		return nil, err
	}
	return &dto.StockCellResponse{
		ProductID:       productID,
		StockLocationID: locationID,
		Quantity:        cell.Quantity,
	}, nil
}
