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
	"github.com/jhoicas/Deme-api/pkg/config"
)

// StockLocationsUseCase casos de uso de StockLocation.
// La ubicación canónica y las de cliente no se administran por aquí: la
// primera la siembra el arranque y las segundas viven con su cliente.
type StockLocationsUseCase struct {
	locations repository.StockLocationRepository
	cells     repository.StockCellRepository
	company   config.CompanyConfig
}

// NewStockLocationsUseCase construye el caso de uso.
func NewStockLocationsUseCase(locations repository.StockLocationRepository, cells repository.StockCellRepository, company config.CompanyConfig) *StockLocationsUseCase {
	return &StockLocationsUseCase{locations: locations, cells: cells, company: company}
}

// Create crea una ubicación de stock con nombre único.
func (uc *StockLocationsUseCase) Create(ctx context.Context, userID string, in dto.CreateStockLocationRequest) (*entity.StockLocation, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}
	existing, err := uc.locations.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: ubicación %q", domain.ErrNameAlreadyExists, in.Name)
	}

	now := time.Now().UTC()
	location := &entity.StockLocation{
		ID:   uuid.New().String(),
		Name: in.Name,
		Audit: entity.Audit{
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: userID,
			UpdatedBy: userID,
		},
	}
	if err := uc.locations.Create(location); err != nil {
		return nil, err
	}
	return location, nil
}

// GetByID devuelve una ubicación activa.
func (uc *StockLocationsUseCase) GetByID(ctx context.Context, id string) (*entity.StockLocation, error) {
	location, err := uc.locations.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, fmt.Errorf("%w: ubicación de stock", domain.ErrNotFound)
	}
	return location, nil
}

// List lista ubicaciones activas.
func (uc *StockLocationsUseCase) List(ctx context.Context, limit, offset int) ([]*entity.StockLocation, error) {
	return uc.locations.List(limit, offset)
}

// Update renombra una ubicación, manteniendo el nombre único. La ubicación
// canónica no se renombra.
func (uc *StockLocationsUseCase) Update(ctx context.Context, id, userID string, in dto.CreateStockLocationRequest) (*entity.StockLocation, error) {
	location, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if location.Name == uc.company.StockLocationName {
		return nil, fmt.Errorf("%w: la ubicación canónica no es editable", domain.ErrValidation)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}
	if in.Name != location.Name {
		existing, err := uc.locations.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: ubicación %q", domain.ErrNameAlreadyExists, in.Name)
		}
		location.Name = in.Name
	}
	location.UpdatedAt = time.Now().UTC()
	location.UpdatedBy = userID
	if err := uc.locations.Update(location); err != nil {
		return nil, err
	}
	return location, nil
}

// Delete soft delete de una ubicación. Se bloquea para la canónica y para
// cualquier ubicación con stock positivo.
func (uc *StockLocationsUseCase) Delete(ctx context.Context, id, userID string) error {
	location, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if location.Name == uc.company.StockLocationName {
		return fmt.Errorf("%w: la ubicación canónica no puede eliminarse", domain.ErrValidation)
	}
	withStock, err := uc.cells.CountPositiveByLocation(location.ID)
	if err != nil {
		return err
	}
	if withStock > 0 {
		return fmt.Errorf("%w: la ubicación todavía tiene stock", domain.ErrValidation)
	}
	location.SoftDelete(time.Now().UTC(), userID)
	return uc.locations.Update(location)
}
