package repository

import "github.com/jhoicas/Deme-api/internal/domain/entity"

// StockLocationRepository define el puerto de persistencia para StockLocation.
// Los movement engines resuelven ubicaciones reservadas con GetByName.
type StockLocationRepository interface {
	Create(location *entity.StockLocation) error
	GetByID(id string) (*entity.StockLocation, error)
	GetByName(name string) (*entity.StockLocation, error)
	Update(location *entity.StockLocation) error
	List(limit, offset int) ([]*entity.StockLocation, error)
}
