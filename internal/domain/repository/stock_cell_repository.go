package repository

import "github.com/jhoicas/Deme-api/internal/domain/entity"

// StockCellRepository define el puerto para consultar/actualizar celdas de
// stock (producto+ubicación). Usado dentro de transacciones para garantizar
// consistencia; Get* devuelven una celda vacía (ID="", Quantity=0) cuando no
// existe fila, para soportar la creación perezosa en el primer movimiento.
type StockCellRepository interface {
	Get(productID, locationID string) (*entity.StockCell, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetForUpdate(productID, locationID string) (*entity.StockCell, error)
	Upsert(cell *entity.StockCell) error
	ListByLocation(locationID string) ([]*entity.StockCell, error)
	// CountPositiveByLocation celdas activas con cantidad > 0 en la ubicación.
	CountPositiveByLocation(locationID string) (int, error)
	// CountPositiveByProduct celdas activas con cantidad > 0 del producto.
	CountPositiveByProduct(productID string) (int, error)
	// CountByProduct celdas activas del producto (con o sin stock); un
	// producto con celdas tiene historial de costos y se vuelve inmutable.
	CountByProduct(productID string) (int, error)
}
