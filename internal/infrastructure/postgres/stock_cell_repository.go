package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.StockCellRepository = (*StockCellRepo)(nil)

// StockCellRepo implementación de StockCellRepository sobre PostgreSQL (usable con pool o tx).
type StockCellRepo struct {
	q Querier
}

// NewStockCellRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockCellRepository(q Querier) *StockCellRepo {
	return &StockCellRepo{q: q}
}

const stockCellColumns = `id, product_id, stock_location_id, quantity, is_active, updated_at, updated_by`

func scanStockCell(row pgx.Row) (*entity.StockCell, error) {
	var c entity.StockCell
	err := row.Scan(
		&c.ID, &c.ProductID, &c.StockLocationID, &c.Quantity,
		&c.IsActive, &c.UpdatedAt, &c.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// emptyCell celda sin fila en la base: saldo cero, pendiente de creación perezosa.
func emptyCell(productID, locationID string) *entity.StockCell {
	return &entity.StockCell{
		ProductID:       productID,
		StockLocationID: locationID,
		Quantity:        decimal.Zero,
	}
}

// Get obtiene la celda de un producto en una ubicación. Si no existe,
// devuelve una celda vacía con ID="" y cantidad cero.
func (r *StockCellRepo) Get(productID, locationID string) (*entity.StockCell, error) {
	query := `
		SELECT ` + stockCellColumns + `
		FROM stock_cells WHERE product_id = $1 AND stock_location_id = $2 AND is_active = TRUE`
	c, err := scanStockCell(r.q.QueryRow(context.Background(), query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyCell(productID, locationID), nil
		}
		return nil, fmt.Errorf("get stock cell: %w", err)
	}
	return c, nil
}

// GetForUpdate obtiene la celda y bloquea la fila (SELECT FOR UPDATE).
// Si no existe fila todavía no hay nada que bloquear: devuelve celda vacía.
func (r *StockCellRepo) GetForUpdate(productID, locationID string) (*entity.StockCell, error) {
	query := `
		SELECT ` + stockCellColumns + `
		FROM stock_cells WHERE product_id = $1 AND stock_location_id = $2 AND is_active = TRUE
		FOR UPDATE`
	c, err := scanStockCell(r.q.QueryRow(context.Background(), query, productID, locationID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return emptyCell(productID, locationID), nil
		}
		return nil, fmt.Errorf("get stock cell for update: %w", err)
	}
	return c, nil
}

// Upsert inserta o actualiza la celda por (producto, ubicación).
// updated_at guarda la fecha de negocio del documento, no now().
func (r *StockCellRepo) Upsert(cell *entity.StockCell) error {
	query := `
		INSERT INTO stock_cells (id, product_id, stock_location_id, quantity, is_active, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (product_id, stock_location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, is_active = EXCLUDED.is_active,
		              updated_at = EXCLUDED.updated_at, updated_by = EXCLUDED.updated_by`
	_, err := r.q.Exec(context.Background(), query,
		cell.ID, cell.ProductID, cell.StockLocationID, cell.Quantity,
		cell.IsActive, cell.UpdatedAt, cell.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("upsert stock cell: %w", err)
	}
	return nil
}

// ListByLocation lista las celdas activas de una ubicación.
func (r *StockCellRepo) ListByLocation(locationID string) ([]*entity.StockCell, error) {
	query := `
		SELECT ` + stockCellColumns + `
		FROM stock_cells WHERE stock_location_id = $1 AND is_active = TRUE
		ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list stock cells: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockCell
	for rows.Next() {
		c, err := scanStockCell(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock cell: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// CountPositiveByLocation celdas activas con cantidad > 0 en la ubicación.
func (r *StockCellRepo) CountPositiveByLocation(locationID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_cells WHERE stock_location_id = $1 AND is_active = TRUE AND quantity > 0`,
		locationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stock cells by location: %w", err)
	}
	return count, nil
}

// CountPositiveByProduct celdas activas con cantidad > 0 del producto.
func (r *StockCellRepo) CountPositiveByProduct(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_cells WHERE product_id = $1 AND is_active = TRUE AND quantity > 0`,
		productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stock cells by product: %w", err)
	}
	return count, nil
}

// CountByProduct celdas activas del producto, con o sin saldo.
func (r *StockCellRepo) CountByProduct(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_cells WHERE product_id = $1 AND is_active = TRUE`,
		productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count stock cells: %w", err)
	}
	return count, nil
}
