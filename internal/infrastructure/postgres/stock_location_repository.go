package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
)

var _ repository.StockLocationRepository = (*StockLocationRepo)(nil)

// StockLocationRepo implementación de StockLocationRepository sobre PostgreSQL (usable con pool o tx).
type StockLocationRepo struct {
	q Querier
}

// NewStockLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockLocationRepository(q Querier) *StockLocationRepo {
	return &StockLocationRepo{q: q}
}

const stockLocationColumns = `id, name, is_active, created_at, updated_at, created_by, updated_by, deleted_at`

func scanStockLocation(row pgx.Row) (*entity.StockLocation, error) {
	var l entity.StockLocation
	err := row.Scan(
		&l.ID, &l.Name, &l.IsActive, &l.CreatedAt, &l.UpdatedAt,
		&l.CreatedBy, &l.UpdatedBy, &l.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste una nueva ubicación de stock.
func (r *StockLocationRepo) Create(location *entity.StockLocation) error {
	query := `
		INSERT INTO stock_locations (id, name, is_active, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.IsActive,
		location.CreatedAt, location.UpdatedAt, location.CreatedBy, location.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameAlreadyExists
		}
		return fmt.Errorf("insert stock location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación activa por ID.
func (r *StockLocationRepo) GetByID(id string) (*entity.StockLocation, error) {
	query := `SELECT ` + stockLocationColumns + ` FROM stock_locations WHERE id = $1 AND is_active = TRUE`
	l, err := scanStockLocation(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock location: %w", err)
	}
	return l, nil
}

// GetByName obtiene una ubicación activa por nombre exacto.
// Los movement engines resuelven así las ubicaciones reservadas.
func (r *StockLocationRepo) GetByName(name string) (*entity.StockLocation, error) {
	query := `SELECT ` + stockLocationColumns + ` FROM stock_locations WHERE name = $1 AND is_active = TRUE`
	l, err := scanStockLocation(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock location by name: %w", err)
	}
	return l, nil
}

// Update actualiza una ubicación (incluye soft delete).
func (r *StockLocationRepo) Update(location *entity.StockLocation) error {
	query := `
		UPDATE stock_locations
		SET name = $2, is_active = $3, updated_at = $4, updated_by = $5, deleted_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.IsActive,
		location.UpdatedAt, location.UpdatedBy, location.DeletedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameAlreadyExists
		}
		return fmt.Errorf("update stock location: %w", err)
	}
	return nil
}

// List lista ubicaciones activas con paginación.
func (r *StockLocationRepo) List(limit, offset int) ([]*entity.StockLocation, error) {
	query := `
		SELECT ` + stockLocationColumns + `
		FROM stock_locations WHERE is_active = TRUE
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLocation
	for rows.Next() {
		l, err := scanStockLocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock location: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
