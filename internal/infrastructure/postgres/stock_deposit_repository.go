package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
)

var _ repository.StockDepositNoteRepository = (*StockDepositNoteRepo)(nil)

// StockDepositNoteRepo implementación de StockDepositNoteRepository sobre PostgreSQL (usable con pool o tx).
type StockDepositNoteRepo struct {
	q Querier
}

// NewStockDepositNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockDepositNoteRepository(q Querier) *StockDepositNoteRepo {
	return &StockDepositNoteRepo{q: q}
}

const stockDepositNoteColumns = `id, from_stock_location_id, to_stock_location_id, product_id, quantity, date, status, notes, is_active, created_at, updated_at, created_by, updated_by, deleted_at`

func scanStockDepositNote(row pgx.Row) (*entity.StockDepositNote, error) {
	var n entity.StockDepositNote
	err := row.Scan(
		&n.ID, &n.FromStockLocationID, &n.ToStockLocationID, &n.ProductID, &n.Quantity,
		&n.Date, &n.Status, &n.Notes,
		&n.IsActive, &n.CreatedAt, &n.UpdatedAt, &n.CreatedBy, &n.UpdatedBy, &n.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste una nueva nota de depósito.
func (r *StockDepositNoteRepo) Create(note *entity.StockDepositNote) error {
	query := `
		INSERT INTO stock_deposit_notes (id, from_stock_location_id, to_stock_location_id, product_id, quantity, date, status, notes, is_active, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.FromStockLocationID, note.ToStockLocationID, note.ProductID, note.Quantity,
		note.Date, note.Status, note.Notes,
		note.IsActive, note.CreatedAt, note.UpdatedAt, note.CreatedBy, note.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert stock deposit note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota de depósito activa por ID.
func (r *StockDepositNoteRepo) GetByID(id string) (*entity.StockDepositNote, error) {
	query := `SELECT ` + stockDepositNoteColumns + ` FROM stock_deposit_notes WHERE id = $1 AND is_active = TRUE`
	n, err := scanStockDepositNote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock deposit note: %w", err)
	}
	return n, nil
}

// GetByIDForUpdate obtiene la nota y bloquea la fila (SELECT FOR UPDATE).
func (r *StockDepositNoteRepo) GetByIDForUpdate(id string) (*entity.StockDepositNote, error) {
	query := `SELECT ` + stockDepositNoteColumns + ` FROM stock_deposit_notes WHERE id = $1 AND is_active = TRUE FOR UPDATE`
	n, err := scanStockDepositNote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock deposit note for update: %w", err)
	}
	return n, nil
}

// Update actualiza una nota de depósito (incluye cambio de estado y soft delete).
func (r *StockDepositNoteRepo) Update(note *entity.StockDepositNote) error {
	query := `
		UPDATE stock_deposit_notes
		SET from_stock_location_id = $2, to_stock_location_id = $3, product_id = $4, quantity = $5,
		    date = $6, status = $7, notes = $8, is_active = $9, updated_at = $10, updated_by = $11, deleted_at = $12
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.FromStockLocationID, note.ToStockLocationID, note.ProductID, note.Quantity,
		note.Date, note.Status, note.Notes,
		note.IsActive, note.UpdatedAt, note.UpdatedBy, note.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock deposit note: %w", err)
	}
	return nil
}

// List lista notas de depósito activas con paginación.
func (r *StockDepositNoteRepo) List(limit, offset int) ([]*entity.StockDepositNote, error) {
	query := `
		SELECT ` + stockDepositNoteColumns + `
		FROM stock_deposit_notes WHERE is_active = TRUE
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock deposit notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockDepositNote
	for rows.Next() {
		n, err := scanStockDepositNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock deposit note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
