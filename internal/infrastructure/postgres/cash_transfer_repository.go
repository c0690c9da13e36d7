package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
)

var _ repository.CashTransferNoteRepository = (*CashTransferNoteRepo)(nil)

// CashTransferNoteRepo implementación de CashTransferNoteRepository sobre PostgreSQL (usable con pool o tx).
type CashTransferNoteRepo struct {
	q Querier
}

// NewCashTransferNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashTransferNoteRepository(q Querier) *CashTransferNoteRepo {
	return &CashTransferNoteRepo{q: q}
}

const cashTransferNoteColumns = `id, from_cash_account_id, to_cash_account_id, amount, date, status, notes, is_active, created_at, updated_at, created_by, updated_by, deleted_at`

func scanCashTransferNote(row pgx.Row) (*entity.CashTransferNote, error) {
	var n entity.CashTransferNote
	err := row.Scan(
		&n.ID, &n.FromCashAccountID, &n.ToCashAccountID, &n.Amount,
		&n.Date, &n.Status, &n.Notes,
		&n.IsActive, &n.CreatedAt, &n.UpdatedAt, &n.CreatedBy, &n.UpdatedBy, &n.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste una nueva nota de transferencia.
func (r *CashTransferNoteRepo) Create(note *entity.CashTransferNote) error {
	query := `
		INSERT INTO cash_transfer_notes (id, from_cash_account_id, to_cash_account_id, amount, date, status, notes, is_active, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.FromCashAccountID, note.ToCashAccountID, note.Amount,
		note.Date, note.Status, note.Notes,
		note.IsActive, note.CreatedAt, note.UpdatedAt, note.CreatedBy, note.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert cash transfer note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota de transferencia activa por ID.
func (r *CashTransferNoteRepo) GetByID(id string) (*entity.CashTransferNote, error) {
	query := `SELECT ` + cashTransferNoteColumns + ` FROM cash_transfer_notes WHERE id = $1 AND is_active = TRUE`
	n, err := scanCashTransferNote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash transfer note: %w", err)
	}
	return n, nil
}

// GetByIDForUpdate obtiene la nota y bloquea la fila (SELECT FOR UPDATE).
func (r *CashTransferNoteRepo) GetByIDForUpdate(id string) (*entity.CashTransferNote, error) {
	query := `SELECT ` + cashTransferNoteColumns + ` FROM cash_transfer_notes WHERE id = $1 AND is_active = TRUE FOR UPDATE`
	n, err := scanCashTransferNote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash transfer note for update: %w", err)
	}
	return n, nil
}

// Update actualiza una nota de transferencia (incluye cambio de estado y soft delete).
func (r *CashTransferNoteRepo) Update(note *entity.CashTransferNote) error {
	query := `
		UPDATE cash_transfer_notes
		SET from_cash_account_id = $2, to_cash_account_id = $3, amount = $4,
		    date = $5, status = $6, notes = $7, is_active = $8, updated_at = $9, updated_by = $10, deleted_at = $11
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.FromCashAccountID, note.ToCashAccountID, note.Amount,
		note.Date, note.Status, note.Notes,
		note.IsActive, note.UpdatedAt, note.UpdatedBy, note.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update cash transfer note: %w", err)
	}
	return nil
}

// List lista notas de transferencia activas con paginación.
func (r *CashTransferNoteRepo) List(limit, offset int) ([]*entity.CashTransferNote, error) {
	query := `
		SELECT ` + cashTransferNoteColumns + `
		FROM cash_transfer_notes WHERE is_active = TRUE
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash transfer notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashTransferNote
	for rows.Next() {
		n, err := scanCashTransferNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash transfer note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
