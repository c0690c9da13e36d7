package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
)

var (
	_ repository.SalesNoteRepository = (*SalesNoteRepo)(nil)
	_ repository.SalesLineRepository = (*SalesLineRepo)(nil)
)

// SalesNoteRepo implementación de SalesNoteRepository sobre PostgreSQL (usable con pool o tx).
type SalesNoteRepo struct {
	q Querier
}

// NewSalesNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesNoteRepository(q Querier) *SalesNoteRepo {
	return &SalesNoteRepo{q: q}
}

const salesNoteColumns = `id, customer_id, date, status, total_amount, paid_amount, is_active, created_at, updated_at, created_by, updated_by, deleted_at`

func scanSalesNote(row pgx.Row) (*entity.SalesNote, error) {
	var n entity.SalesNote
	err := row.Scan(
		&n.ID, &n.CustomerID, &n.Date, &n.Status, &n.TotalAmount, &n.PaidAmount,
		&n.IsActive, &n.CreatedAt, &n.UpdatedAt, &n.CreatedBy, &n.UpdatedBy, &n.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste una nueva nota de venta.
func (r *SalesNoteRepo) Create(note *entity.SalesNote) error {
	query := `
		INSERT INTO sales_notes (id, customer_id, date, status, total_amount, paid_amount, is_active, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.CustomerID, note.Date, note.Status, note.TotalAmount, note.PaidAmount,
		note.IsActive, note.CreatedAt, note.UpdatedAt, note.CreatedBy, note.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sales note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota de venta activa por ID.
func (r *SalesNoteRepo) GetByID(id string) (*entity.SalesNote, error) {
	query := `SELECT ` + salesNoteColumns + ` FROM sales_notes WHERE id = $1 AND is_active = TRUE`
	n, err := scanSalesNote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales note: %w", err)
	}
	return n, nil
}

// GetByIDForUpdate obtiene la nota y bloquea la fila (SELECT FOR UPDATE).
func (r *SalesNoteRepo) GetByIDForUpdate(id string) (*entity.SalesNote, error) {
	query := `SELECT ` + salesNoteColumns + ` FROM sales_notes WHERE id = $1 AND is_active = TRUE FOR UPDATE`
	n, err := scanSalesNote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales note for update: %w", err)
	}
	return n, nil
}

// Update actualiza una nota de venta (incluye cambio de estado y soft delete).
func (r *SalesNoteRepo) Update(note *entity.SalesNote) error {
	query := `
		UPDATE sales_notes
		SET customer_id = $2, date = $3, status = $4, total_amount = $5, paid_amount = $6,
		    is_active = $7, updated_at = $8, updated_by = $9, deleted_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.CustomerID, note.Date, note.Status, note.TotalAmount, note.PaidAmount,
		note.IsActive, note.UpdatedAt, note.UpdatedBy, note.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales note: %w", err)
	}
	return nil
}

// List lista notas de venta activas con paginación.
func (r *SalesNoteRepo) List(limit, offset int) ([]*entity.SalesNote, error) {
	query := `
		SELECT ` + salesNoteColumns + `
		FROM sales_notes WHERE is_active = TRUE
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesNote
	for rows.Next() {
		n, err := scanSalesNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// CountActiveByCustomer notas de venta activas del cliente.
func (r *SalesNoteRepo) CountActiveByCustomer(customerID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales_notes WHERE customer_id = $1 AND is_active = TRUE`,
		customerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales notes by customer: %w", err)
	}
	return count, nil
}

// SalesLineRepo implementación de SalesLineRepository sobre PostgreSQL (usable con pool o tx).
type SalesLineRepo struct {
	q Querier
}

// NewSalesLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesLineRepository(q Querier) *SalesLineRepo {
	return &SalesLineRepo{q: q}
}

const salesLineColumns = `id, sales_note_id, product_id, quantity, unit_price, total_price, is_active, created_at, updated_at, created_by, updated_by, deleted_at`

func scanSalesLine(row pgx.Row) (*entity.SalesLine, error) {
	var l entity.SalesLine
	err := row.Scan(
		&l.ID, &l.SalesNoteID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.TotalPrice,
		&l.IsActive, &l.CreatedAt, &l.UpdatedAt, &l.CreatedBy, &l.UpdatedBy, &l.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste una nueva línea de venta.
func (r *SalesLineRepo) Create(line *entity.SalesLine) error {
	query := `
		INSERT INTO sales_lines (id, sales_note_id, product_id, quantity, unit_price, total_price, is_active, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.SalesNoteID, line.ProductID, line.Quantity, line.UnitPrice, line.TotalPrice,
		line.IsActive, line.CreatedAt, line.UpdatedAt, line.CreatedBy, line.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert sales line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea activa por nota y línea.
func (r *SalesLineRepo) GetByID(noteID, lineID string) (*entity.SalesLine, error) {
	query := `
		SELECT ` + salesLineColumns + `
		FROM sales_lines WHERE id = $2 AND sales_note_id = $1 AND is_active = TRUE`
	l, err := scanSalesLine(r.q.QueryRow(context.Background(), query, noteID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales line: %w", err)
	}
	return l, nil
}

// ListByNote lista las líneas activas de una nota.
func (r *SalesLineRepo) ListByNote(noteID string) ([]*entity.SalesLine, error) {
	query := `
		SELECT ` + salesLineColumns + `
		FROM sales_lines WHERE sales_note_id = $1 AND is_active = TRUE
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, noteID)
	if err != nil {
		return nil, fmt.Errorf("list sales lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SalesLine
	for rows.Next() {
		l, err := scanSalesLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sales line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Update actualiza una línea (incluye soft delete).
func (r *SalesLineRepo) Update(line *entity.SalesLine) error {
	query := `
		UPDATE sales_lines
		SET product_id = $2, quantity = $3, unit_price = $4, total_price = $5,
		    is_active = $6, updated_at = $7, updated_by = $8, deleted_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ProductID, line.Quantity, line.UnitPrice, line.TotalPrice,
		line.IsActive, line.UpdatedAt, line.UpdatedBy, line.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales line: %w", err)
	}
	return nil
}

// CountActiveByProduct líneas activas que referencian el producto.
func (r *SalesLineRepo) CountActiveByProduct(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM sales_lines WHERE product_id = $1 AND is_active = TRUE`,
		productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sales lines by product: %w", err)
	}
	return count, nil
}
