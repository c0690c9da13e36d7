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
	_ repository.PurchaseNoteRepository = (*PurchaseNoteRepo)(nil)
	_ repository.PurchaseLineRepository = (*PurchaseLineRepo)(nil)
)

// PurchaseNoteRepo implementación de PurchaseNoteRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseNoteRepo struct {
	q Querier
}

// NewPurchaseNoteRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseNoteRepository(q Querier) *PurchaseNoteRepo {
	return &PurchaseNoteRepo{q: q}
}

const purchaseNoteColumns = `id, supplier_id, date, status, total_amount, paid_amount, is_active, created_at, updated_at, created_by, updated_by, deleted_at`

func scanPurchaseNote(row pgx.Row) (*entity.PurchaseNote, error) {
	var n entity.PurchaseNote
	err := row.Scan(
		&n.ID, &n.SupplierID, &n.Date, &n.Status, &n.TotalAmount, &n.PaidAmount,
		&n.IsActive, &n.CreatedAt, &n.UpdatedAt, &n.CreatedBy, &n.UpdatedBy, &n.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// Create persiste una nueva nota de compra.
func (r *PurchaseNoteRepo) Create(note *entity.PurchaseNote) error {
	query := `
		INSERT INTO purchase_notes (id, supplier_id, date, status, total_amount, paid_amount, is_active, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.SupplierID, note.Date, note.Status, note.TotalAmount, note.PaidAmount,
		note.IsActive, note.CreatedAt, note.UpdatedAt, note.CreatedBy, note.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase note: %w", err)
	}
	return nil
}

// GetByID obtiene una nota de compra activa por ID.
func (r *PurchaseNoteRepo) GetByID(id string) (*entity.PurchaseNote, error) {
	query := `SELECT ` + purchaseNoteColumns + ` FROM purchase_notes WHERE id = $1 AND is_active = TRUE`
	n, err := scanPurchaseNote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase note: %w", err)
	}
	return n, nil
}

// GetByIDForUpdate obtiene la nota y bloquea la fila (SELECT FOR UPDATE) para
// serializar confirmaciones concurrentes sobre el mismo documento.
func (r *PurchaseNoteRepo) GetByIDForUpdate(id string) (*entity.PurchaseNote, error) {
	query := `SELECT ` + purchaseNoteColumns + ` FROM purchase_notes WHERE id = $1 AND is_active = TRUE FOR UPDATE`
	n, err := scanPurchaseNote(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase note for update: %w", err)
	}
	return n, nil
}

// Update actualiza una nota de compra (incluye cambio de estado y soft delete).
func (r *PurchaseNoteRepo) Update(note *entity.PurchaseNote) error {
	query := `
		UPDATE purchase_notes
		SET supplier_id = $2, date = $3, status = $4, total_amount = $5, paid_amount = $6,
		    is_active = $7, updated_at = $8, updated_by = $9, deleted_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		note.ID, note.SupplierID, note.Date, note.Status, note.TotalAmount, note.PaidAmount,
		note.IsActive, note.UpdatedAt, note.UpdatedBy, note.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase note: %w", err)
	}
	return nil
}

// List lista notas de compra activas con paginación.
func (r *PurchaseNoteRepo) List(limit, offset int) ([]*entity.PurchaseNote, error) {
	query := `
		SELECT ` + purchaseNoteColumns + `
		FROM purchase_notes WHERE is_active = TRUE
		ORDER BY date DESC, created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase notes: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseNote
	for rows.Next() {
		n, err := scanPurchaseNote(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase note: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}

// CountActiveBySupplier notas de compra activas del proveedor.
func (r *PurchaseNoteRepo) CountActiveBySupplier(supplierID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_notes WHERE supplier_id = $1 AND is_active = TRUE`,
		supplierID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchase notes by supplier: %w", err)
	}
	return count, nil
}

// PurchaseLineRepo implementación de PurchaseLineRepository sobre PostgreSQL (usable con pool o tx).
type PurchaseLineRepo struct {
	q Querier
}

// NewPurchaseLineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseLineRepository(q Querier) *PurchaseLineRepo {
	return &PurchaseLineRepo{q: q}
}

const purchaseLineColumns = `id, purchase_note_id, product_id, quantity, unit_price, total_price, is_active, created_at, updated_at, created_by, updated_by, deleted_at`

func scanPurchaseLine(row pgx.Row) (*entity.PurchaseLine, error) {
	var l entity.PurchaseLine
	err := row.Scan(
		&l.ID, &l.PurchaseNoteID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.TotalPrice,
		&l.IsActive, &l.CreatedAt, &l.UpdatedAt, &l.CreatedBy, &l.UpdatedBy, &l.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

// Create persiste una nueva línea de compra.
func (r *PurchaseLineRepo) Create(line *entity.PurchaseLine) error {
	query := `
		INSERT INTO purchase_lines (id, purchase_note_id, product_id, quantity, unit_price, total_price, is_active, created_at, updated_at, created_by, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.PurchaseNoteID, line.ProductID, line.Quantity, line.UnitPrice, line.TotalPrice,
		line.IsActive, line.CreatedAt, line.UpdatedAt, line.CreatedBy, line.UpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert purchase line: %w", err)
	}
	return nil
}

// GetByID obtiene una línea activa por nota y línea.
func (r *PurchaseLineRepo) GetByID(noteID, lineID string) (*entity.PurchaseLine, error) {
	query := `
		SELECT ` + purchaseLineColumns + `
		FROM purchase_lines WHERE id = $2 AND purchase_note_id = $1 AND is_active = TRUE`
	l, err := scanPurchaseLine(r.q.QueryRow(context.Background(), query, noteID, lineID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase line: %w", err)
	}
	return l, nil
}

// ListByNote lista las líneas activas de una nota.
func (r *PurchaseLineRepo) ListByNote(noteID string) ([]*entity.PurchaseLine, error) {
	query := `
		SELECT ` + purchaseLineColumns + `
		FROM purchase_lines WHERE purchase_note_id = $1 AND is_active = TRUE
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, noteID)
	if err != nil {
		return nil, fmt.Errorf("list purchase lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseLine
	for rows.Next() {
		l, err := scanPurchaseLine(rows)
		if err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Update actualiza una línea (incluye soft delete).
func (r *PurchaseLineRepo) Update(line *entity.PurchaseLine) error {
	query := `
		UPDATE purchase_lines
		SET product_id = $2, quantity = $3, unit_price = $4, total_price = $5,
		    is_active = $6, updated_at = $7, updated_by = $8, deleted_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		line.ID, line.ProductID, line.Quantity, line.UnitPrice, line.TotalPrice,
		line.IsActive, line.UpdatedAt, line.UpdatedBy, line.DeletedAt,
	)
	if err != nil {
		return fmt.Errorf("update purchase line: %w", err)
	}
	return nil
}

// CountActiveByProduct líneas activas que referencian el producto.
func (r *PurchaseLineRepo) CountActiveByProduct(productID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM purchase_lines WHERE product_id = $1 AND is_active = TRUE`,
		productID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count purchase lines by product: %w", err)
	}
	return count, nil
}
