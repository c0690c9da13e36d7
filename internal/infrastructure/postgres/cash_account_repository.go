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

var _ repository.CashAccountRepository = (*CashAccountRepo)(nil)

// CashAccountRepo implementación de CashAccountRepository sobre PostgreSQL (usable con pool o tx).
type CashAccountRepo struct {
	q Querier
}

// NewCashAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashAccountRepository(q Querier) *CashAccountRepo {
	return &CashAccountRepo{q: q}
}

const cashAccountColumns = `id, name, balance, is_active, created_at, updated_at, updated_by`

func scanCashAccount(row pgx.Row) (*entity.CashAccount, error) {
	var a entity.CashAccount
	err := row.Scan(
		&a.ID, &a.Name, &a.Balance, &a.IsActive,
		&a.CreatedAt, &a.UpdatedAt, &a.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una nueva cuenta de efectivo.
func (r *CashAccountRepo) Create(account *entity.CashAccount) error {
	query := `
		INSERT INTO cash_accounts (id, name, balance, is_active, created_at, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Name, account.Balance, account.IsActive,
		account.CreatedAt, account.UpdatedAt, account.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameAlreadyExists
		}
		return fmt.Errorf("insert cash account: %w", err)
	}
	return nil
}

// GetByID obtiene una cuenta activa por ID.
func (r *CashAccountRepo) GetByID(id string) (*entity.CashAccount, error) {
	query := `SELECT ` + cashAccountColumns + ` FROM cash_accounts WHERE id = $1 AND is_active = TRUE`
	a, err := scanCashAccount(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account: %w", err)
	}
	return a, nil
}

// GetByIDForUpdate obtiene la cuenta y bloquea la fila (SELECT FOR UPDATE).
func (r *CashAccountRepo) GetByIDForUpdate(id string) (*entity.CashAccount, error) {
	query := `SELECT ` + cashAccountColumns + ` FROM cash_accounts WHERE id = $1 AND is_active = TRUE FOR UPDATE`
	a, err := scanCashAccount(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account for update: %w", err)
	}
	return a, nil
}

// GetByName obtiene una cuenta activa por nombre exacto.
func (r *CashAccountRepo) GetByName(name string) (*entity.CashAccount, error) {
	query := `SELECT ` + cashAccountColumns + ` FROM cash_accounts WHERE name = $1 AND is_active = TRUE`
	a, err := scanCashAccount(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account by name: %w", err)
	}
	return a, nil
}

// GetByNameForUpdate obtiene la cuenta por nombre y bloquea la fila.
// El cash movement engine resuelve así la cuenta canónica y las de proveedor.
func (r *CashAccountRepo) GetByNameForUpdate(name string) (*entity.CashAccount, error) {
	query := `SELECT ` + cashAccountColumns + ` FROM cash_accounts WHERE name = $1 AND is_active = TRUE FOR UPDATE`
	a, err := scanCashAccount(r.q.QueryRow(context.Background(), query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cash account by name for update: %w", err)
	}
	return a, nil
}

// Update actualiza una cuenta (saldo, nombre o soft delete).
func (r *CashAccountRepo) Update(account *entity.CashAccount) error {
	query := `
		UPDATE cash_accounts
		SET name = $2, balance = $3, is_active = $4, updated_at = $5, updated_by = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Name, account.Balance, account.IsActive,
		account.UpdatedAt, account.UpdatedBy,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNameAlreadyExists
		}
		return fmt.Errorf("update cash account: %w", err)
	}
	return nil
}

// List lista cuentas activas con paginación.
func (r *CashAccountRepo) List(limit, offset int) ([]*entity.CashAccount, error) {
	query := `
		SELECT ` + cashAccountColumns + `
		FROM cash_accounts WHERE is_active = TRUE
		ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash accounts: %w", err)
	}
	defer rows.Close()
	var list []*entity.CashAccount
	for rows.Next() {
		a, err := scanCashAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cash account: %w", err)
		}
		list = append(list, a)
	}
	return list, rows.Err()
}
