package repository

import "github.com/jhoicas/Deme-api/internal/domain/entity"

// CashAccountRepository define el puerto de persistencia para CashAccount.
// El cash movement engine resuelve la cuenta DEME y las de proveedor con
// GetByNameForUpdate; Balance solo se escribe vía Update dentro de una tx.
type CashAccountRepository interface {
	Create(account *entity.CashAccount) error
	GetByID(id string) (*entity.CashAccount, error)
	// GetByIDForUpdate bloquea la fila para update (SELECT FOR UPDATE).
	GetByIDForUpdate(id string) (*entity.CashAccount, error)
	GetByName(name string) (*entity.CashAccount, error)
	GetByNameForUpdate(name string) (*entity.CashAccount, error)
	Update(account *entity.CashAccount) error
	List(limit, offset int) ([]*entity.CashAccount, error)
}
