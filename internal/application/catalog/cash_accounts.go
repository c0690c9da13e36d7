package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
	"github.com/jhoicas/Deme-api/pkg/config"
	"github.com/shopspring/decimal"
)

// CashAccountsUseCase casos de uso de CashAccount.
// El saldo nunca se edita por aquí: solo lo mueve el cash movement engine al
// confirmar documentos. La cuenta canónica la siembra el arranque y las de
// proveedor viven con su proveedor.
type CashAccountsUseCase struct {
	accounts repository.CashAccountRepository
	company  config.CompanyConfig
}

// NewCashAccountsUseCase construye el caso de uso.
func NewCashAccountsUseCase(accounts repository.CashAccountRepository, company config.CompanyConfig) *CashAccountsUseCase {
	return &CashAccountsUseCase{accounts: accounts, company: company}
}

// Create crea una cuenta de efectivo con saldo cero y nombre único.
func (uc *CashAccountsUseCase) Create(ctx context.Context, userID string, in dto.CreateCashAccountRequest) (*entity.CashAccount, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}
	existing, err := uc.accounts.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: cuenta %q", domain.ErrNameAlreadyExists, in.Name)
	}

	now := time.Now().UTC()
	account := &entity.CashAccount{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Balance:   decimal.Zero,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
		UpdatedBy: userID,
	}
	if err := uc.accounts.Create(account); err != nil {
		return nil, err
	}
	return account, nil
}

// GetByID devuelve una cuenta activa.
func (uc *CashAccountsUseCase) GetByID(ctx context.Context, id string) (*entity.CashAccount, error) {
	account, err := uc.accounts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta de efectivo", domain.ErrNotFound)
	}
	return account, nil
}

// List lista cuentas activas.
func (uc *CashAccountsUseCase) List(ctx context.Context, limit, offset int) ([]*entity.CashAccount, error) {
	return uc.accounts.List(limit, offset)
}

// Update renombra una cuenta, manteniendo el nombre único. La cuenta
// canónica no se renombra.
func (uc *CashAccountsUseCase) Update(ctx context.Context, id, userID string, in dto.CreateCashAccountRequest) (*entity.CashAccount, error) {
	account, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if account.Name == uc.company.CashAccountName {
		return nil, fmt.Errorf("%w: la cuenta canónica no es editable", domain.ErrValidation)
	}
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}
	if in.Name != account.Name {
		existing, err := uc.accounts.GetByName(in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: cuenta %q", domain.ErrNameAlreadyExists, in.Name)
		}
		account.Name = in.Name
	}
	account.UpdatedAt = time.Now().UTC()
	account.UpdatedBy = userID
	if err := uc.accounts.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

// Delete soft delete de una cuenta. Se bloquea para la canónica y para
// cualquier cuenta con saldo distinto de cero.
func (uc *CashAccountsUseCase) Delete(ctx context.Context, id, userID string) error {
	account, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if account.Name == uc.company.CashAccountName {
		return fmt.Errorf("%w: la cuenta canónica no puede eliminarse", domain.ErrValidation)
	}
	if !account.Balance.IsZero() {
		return fmt.Errorf("%w: la cuenta tiene saldo distinto de cero", domain.ErrValidation)
	}
	account.IsActive = false
	account.UpdatedAt = time.Now().UTC()
	account.UpdatedBy = userID
	return uc.accounts.Update(account)
}
