package partners

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/application/notes"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
	"github.com/jhoicas/Deme-api/pkg/config"
	"github.com/shopspring/decimal"
)

// SuppliersUseCase casos de uso de Supplier.
type SuppliersUseCase struct {
	txRunner  notes.TxRunner
	suppliers repository.SupplierRepository
	company   config.CompanyConfig
}

// NewSuppliersUseCase construye el caso de uso.
func NewSuppliersUseCase(txRunner notes.TxRunner, suppliers repository.SupplierRepository, company config.CompanyConfig) *SuppliersUseCase {
	return &SuppliersUseCase{txRunner: txRunner, suppliers: suppliers, company: company}
}

// Create crea el proveedor y su CashAccount (saldo cero) en una transacción.
// El nombre del proveedor es único entre activos.
func (uc *SuppliersUseCase) Create(ctx context.Context, userID string, in dto.CreateSupplierRequest) (*entity.Supplier, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}
	existing, err := uc.suppliers.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: proveedor %q", domain.ErrNameAlreadyExists, in.Name)
	}

	now := time.Now().UTC()
	supplier := &entity.Supplier{
		ID:    uuid.New().String(),
		Name:  in.Name,
		Phone: in.Phone,
		Notes: in.Notes,
		Audit: entity.Audit{
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: userID,
			UpdatedBy: userID,
		},
	}
	err = uc.txRunner.Run(ctx, func(r notes.TxRepos) error {
		if err := r.Suppliers.Create(supplier); err != nil {
			return err
		}
		account := &entity.CashAccount{
			ID:        uuid.New().String(),
			Name:      uc.company.SupplierAccountName(supplier.ID),
			Balance:   decimal.Zero,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			UpdatedBy: userID,
		}
		return r.Accounts.Create(account)
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

// GetByID devuelve un proveedor activo.
func (uc *SuppliersUseCase) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	supplier, err := uc.suppliers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor", domain.ErrNotFound)
	}
	return supplier, nil
}

// List lista proveedores activos.
func (uc *SuppliersUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Supplier, error) {
	return uc.suppliers.List(limit, offset)
}

// Update edita datos del proveedor, manteniendo el nombre único.
func (uc *SuppliersUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateSupplierRequest) (*entity.Supplier, error) {
	supplier, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil && *in.Name != supplier.Name {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrValidation)
		}
		existing, err := uc.suppliers.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("%w: proveedor %q", domain.ErrNameAlreadyExists, *in.Name)
		}
		supplier.Name = *in.Name
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Notes != nil {
		supplier.Notes = *in.Notes
	}
	supplier.UpdatedAt = time.Now().UTC()
	supplier.UpdatedBy = userID
	if err := uc.suppliers.Update(supplier); err != nil {
		return nil, err
	}
	return supplier, nil
}

// Delete soft delete del proveedor y de su CashAccount, en una transacción.
// Se bloquea si el proveedor tiene compras activas o deuda pendiente
// (saldo distinto de cero en su cuenta).
func (uc *SuppliersUseCase) Delete(ctx context.Context, id, userID string) error {
	return uc.txRunner.Run(ctx, func(r notes.TxRepos) error {
		supplier, err := r.Suppliers.GetByID(id)
		if err != nil {
			return err
		}
		if supplier == nil {
			return fmt.Errorf("%w: proveedor", domain.ErrNotFound)
		}

		purchases, err := r.Purchases.CountActiveBySupplier(supplier.ID)
		if err != nil {
			return err
		}
		if purchases > 0 {
			return fmt.Errorf("%w: el proveedor tiene notas de compra activas", domain.ErrValidation)
		}

		account, err := r.Accounts.GetByName(uc.company.SupplierAccountName(supplier.ID))
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if account != nil {
			if !account.Balance.IsZero() {
				return fmt.Errorf("%w: la cuenta del proveedor tiene saldo pendiente", domain.ErrValidation)
			}
			account.IsActive = false
			account.UpdatedAt = now
			account.UpdatedBy = userID
			if err := r.Accounts.Update(account); err != nil {
				return err
			}
		}

		supplier.SoftDelete(now, userID)
		return r.Suppliers.Update(supplier)
	})
}
