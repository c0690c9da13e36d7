// Package partners gestiona clientes y proveedores junto con sus entidades
// derivadas: la StockLocation del cliente y la CashAccount del proveedor se
// provisionan y se retiran en la misma transacción que el partner.
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
)

// CustomersUseCase casos de uso de Customer.
type CustomersUseCase struct {
	txRunner  notes.TxRunner
	customers repository.CustomerRepository
	company   config.CompanyConfig
}

// NewCustomersUseCase construye el caso de uso.
func NewCustomersUseCase(txRunner notes.TxRunner, customers repository.CustomerRepository, company config.CompanyConfig) *CustomersUseCase {
	return &CustomersUseCase{txRunner: txRunner, customers: customers, company: company}
}

// Create crea el cliente y su StockLocation en una transacción.
func (uc *CustomersUseCase) Create(ctx context.Context, userID string, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("%w: name es obligatorio", domain.ErrValidation)
	}

	now := time.Now().UTC()
	customer := &entity.Customer{
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
	err := uc.txRunner.Run(ctx, func(r notes.TxRepos) error {
		if err := r.Customers.Create(customer); err != nil {
			return err
		}
		location := &entity.StockLocation{
			ID:   uuid.New().String(),
			Name: uc.company.CustomerLocationName(customer.ID),
			Audit: entity.Audit{
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
				CreatedBy: userID,
				UpdatedBy: userID,
			},
		}
		return r.Locations.Create(location)
	})
	if err != nil {
		return nil, err
	}
	return customer, nil
}

// GetByID devuelve un cliente activo.
func (uc *CustomersUseCase) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	customer, err := uc.customers.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
	}
	return customer, nil
}

// List lista clientes activos.
func (uc *CustomersUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	return uc.customers.List(limit, offset)
}

// Update edita datos del cliente. La ubicación asociada no se renombra:
// su nombre deriva del ID, no del nombre comercial.
func (uc *CustomersUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	customer, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name no puede quedar vacío", domain.ErrValidation)
		}
		customer.Name = *in.Name
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Notes != nil {
		customer.Notes = *in.Notes
	}
	customer.UpdatedAt = time.Now().UTC()
	customer.UpdatedBy = userID
	if err := uc.customers.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Delete soft delete del cliente y de su StockLocation, en una transacción.
// Se bloquea si el cliente tiene ventas activas o stock en su ubicación.
func (uc *CustomersUseCase) Delete(ctx context.Context, id, userID string) error {
	return uc.txRunner.Run(ctx, func(r notes.TxRepos) error {
		customer, err := r.Customers.GetByID(id)
		if err != nil {
			return err
		}
		if customer == nil {
			return fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}

		salesCount, err := r.Sales.CountActiveByCustomer(customer.ID)
		if err != nil {
			return err
		}
		if salesCount > 0 {
			return fmt.Errorf("%w: el cliente tiene notas de venta activas", domain.ErrValidation)
		}

		location, err := r.Locations.GetByName(uc.company.CustomerLocationName(customer.ID))
		if err != nil {
			return err
		}
		now := time.Now().UTC()
		if location != nil {
			withStock, err := r.Cells.CountPositiveByLocation(location.ID)
			if err != nil {
				return err
			}
			if withStock > 0 {
				return fmt.Errorf("%w: la ubicación del cliente todavía tiene stock", domain.ErrValidation)
			}
			location.SoftDelete(now, userID)
			if err := r.Locations.Update(location); err != nil {
				return err
			}
		}

		customer.SoftDelete(now, userID)
		return r.Customers.Update(customer)
	})
}
