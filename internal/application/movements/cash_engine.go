package movements

import (
	"fmt"
	"time"

	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/document"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CashEngine aplica efectos reales sobre CashAccount.
//
// Modelo operativo cerrado: un movimiento es siempre (delta, cuenta) con dos
// restricciones de signo opcionales sobre el saldo resultante.
//
// Casos:
//   - Compra:        DEME_CASH baja paid_amount (no puede quedar negativa);
//     si total > paid, la cuenta del proveedor baja la diferencia (deuda,
//     cualquier signo permitido).
//   - Venta:         DEME_CASH sube total_amount, sin restricción de signo.
//   - Transferencia: cuenta origen baja amount (no puede quedar negativa);
//     cuenta destino sube amount sin restricción.
type CashEngine struct {
	names CompanyNames
}

// NewCashEngine construye el engine con los nombres canónicos de cuentas.
func NewCashEngine(names CompanyNames) *CashEngine {
	return &CashEngine{names: names}
}

// Apply ejecuta el movimiento de efectivo del documento recibido.
// accounts debe estar atado a la transacción del caller.
func (e *CashEngine) Apply(
	accounts repository.CashAccountRepository,
	doc CashDocument,
	date time.Time,
	userID string,
) error {
	switch doc.Kind {
	case document.KindPurchase:
		return e.applyPurchase(accounts, doc, date, userID)
	case document.KindSale:
		return e.applySale(accounts, doc, date, userID)
	case document.KindCashTransfer:
		return e.applyCashTransfer(accounts, doc, date, userID)
	default:
		return fmt.Errorf("%w: %s en cash engine", domain.ErrUnsupportedAggregate, doc.Kind)
	}
}

// applyPurchase salida de efectivo de DEME y registro de deuda con el
// proveedor. Las dos patas son independientes: la deuda se registra aunque
// paid_amount sea cero.
func (e *CashEngine) applyPurchase(
	accounts repository.CashAccountRepository,
	doc CashDocument,
	date time.Time,
	userID string,
) error {
	if doc.PaidAmount.IsPositive() {
		deme, err := e.demeAccount(accounts)
		if err != nil {
			return err
		}
		if err := e.applyDelta(accounts, deme, doc.PaidAmount.Neg(), true, false, date, userID); err != nil {
			return err
		}
	}

	if doc.TotalAmount.GreaterThan(doc.PaidAmount) {
		supplier, err := e.supplierAccount(accounts, doc.SupplierID)
		if err != nil {
			return err
		}
		debt := doc.TotalAmount.Sub(doc.PaidAmount)
		if err := e.applyDelta(accounts, supplier, debt.Neg(), false, false, date, userID); err != nil {
			return err
		}
	}
	return nil
}

// applySale entrada de efectivo en la cuenta DEME.
func (e *CashEngine) applySale(
	accounts repository.CashAccountRepository,
	doc CashDocument,
	date time.Time,
	userID string,
) error {
	if !doc.TotalAmount.IsPositive() {
		return nil
	}
	deme, err := e.demeAccount(accounts)
	if err != nil {
		return err
	}
	return e.applyDelta(accounts, deme, doc.TotalAmount, false, false, date, userID)
}

// applyCashTransfer transferencia entre dos cuentas; la de origen no puede
// quedar negativa.
func (e *CashEngine) applyCashTransfer(
	accounts repository.CashAccountRepository,
	doc CashDocument,
	date time.Time,
	userID string,
) error {
	from, err := e.accountByID(accounts, doc.FromCashAccountID)
	if err != nil {
		return err
	}
	to, err := e.accountByID(accounts, doc.ToCashAccountID)
	if err != nil {
		return err
	}

	if err := e.applyDelta(accounts, from, doc.Amount.Neg(), true, false, date, userID); err != nil {
		return err
	}
	return e.applyDelta(accounts, to, doc.Amount, false, false, date, userID)
}

// applyDelta aplica un delta sobre una cuenta rechazando los signos
// prohibidos del saldo resultante.
func (e *CashEngine) applyDelta(
	accounts repository.CashAccountRepository,
	account *entity.CashAccount,
	delta decimal.Decimal,
	forbidNegative, forbidPositive bool,
	date time.Time,
	userID string,
) error {
	newBalance := account.Balance.Add(delta)

	if forbidNegative && newBalance.IsNegative() {
		return fmt.Errorf("%w: el saldo de la cuenta no puede quedar negativo", domain.ErrInvariant)
	}
	if forbidPositive && newBalance.IsPositive() {
		return fmt.Errorf("%w: el saldo de la cuenta no puede quedar positivo", domain.ErrInvariant)
	}

	account.Balance = newBalance
	account.UpdatedAt = date
	account.UpdatedBy = userID
	return accounts.Update(account)
}

func (e *CashEngine) accountByID(accounts repository.CashAccountRepository, id string) (*entity.CashAccount, error) {
	account, err := accounts.GetByIDForUpdate(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta de efectivo", domain.ErrNotFound)
	}
	return account, nil
}

func (e *CashEngine) demeAccount(accounts repository.CashAccountRepository) (*entity.CashAccount, error) {
	account, err := accounts.GetByNameForUpdate(e.names.CashAccountName)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta de efectivo DEME", domain.ErrNotFound)
	}
	return account, nil
}

func (e *CashEngine) supplierAccount(accounts repository.CashAccountRepository, supplierID string) (*entity.CashAccount, error) {
	name := fmt.Sprintf(e.names.SupplierAccountPattern, supplierID)
	account, err := accounts.GetByNameForUpdate(name)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, fmt.Errorf("%w: cuenta de efectivo del proveedor", domain.ErrNotFound)
	}
	return account, nil
}
