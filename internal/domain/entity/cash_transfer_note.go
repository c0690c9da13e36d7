package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashTransferNote documento de transferencia de efectivo entre dos cuentas.
// Las cuentas deben ser distintas y el monto estrictamente positivo.
type CashTransferNote struct {
	ID                string
	FromCashAccountID string
	ToCashAccountID   string
	Amount            decimal.Decimal
	Date              time.Time
	Status            DocumentStatus
	Notes             string
	Audit
}
