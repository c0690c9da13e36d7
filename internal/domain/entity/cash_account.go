package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashAccount una cuenta de efectivo con saldo con signo.
// La cuenta principal DEME_CASH se siembra en el arranque; las cuentas de
// proveedor (supplier_<id>_cash) se crean con el proveedor y funcionan como
// pasivo: su saldo puede ser negativo mientras exista deuda.
// Balance solo lo escribe el cash movement engine.
type CashAccount struct {
	ID        string
	Name      string // único entre cuentas activas
	Balance   decimal.Decimal
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time // fecha de negocio del documento que movió el saldo
	UpdatedBy string
}
