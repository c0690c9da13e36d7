// Package movements contiene los motores de ejecución de movimientos de
// stock y de efectivo.
//
// Los engines NO son CRUD, no conocen documentos completos ni cambian
// estados: reciben snapshots inmutables (cabecera + líneas), la fecha
// efectiva y el usuario actuante, y aplican los deltas sobre
// StockCell/CashAccount usando repositorios atados a la transacción del
// caller. La atomicidad entre líneas la garantiza esa transacción externa,
// no el engine.
package movements

import (
	"github.com/jhoicas/Deme-api/internal/domain/document"
	"github.com/shopspring/decimal"
)

// CompanyNames nombres canónicos que los engines resuelven por nombre exacto.
type CompanyNames struct {
	CashAccountName         string
	StockLocationName       string
	CustomerLocationPattern string // fmt con %s = customer ID
	SupplierAccountPattern  string // fmt con %s = supplier ID
}

// StockDocument snapshot de cabecera para el stock engine.
// Solo se leen los campos que aplican al Kind correspondiente.
type StockDocument struct {
	Kind document.Kind

	// Ventas
	CustomerID string

	// Depósitos (acción única, sin líneas)
	ProductID           string
	Quantity            decimal.Decimal
	FromStockLocationID *string
	ToStockLocationID   *string
}

// CashDocument snapshot de cabecera para el cash engine.
type CashDocument struct {
	Kind document.Kind

	// Compras y ventas
	SupplierID  string
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal

	// Transferencias
	FromCashAccountID string
	ToCashAccountID   string
	Amount            decimal.Decimal
}

// Line snapshot de una línea de compra o venta.
type Line struct {
	ProductID  string
	Quantity   decimal.Decimal
	TotalPrice decimal.Decimal
}
