package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseNote documento de compra a proveedor.
// TotalAmount se recalcula desde las líneas; PaidAmount nunca lo supera.
type PurchaseNote struct {
	ID          string
	SupplierID  string
	Date        time.Time // fecha de negocio que sellan los movimientos
	Status      DocumentStatus
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Audit
}

// PurchaseLine línea de una PurchaseNote.
// TotalPrice lo aporta el caller; no se recalcula desde quantity*unit_price.
type PurchaseLine struct {
	ID             string
	PurchaseNoteID string
	ProductID      string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	TotalPrice     decimal.Decimal
	Audit
}
