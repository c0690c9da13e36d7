package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesNote documento de venta a cliente.
type SalesNote struct {
	ID          string
	CustomerID  string
	Date        time.Time
	Status      DocumentStatus
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Audit
}

// SalesLine línea de una SalesNote.
// TotalPrice lo aporta el caller; no se recalcula desde quantity*unit_price.
type SalesLine struct {
	ID          string
	SalesNoteID string
	ProductID   string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	Audit
}
