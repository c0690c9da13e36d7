package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseNoteRequest crea una compra en DRAFT.
type CreatePurchaseNoteRequest struct {
	SupplierID string          `json:"supplier_id"`
	Date       *time.Time      `json:"date"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// UpdatePurchaseNoteRequest edita una compra en DRAFT. Campos nil no cambian.
type UpdatePurchaseNoteRequest struct {
	SupplierID *string          `json:"supplier_id"`
	Date       *time.Time       `json:"date"`
	PaidAmount *decimal.Decimal `json:"paid_amount"`
}

// CreateSalesNoteRequest crea una venta en DRAFT.
type CreateSalesNoteRequest struct {
	CustomerID string     `json:"customer_id"`
	Date       *time.Time `json:"date"`
}

// UpdateSalesNoteRequest edita una venta en DRAFT.
type UpdateSalesNoteRequest struct {
	CustomerID *string    `json:"customer_id"`
	Date       *time.Time `json:"date"`
}

// LineRequest crea o edita una línea de compra/venta.
// TotalPrice lo aporta el caller y se confía tal cual.
type LineRequest struct {
	ProductID  string          `json:"product_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// CreateStockDepositNoteRequest crea un depósito en DRAFT.
type CreateStockDepositNoteRequest struct {
	FromStockLocationID *string         `json:"from_stock_location_id"`
	ToStockLocationID   *string         `json:"to_stock_location_id"`
	ProductID           string          `json:"product_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	Date                *time.Time      `json:"date"`
	Notes               string          `json:"notes"`
}

// CreateCashTransferNoteRequest crea una transferencia en DRAFT.
type CreateCashTransferNoteRequest struct {
	FromCashAccountID string          `json:"from_cash_account_id"`
	ToCashAccountID   string          `json:"to_cash_account_id"`
	Amount            decimal.Decimal `json:"amount"`
	Date              *time.Time      `json:"date"`
	Notes             string          `json:"notes"`
}
