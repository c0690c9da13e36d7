package dto

import "github.com/shopspring/decimal"

// CreateProductRequest alta de producto.
type CreateProductRequest struct {
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	IsInventory *bool           `json:"is_inventory"` // nil = true
	CostAverage decimal.Decimal `json:"cost_average"`
}

// UpdateProductRequest edición de producto. Campos nil no cambian.
// IsInventory y CostAverage solo son editables mientras el producto no tenga
// historial de movimientos.
type UpdateProductRequest struct {
	Name        *string          `json:"name"`
	UnitMeasure *string          `json:"unit_measure"`
	IsInventory *bool            `json:"is_inventory"`
	CostAverage *decimal.Decimal `json:"cost_average"`
}

// CreateStockLocationRequest alta de ubicación de stock.
type CreateStockLocationRequest struct {
	Name string `json:"name"`
}

// CreateCashAccountRequest alta de cuenta de efectivo.
type CreateCashAccountRequest struct {
	Name string `json:"name"`
}

// StockCellResponse saldo de una celda para consultas.
type StockCellResponse struct {
	ProductID       string          `json:"product_id"`
	StockLocationID string          `json:"stock_location_id"`
	Quantity        decimal.Decimal `json:"quantity"`
}
