package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockDepositNote documento de movimiento de stock entre dos ubicaciones.
// From o To pueden omitirse (ajuste sin contraparte), pero no ambos.
// No tiene líneas: es una acción única sobre un producto.
type StockDepositNote struct {
	ID                  string
	FromStockLocationID *string
	ToStockLocationID   *string
	ProductID           string
	Quantity            decimal.Decimal
	Date                time.Time
	Status              DocumentStatus
	Notes               string
	Audit
}
