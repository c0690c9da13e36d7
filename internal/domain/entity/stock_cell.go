package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockCell saldo de stock de un producto en una ubicación.
// Única por (producto, ubicación); se crea perezosamente en el primer
// movimiento hacia la celda. Quantity nunca queda negativa: esa invariante
// la garantiza el stock movement engine, el único que escribe aquí.
type StockCell struct {
	ID              string
	ProductID       string
	StockLocationID string
	Quantity        decimal.Decimal
	IsActive        bool
	UpdatedAt       time.Time // fecha de negocio del documento, no reloj de pared
	UpdatedBy       string
}
