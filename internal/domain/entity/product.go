package entity

import "github.com/shopspring/decimal"

// Product representa un producto comercializado por DEME.
// IsInventory indica si participa en el control de stock; los servicios
// (no este modelo) deciden qué líneas generan movimiento.
// CostAverage es costo promedio; se vuelve de solo lectura cuando el
// producto tiene historial de movimientos.
type Product struct {
	ID          string
	Name        string // único entre productos activos
	UnitMeasure string
	IsInventory bool
	CostAverage decimal.Decimal
	Audit
}
