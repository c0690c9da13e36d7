package entity

// Supplier proveedor de DEME. Tiene exactamente una CashAccount asociada,
// identificada por nombre con el patrón supplier_<id>_cash.
type Supplier struct {
	ID    string
	Name  string // único entre proveedores activos
	Phone string
	Notes string
	Audit
}
