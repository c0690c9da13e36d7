package entity

// Customer cliente de DEME. Tiene exactamente una StockLocation asociada,
// identificada por nombre con el patrón customer_<id>_stock.
type Customer struct {
	ID    string
	Name  string
	Phone string
	Notes string
	Audit
}
