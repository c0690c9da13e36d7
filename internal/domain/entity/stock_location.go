package entity

// StockLocation una ubicación física o lógica de stock.
// Dos familias reservadas: el almacén principal (nombre canónico DEME_STOCK,
// sembrado en el arranque) y una ubicación por cliente con nombre derivado
// del ID del cliente (customer_<id>_stock), creada al crear el cliente.
type StockLocation struct {
	ID   string
	Name string // único entre ubicaciones activas
	Audit
}
