package dto

// CreateCustomerRequest alta de cliente (provisiona su StockLocation).
type CreateCustomerRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// UpdateCustomerRequest edición de cliente.
type UpdateCustomerRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}

// CreateSupplierRequest alta de proveedor (provisiona su CashAccount).
type CreateSupplierRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// UpdateSupplierRequest edición de proveedor.
type UpdateSupplierRequest struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
	Notes *string `json:"notes"`
}
