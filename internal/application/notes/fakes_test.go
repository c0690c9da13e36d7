package notes_test

import (
	"context"

	"github.com/jhoicas/Deme-api/internal/application/movements"
	"github.com/jhoicas/Deme-api/internal/application/notes"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Infraestructura de test: un almacén en memoria con semántica de transacción.
// El fake TxRunner toma un snapshot antes de fn y lo restaura si fn falla,
// replicando el Rollback del TxRunner real. Así los tests de confirm() pueden
// verificar atomicidad de verdad: si el engine falla, nada queda persistido.
// ──────────────────────────────────────────────────────────────────────────────

var testNames = movements.CompanyNames{
	CashAccountName:         "DEME_CASH",
	StockLocationName:       "DEME_STOCK",
	CustomerLocationPattern: "customer_%s_stock",
	SupplierAccountPattern:  "supplier_%s_cash",
}

type memState struct {
	products  map[string]entity.Product
	locations map[string]entity.StockLocation
	cells     map[string]entity.StockCell // productID|locationID
	accounts  map[string]entity.CashAccount
	customers map[string]entity.Customer
	suppliers map[string]entity.Supplier

	purchases     map[string]entity.PurchaseNote
	purchaseLines map[string]entity.PurchaseLine
	sales         map[string]entity.SalesNote
	salesLines    map[string]entity.SalesLine
	deposits      map[string]entity.StockDepositNote
	transfers     map[string]entity.CashTransferNote
}

func newMemState() *memState {
	return &memState{
		products:      make(map[string]entity.Product),
		locations:     make(map[string]entity.StockLocation),
		cells:         make(map[string]entity.StockCell),
		accounts:      make(map[string]entity.CashAccount),
		customers:     make(map[string]entity.Customer),
		suppliers:     make(map[string]entity.Supplier),
		purchases:     make(map[string]entity.PurchaseNote),
		purchaseLines: make(map[string]entity.PurchaseLine),
		sales:         make(map[string]entity.SalesNote),
		salesLines:    make(map[string]entity.SalesLine),
		deposits:      make(map[string]entity.StockDepositNote),
		transfers:     make(map[string]entity.CashTransferNote),
	}
}

func copyMap[V any](src map[string]V) map[string]V {
	dst := make(map[string]V, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func (s *memState) clone() *memState {
	return &memState{
		products:      copyMap(s.products),
		locations:     copyMap(s.locations),
		cells:         copyMap(s.cells),
		accounts:      copyMap(s.accounts),
		customers:     copyMap(s.customers),
		suppliers:     copyMap(s.suppliers),
		purchases:     copyMap(s.purchases),
		purchaseLines: copyMap(s.purchaseLines),
		sales:         copyMap(s.sales),
		salesLines:    copyMap(s.salesLines),
		deposits:      copyMap(s.deposits),
		transfers:     copyMap(s.transfers),
	}
}

func (s *memState) repos() notes.TxRepos {
	return notes.TxRepos{
		Products:      memProducts{s},
		Locations:     memLocations{s},
		Cells:         memCells{s},
		Accounts:      memAccounts{s},
		Purchases:     memPurchases{s},
		PurchaseLines: memPurchaseLines{s},
		Sales:         memSales{s},
		SalesLines:    memSalesLines{s},
		Deposits:      memDeposits{s},
		Transfers:     memTransfers{s},
		Customers:     memCustomers{s},
		Suppliers:     memSuppliers{s},
	}
}

type memTxRunner struct {
	state *memState
}

func (t *memTxRunner) Run(ctx context.Context, fn func(r notes.TxRepos) error) error {
	snapshot := t.state.clone()
	if err := fn(t.state.repos()); err != nil {
		*t.state = *snapshot
		return err
	}
	return nil
}

// ── seeds ────────────────────────────────────────────────────────────────────

func (s *memState) seedProduct(id, name string, isInventory bool) {
	s.products[id] = entity.Product{
		ID:          id,
		Name:        name,
		IsInventory: isInventory,
		Audit:       entity.Audit{IsActive: true},
	}
}

func (s *memState) seedLocation(id, name string) {
	s.locations[id] = entity.StockLocation{
		ID:    id,
		Name:  name,
		Audit: entity.Audit{IsActive: true},
	}
}

func (s *memState) seedCell(productID, locationID string, qty decimal.Decimal) {
	key := productID + "|" + locationID
	s.cells[key] = entity.StockCell{
		ID:              "cell-" + key,
		ProductID:       productID,
		StockLocationID: locationID,
		Quantity:        qty,
		IsActive:        true,
	}
}

func (s *memState) seedAccount(id, name string, balance decimal.Decimal) {
	s.accounts[id] = entity.CashAccount{
		ID:       id,
		Name:     name,
		Balance:  balance,
		IsActive: true,
	}
}

func (s *memState) seedSupplier(id, name string) {
	s.suppliers[id] = entity.Supplier{
		ID:    id,
		Name:  name,
		Audit: entity.Audit{IsActive: true},
	}
}

func (s *memState) seedCustomer(id, name string) {
	s.customers[id] = entity.Customer{
		ID:    id,
		Name:  name,
		Audit: entity.Audit{IsActive: true},
	}
}

func (s *memState) cellQuantity(productID, locationID string) decimal.Decimal {
	if cell, ok := s.cells[productID+"|"+locationID]; ok {
		return cell.Quantity
	}
	return decimal.Zero
}

func (s *memState) accountBalance(id string) decimal.Decimal {
	return s.accounts[id].Balance
}

// ── repos ────────────────────────────────────────────────────────────────────

type memProducts struct{ s *memState }

func (r memProducts) Create(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) GetByID(id string) (*entity.Product, error) {
	if p, ok := r.s.products[id]; ok && p.IsActive {
		return &p, nil
	}
	return nil, nil
}

func (r memProducts) GetByName(name string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.Name == name && p.IsActive {
			return &p, nil
		}
	}
	return nil, nil
}

func (r memProducts) Update(p *entity.Product) error {
	r.s.products[p.ID] = *p
	return nil
}

func (r memProducts) List(limit, offset int) ([]*entity.Product, error) { return nil, nil }

type memLocations struct{ s *memState }

func (r memLocations) Create(l *entity.StockLocation) error {
	r.s.locations[l.ID] = *l
	return nil
}

func (r memLocations) GetByID(id string) (*entity.StockLocation, error) {
	if l, ok := r.s.locations[id]; ok && l.IsActive {
		return &l, nil
	}
	return nil, nil
}

func (r memLocations) GetByName(name string) (*entity.StockLocation, error) {
	for _, l := range r.s.locations {
		if l.Name == name && l.IsActive {
			return &l, nil
		}
	}
	return nil, nil
}

func (r memLocations) Update(l *entity.StockLocation) error {
	r.s.locations[l.ID] = *l
	return nil
}

func (r memLocations) List(limit, offset int) ([]*entity.StockLocation, error) { return nil, nil }

type memCells struct{ s *memState }

func (r memCells) Get(productID, locationID string) (*entity.StockCell, error) {
	if cell, ok := r.s.cells[productID+"|"+locationID]; ok {
		return &cell, nil
	}
	return &entity.StockCell{
		ProductID:       productID,
		StockLocationID: locationID,
		Quantity:        decimal.Zero,
	}, nil
}

func (r memCells) GetForUpdate(productID, locationID string) (*entity.StockCell, error) {
	return r.Get(productID, locationID)
}

func (r memCells) Upsert(cell *entity.StockCell) error {
	r.s.cells[cell.ProductID+"|"+cell.StockLocationID] = *cell
	return nil
}

func (r memCells) ListByLocation(locationID string) ([]*entity.StockCell, error) {
	return nil, nil
}

func (r memCells) CountPositiveByLocation(locationID string) (int, error) {
	n := 0
	for _, cell := range r.s.cells {
		if cell.StockLocationID == locationID && cell.Quantity.IsPositive() {
			n++
		}
	}
	return n, nil
}

func (r memCells) CountPositiveByProduct(productID string) (int, error) {
	n := 0
	for _, cell := range r.s.cells {
		if cell.ProductID == productID && cell.Quantity.IsPositive() {
			n++
		}
	}
	return n, nil
}

func (r memCells) CountByProduct(productID string) (int, error) {
	n := 0
	for _, cell := range r.s.cells {
		if cell.ProductID == productID {
			n++
		}
	}
	return n, nil
}

type memAccounts struct{ s *memState }

func (r memAccounts) Create(a *entity.CashAccount) error {
	r.s.accounts[a.ID] = *a
	return nil
}

func (r memAccounts) GetByID(id string) (*entity.CashAccount, error) {
	if a, ok := r.s.accounts[id]; ok && a.IsActive {
		return &a, nil
	}
	return nil, nil
}

func (r memAccounts) GetByIDForUpdate(id string) (*entity.CashAccount, error) {
	return r.GetByID(id)
}

func (r memAccounts) GetByName(name string) (*entity.CashAccount, error) {
	for _, a := range r.s.accounts {
		if a.Name == name && a.IsActive {
			return &a, nil
		}
	}
	return nil, nil
}

func (r memAccounts) GetByNameForUpdate(name string) (*entity.CashAccount, error) {
	return r.GetByName(name)
}

func (r memAccounts) Update(a *entity.CashAccount) error {
	r.s.accounts[a.ID] = *a
	return nil
}

func (r memAccounts) List(limit, offset int) ([]*entity.CashAccount, error) { return nil, nil }

type memCustomers struct{ s *memState }

func (r memCustomers) Create(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomers) GetByID(id string) (*entity.Customer, error) {
	if c, ok := r.s.customers[id]; ok && c.IsActive {
		return &c, nil
	}
	return nil, nil
}

func (r memCustomers) Update(c *entity.Customer) error {
	r.s.customers[c.ID] = *c
	return nil
}

func (r memCustomers) List(limit, offset int) ([]*entity.Customer, error) { return nil, nil }

type memSuppliers struct{ s *memState }

func (r memSuppliers) Create(sp *entity.Supplier) error {
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r memSuppliers) GetByID(id string) (*entity.Supplier, error) {
	if sp, ok := r.s.suppliers[id]; ok && sp.IsActive {
		return &sp, nil
	}
	return nil, nil
}

func (r memSuppliers) GetByName(name string) (*entity.Supplier, error) {
	for _, sp := range r.s.suppliers {
		if sp.Name == name && sp.IsActive {
			return &sp, nil
		}
	}
	return nil, nil
}

func (r memSuppliers) Update(sp *entity.Supplier) error {
	r.s.suppliers[sp.ID] = *sp
	return nil
}

func (r memSuppliers) List(limit, offset int) ([]*entity.Supplier, error) { return nil, nil }

type memPurchases struct{ s *memState }

func (r memPurchases) Create(n *entity.PurchaseNote) error {
	r.s.purchases[n.ID] = *n
	return nil
}

func (r memPurchases) GetByID(id string) (*entity.PurchaseNote, error) {
	if n, ok := r.s.purchases[id]; ok && n.IsActive {
		return &n, nil
	}
	return nil, nil
}

func (r memPurchases) GetByIDForUpdate(id string) (*entity.PurchaseNote, error) {
	return r.GetByID(id)
}

func (r memPurchases) Update(n *entity.PurchaseNote) error {
	r.s.purchases[n.ID] = *n
	return nil
}

func (r memPurchases) List(limit, offset int) ([]*entity.PurchaseNote, error) { return nil, nil }

func (r memPurchases) CountActiveBySupplier(supplierID string) (int, error) {
	n := 0
	for _, note := range r.s.purchases {
		if note.SupplierID == supplierID && note.IsActive {
			n++
		}
	}
	return n, nil
}

type memPurchaseLines struct{ s *memState }

func (r memPurchaseLines) Create(l *entity.PurchaseLine) error {
	r.s.purchaseLines[l.ID] = *l
	return nil
}

func (r memPurchaseLines) GetByID(noteID, lineID string) (*entity.PurchaseLine, error) {
	if l, ok := r.s.purchaseLines[lineID]; ok && l.PurchaseNoteID == noteID && l.IsActive {
		return &l, nil
	}
	return nil, nil
}

func (r memPurchaseLines) ListByNote(noteID string) ([]*entity.PurchaseLine, error) {
	var out []*entity.PurchaseLine
	for _, l := range r.s.purchaseLines {
		if l.PurchaseNoteID == noteID && l.IsActive {
			copied := l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r memPurchaseLines) Update(l *entity.PurchaseLine) error {
	r.s.purchaseLines[l.ID] = *l
	return nil
}

func (r memPurchaseLines) CountActiveByProduct(productID string) (int, error) {
	n := 0
	for _, l := range r.s.purchaseLines {
		if l.ProductID == productID && l.IsActive {
			n++
		}
	}
	return n, nil
}

type memSales struct{ s *memState }

func (r memSales) Create(n *entity.SalesNote) error {
	r.s.sales[n.ID] = *n
	return nil
}

func (r memSales) GetByID(id string) (*entity.SalesNote, error) {
	if n, ok := r.s.sales[id]; ok && n.IsActive {
		return &n, nil
	}
	return nil, nil
}

func (r memSales) GetByIDForUpdate(id string) (*entity.SalesNote, error) {
	return r.GetByID(id)
}

func (r memSales) Update(n *entity.SalesNote) error {
	r.s.sales[n.ID] = *n
	return nil
}

func (r memSales) List(limit, offset int) ([]*entity.SalesNote, error) { return nil, nil }

func (r memSales) CountActiveByCustomer(customerID string) (int, error) {
	n := 0
	for _, note := range r.s.sales {
		if note.CustomerID == customerID && note.IsActive {
			n++
		}
	}
	return n, nil
}

type memSalesLines struct{ s *memState }

func (r memSalesLines) Create(l *entity.SalesLine) error {
	r.s.salesLines[l.ID] = *l
	return nil
}

func (r memSalesLines) GetByID(noteID, lineID string) (*entity.SalesLine, error) {
	if l, ok := r.s.salesLines[lineID]; ok && l.SalesNoteID == noteID && l.IsActive {
		return &l, nil
	}
	return nil, nil
}

func (r memSalesLines) ListByNote(noteID string) ([]*entity.SalesLine, error) {
	var out []*entity.SalesLine
	for _, l := range r.s.salesLines {
		if l.SalesNoteID == noteID && l.IsActive {
			copied := l
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r memSalesLines) Update(l *entity.SalesLine) error {
	r.s.salesLines[l.ID] = *l
	return nil
}

func (r memSalesLines) CountActiveByProduct(productID string) (int, error) {
	n := 0
	for _, l := range r.s.salesLines {
		if l.ProductID == productID && l.IsActive {
			n++
		}
	}
	return n, nil
}

type memDeposits struct{ s *memState }

func (r memDeposits) Create(n *entity.StockDepositNote) error {
	r.s.deposits[n.ID] = *n
	return nil
}

func (r memDeposits) GetByID(id string) (*entity.StockDepositNote, error) {
	if n, ok := r.s.deposits[id]; ok && n.IsActive {
		return &n, nil
	}
	return nil, nil
}

func (r memDeposits) GetByIDForUpdate(id string) (*entity.StockDepositNote, error) {
	return r.GetByID(id)
}

func (r memDeposits) Update(n *entity.StockDepositNote) error {
	r.s.deposits[n.ID] = *n
	return nil
}

func (r memDeposits) List(limit, offset int) ([]*entity.StockDepositNote, error) { return nil, nil }

type memTransfers struct{ s *memState }

func (r memTransfers) Create(n *entity.CashTransferNote) error {
	r.s.transfers[n.ID] = *n
	return nil
}

func (r memTransfers) GetByID(id string) (*entity.CashTransferNote, error) {
	if n, ok := r.s.transfers[id]; ok && n.IsActive {
		return &n, nil
	}
	return nil, nil
}

func (r memTransfers) GetByIDForUpdate(id string) (*entity.CashTransferNote, error) {
	return r.GetByID(id)
}

func (r memTransfers) Update(n *entity.CashTransferNote) error {
	r.s.transfers[n.ID] = *n
	return nil
}

func (r memTransfers) List(limit, offset int) ([]*entity.CashTransferNote, error) { return nil, nil }
