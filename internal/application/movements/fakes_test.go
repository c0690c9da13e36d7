package movements_test

import (
	"fmt"

	"github.com/jhoicas/Deme-api/internal/application/movements"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos que usan los engines. Replican el contrato
// de los adapters reales: Get* de celdas devuelve una celda vacía (ID="",
// Quantity=0) cuando no hay fila, y las cuentas devuelven nil si no existen.
// ──────────────────────────────────────────────────────────────────────────────

var testNames = movements.CompanyNames{
	CashAccountName:         "DEME_CASH",
	StockLocationName:       "DEME_STOCK",
	CustomerLocationPattern: "customer_%s_stock",
	SupplierAccountPattern:  "supplier_%s_cash",
}

type fakeCellRepo struct {
	cells map[string]*entity.StockCell // productID|locationID -> celda
}

func newFakeCellRepo() *fakeCellRepo {
	return &fakeCellRepo{cells: make(map[string]*entity.StockCell)}
}

func cellKey(productID, locationID string) string {
	return productID + "|" + locationID
}

func (r *fakeCellRepo) seed(productID, locationID string, qty decimal.Decimal) {
	r.cells[cellKey(productID, locationID)] = &entity.StockCell{
		ID:              "cell-" + productID + "-" + locationID,
		ProductID:       productID,
		StockLocationID: locationID,
		Quantity:        qty,
		IsActive:        true,
	}
}

func (r *fakeCellRepo) quantity(productID, locationID string) decimal.Decimal {
	if cell, ok := r.cells[cellKey(productID, locationID)]; ok {
		return cell.Quantity
	}
	return decimal.Zero
}

func (r *fakeCellRepo) Get(productID, locationID string) (*entity.StockCell, error) {
	if cell, ok := r.cells[cellKey(productID, locationID)]; ok {
		copied := *cell
		return &copied, nil
	}
	return &entity.StockCell{
		ProductID:       productID,
		StockLocationID: locationID,
		Quantity:        decimal.Zero,
	}, nil
}

func (r *fakeCellRepo) GetForUpdate(productID, locationID string) (*entity.StockCell, error) {
	return r.Get(productID, locationID)
}

func (r *fakeCellRepo) Upsert(cell *entity.StockCell) error {
	copied := *cell
	r.cells[cellKey(cell.ProductID, cell.StockLocationID)] = &copied
	return nil
}

func (r *fakeCellRepo) ListByLocation(locationID string) ([]*entity.StockCell, error) {
	var out []*entity.StockCell
	for _, cell := range r.cells {
		if cell.StockLocationID == locationID {
			copied := *cell
			out = append(out, &copied)
		}
	}
	return out, nil
}

func (r *fakeCellRepo) CountPositiveByLocation(locationID string) (int, error) {
	n := 0
	for _, cell := range r.cells {
		if cell.StockLocationID == locationID && cell.Quantity.IsPositive() {
			n++
		}
	}
	return n, nil
}

func (r *fakeCellRepo) CountPositiveByProduct(productID string) (int, error) {
	n := 0
	for _, cell := range r.cells {
		if cell.ProductID == productID && cell.Quantity.IsPositive() {
			n++
		}
	}
	return n, nil
}

func (r *fakeCellRepo) CountByProduct(productID string) (int, error) {
	n := 0
	for _, cell := range r.cells {
		if cell.ProductID == productID {
			n++
		}
	}
	return n, nil
}

type fakeLocationRepo struct {
	byName map[string]*entity.StockLocation
}

func newFakeLocationRepo(names ...string) *fakeLocationRepo {
	r := &fakeLocationRepo{byName: make(map[string]*entity.StockLocation)}
	for i, name := range names {
		r.byName[name] = &entity.StockLocation{
			ID:   fmt.Sprintf("loc-%d", i+1),
			Name: name,
		}
	}
	return r
}

func (r *fakeLocationRepo) id(name string) string {
	return r.byName[name].ID
}

func (r *fakeLocationRepo) Create(location *entity.StockLocation) error {
	r.byName[location.Name] = location
	return nil
}

func (r *fakeLocationRepo) GetByID(id string) (*entity.StockLocation, error) {
	for _, loc := range r.byName {
		if loc.ID == id {
			return loc, nil
		}
	}
	return nil, nil
}

func (r *fakeLocationRepo) GetByName(name string) (*entity.StockLocation, error) {
	return r.byName[name], nil
}

func (r *fakeLocationRepo) Update(location *entity.StockLocation) error { return nil }

func (r *fakeLocationRepo) List(limit, offset int) ([]*entity.StockLocation, error) {
	return nil, nil
}

type fakeAccountRepo struct {
	byName map[string]*entity.CashAccount
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{byName: make(map[string]*entity.CashAccount)}
}

func (r *fakeAccountRepo) seed(id, name string, balance decimal.Decimal) {
	r.byName[name] = &entity.CashAccount{
		ID:       id,
		Name:     name,
		Balance:  balance,
		IsActive: true,
	}
}

func (r *fakeAccountRepo) balance(name string) decimal.Decimal {
	return r.byName[name].Balance
}

func (r *fakeAccountRepo) Create(account *entity.CashAccount) error {
	r.byName[account.Name] = account
	return nil
}

func (r *fakeAccountRepo) GetByID(id string) (*entity.CashAccount, error) {
	for _, account := range r.byName {
		if account.ID == id {
			return account, nil
		}
	}
	return nil, nil
}

func (r *fakeAccountRepo) GetByIDForUpdate(id string) (*entity.CashAccount, error) {
	return r.GetByID(id)
}

func (r *fakeAccountRepo) GetByName(name string) (*entity.CashAccount, error) {
	return r.byName[name], nil
}

func (r *fakeAccountRepo) GetByNameForUpdate(name string) (*entity.CashAccount, error) {
	return r.byName[name], nil
}

func (r *fakeAccountRepo) Update(account *entity.CashAccount) error {
	r.byName[account.Name] = account
	return nil
}

func (r *fakeAccountRepo) List(limit, offset int) ([]*entity.CashAccount, error) {
	return nil, nil
}
