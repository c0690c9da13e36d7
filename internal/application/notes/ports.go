// Package notes contiene los lifecycle controllers de los cuatro tipos de
// documento (compra, venta, depósito de stock, transferencia de efectivo):
// CRUD en DRAFT, gestión de líneas y la confirmación DRAFT -> CONFIRMED.
//
// confirm() es una unidad de trabajo única: validar -> stock -> cash ->
// cambio de estado, todo dentro de una transacción del TxRunner. Si
// cualquier paso falla no se persiste nada.
package notes

import (
	"context"

	"github.com/jhoicas/Deme-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de BD.
type TxRepos struct {
	Products      repository.ProductRepository
	Locations     repository.StockLocationRepository
	Cells         repository.StockCellRepository
	Accounts      repository.CashAccountRepository
	Purchases     repository.PurchaseNoteRepository
	PurchaseLines repository.PurchaseLineRepository
	Sales         repository.SalesNoteRepository
	SalesLines    repository.SalesLineRepository
	Deposits      repository.StockDepositNoteRepository
	Transfers     repository.CashTransferNoteRepository
	Customers     repository.CustomerRepository
	Suppliers     repository.SupplierRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Commit si fn retorna nil, Rollback si no.
// Garantiza la atomicidad de confirm() y de las mutaciones de líneas.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
