package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Deme-api/internal/application/notes"
)

var _ notes.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback según el resultado.
func (r *TxRunner) Run(ctx context.Context, fn func(repos notes.TxRepos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	repos := notes.TxRepos{
		Products:      NewProductRepository(tx),
		Locations:     NewStockLocationRepository(tx),
		Cells:         NewStockCellRepository(tx),
		Accounts:      NewCashAccountRepository(tx),
		Purchases:     NewPurchaseNoteRepository(tx),
		PurchaseLines: NewPurchaseLineRepository(tx),
		Sales:         NewSalesNoteRepository(tx),
		SalesLines:    NewSalesLineRepository(tx),
		Deposits:      NewStockDepositNoteRepository(tx),
		Transfers:     NewCashTransferNoteRepository(tx),
		Customers:     NewCustomerRepository(tx),
		Suppliers:     NewSupplierRepository(tx),
	}

	if err := fn(repos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
