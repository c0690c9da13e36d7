package notes_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/application/movements"
	"github.com/jhoicas/Deme-api/internal/application/notes"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
)

type salesFixture struct {
	state *memState
	uc    *notes.SalesNotesUseCase
}

func newSalesFixture() *salesFixture {
	state := newMemState()
	state.seedLocation("loc-deme", "DEME_STOCK")
	state.seedAccount("acc-deme", "DEME_CASH", decimal.NewFromInt(100))
	state.seedCustomer("cli-1", "Cliente Uno")
	state.seedLocation("loc-cli", "customer_cli-1_stock")
	state.seedProduct("prod-1", "Cemento", true)

	runner := &memTxRunner{state: state}
	uc := notes.NewSalesNotesUseCase(
		runner,
		memSales{state},
		memSalesLines{state},
		memCustomers{state},
		movements.NewStockEngine(testNames),
		movements.NewCashEngine(testNames),
	)
	return &salesFixture{state: state, uc: uc}
}

func (f *salesFixture) createDraft(t *testing.T) *entity.SalesNote {
	t.Helper()
	note, err := f.uc.Create(context.Background(), testUserID, dto.CreateSalesNoteRequest{
		CustomerID: "cli-1",
	})
	require.NoError(t, err)
	require.Equal(t, entity.StatusDraft, note.Status)
	require.True(t, note.PaidAmount.IsZero())
	return note
}

func (f *salesFixture) addLine(t *testing.T, noteID string, qty, total int64) {
	t.Helper()
	_, err := f.uc.AddLine(context.Background(), noteID, testUserID, dto.LineRequest{
		ProductID:  "prod-1",
		Quantity:   decimal.NewFromInt(qty),
		UnitPrice:  decimal.NewFromInt(total).Div(decimal.NewFromInt(qty)),
		TotalPrice: decimal.NewFromInt(total),
	})
	require.NoError(t, err)
}

func TestSalesCreate_SinCliente_RetornaValidacion(t *testing.T) {
	f := newSalesFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreateSalesNoteRequest{})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSalesCreate_ClienteInexistente_RetornaNotFound(t *testing.T) {
	f := newSalesFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreateSalesNoteRequest{
		CustomerID: "cli-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSalesConfirm_ConsumeClientePrimeroYAcreditaCaja(t *testing.T) {
	f := newSalesFixture()
	f.state.seedCell("prod-1", "loc-cli", decimal.NewFromInt(3))
	f.state.seedCell("prod-1", "loc-deme", decimal.NewFromInt(10))

	note := f.createDraft(t)
	f.addLine(t, note.ID, 5, 80)

	confirmed, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, confirmed.Status)
	assert.True(t, confirmed.TotalAmount.Equal(decimal.NewFromInt(80)))
	assert.True(t, confirmed.PaidAmount.Equal(decimal.NewFromInt(80)),
		"la venta confirmada queda totalmente pagada")
	assert.True(t, f.state.cellQuantity("prod-1", "loc-cli").IsZero(),
		"primero se consume la ubicación del cliente")
	assert.True(t, f.state.cellQuantity("prod-1", "loc-deme").Equal(decimal.NewFromInt(8)),
		"el faltante sale de DEME_STOCK")
	assert.True(t, f.state.accountBalance("acc-deme").Equal(decimal.NewFromInt(180)),
		"DEME_CASH sube el total de la venta")
}

func TestSalesConfirm_SinLineas_RetornaValidacion(t *testing.T) {
	f := newSalesFixture()
	note := f.createDraft(t)
	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSalesConfirm_DobleConfirmacion_RetornaInvalidState(t *testing.T) {
	f := newSalesFixture()
	f.state.seedCell("prod-1", "loc-deme", decimal.NewFromInt(10))
	note := f.createDraft(t)
	f.addLine(t, note.ID, 2, 20)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	_, err = f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, f.state.accountBalance("acc-deme").Equal(decimal.NewFromInt(120)),
		"la caja no debe acreditarse dos veces")
}

func TestSalesConfirm_StockInsuficiente_EsAtomico(t *testing.T) {
	f := newSalesFixture()
	f.state.seedCell("prod-1", "loc-deme", decimal.NewFromInt(2))

	note := f.createDraft(t)
	f.addLine(t, note.ID, 5, 50)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvariant)

	stored, errGet := f.uc.GetByID(context.Background(), note.ID)
	require.NoError(t, errGet)
	assert.Equal(t, entity.StatusDraft, stored.Status)
	assert.True(t, stored.PaidAmount.IsZero(), "el pago no debe sellarse si la confirmación falla")
	assert.True(t, f.state.cellQuantity("prod-1", "loc-deme").Equal(decimal.NewFromInt(2)),
		"el stock debe quedar intacto tras el rollback")
	assert.True(t, f.state.accountBalance("acc-deme").Equal(decimal.NewFromInt(100)))
}

func TestSalesAddLine_NotaConfirmada_RetornaInvalidState(t *testing.T) {
	f := newSalesFixture()
	f.state.seedCell("prod-1", "loc-deme", decimal.NewFromInt(10))
	note := f.createDraft(t)
	f.addLine(t, note.ID, 2, 20)
	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	_, err = f.uc.AddLine(context.Background(), note.ID, testUserID, dto.LineRequest{
		ProductID:  "prod-1",
		Quantity:   decimal.NewFromInt(1),
		UnitPrice:  decimal.NewFromInt(10),
		TotalPrice: decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
