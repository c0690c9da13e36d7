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

const testUserID = "00000000-0000-0000-0000-000000000001"

// purchaseFixture almacén en memoria + caso de uso listo para probar.
type purchaseFixture struct {
	state *memState
	uc    *notes.PurchaseNotesUseCase
}

func newPurchaseFixture() *purchaseFixture {
	state := newMemState()
	state.seedLocation("loc-deme", "DEME_STOCK")
	state.seedAccount("acc-deme", "DEME_CASH", decimal.NewFromInt(1000))
	state.seedSupplier("sup-1", "Proveedor Uno")
	state.seedAccount("acc-sup", "supplier_sup-1_cash", decimal.Zero)
	state.seedProduct("prod-1", "Cemento", true)
	state.seedProduct("prod-2", "Flete", false) // servicio, sin inventario

	runner := &memTxRunner{state: state}
	uc := notes.NewPurchaseNotesUseCase(
		runner,
		memPurchases{state},
		memPurchaseLines{state},
		memSuppliers{state},
		movements.NewStockEngine(testNames),
		movements.NewCashEngine(testNames),
	)
	return &purchaseFixture{state: state, uc: uc}
}

func (f *purchaseFixture) createDraft(t *testing.T, paid decimal.Decimal) *entity.PurchaseNote {
	t.Helper()
	note, err := f.uc.Create(context.Background(), testUserID, dto.CreatePurchaseNoteRequest{
		SupplierID: "sup-1",
		PaidAmount: paid,
	})
	require.NoError(t, err)
	require.Equal(t, entity.StatusDraft, note.Status)
	return note
}

func (f *purchaseFixture) addLine(t *testing.T, noteID, productID string, qty, total int64) {
	t.Helper()
	_, err := f.uc.AddLine(context.Background(), noteID, testUserID, dto.LineRequest{
		ProductID:  productID,
		Quantity:   decimal.NewFromInt(qty),
		UnitPrice:  decimal.NewFromInt(total).Div(decimal.NewFromInt(qty)),
		TotalPrice: decimal.NewFromInt(total),
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// CRUD en DRAFT
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseCreate_ProveedorInexistente_RetornaNotFound(t *testing.T) {
	f := newPurchaseFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreatePurchaseNoteRequest{
		SupplierID: "sup-fantasma",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseCreate_PagoNegativo_RetornaValidacion(t *testing.T) {
	f := newPurchaseFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreatePurchaseNoteRequest{
		SupplierID: "sup-1",
		PaidAmount: decimal.NewFromInt(-5),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPurchaseAddLine_RecalculaTotal(t *testing.T) {
	f := newPurchaseFixture()
	note := f.createDraft(t, decimal.Zero)

	f.addLine(t, note.ID, "prod-1", 10, 100)
	f.addLine(t, note.ID, "prod-2", 1, 30)

	stored, err := f.uc.GetByID(context.Background(), note.ID)
	require.NoError(t, err)
	assert.True(t, stored.TotalAmount.Equal(decimal.NewFromInt(130)),
		"el total debe recalcularse en cada mutación de líneas")
}

func TestPurchaseAddLine_PagoSuperaTotal_RevierteLaLinea(t *testing.T) {
	f := newPurchaseFixture()
	note := f.createDraft(t, decimal.NewFromInt(500))

	_, err := f.uc.AddLine(context.Background(), note.ID, testUserID, dto.LineRequest{
		ProductID:  "prod-1",
		Quantity:   decimal.NewFromInt(1),
		UnitPrice:  decimal.NewFromInt(100),
		TotalPrice: decimal.NewFromInt(100),
	})
	assert.ErrorIs(t, err, domain.ErrValidation, "paid > total debe rechazarse")

	lines, err := f.uc.ListLines(context.Background(), note.ID)
	require.NoError(t, err)
	assert.Empty(t, lines, "la línea no debe persistirse si el recálculo falla")
}

func TestPurchaseDeleteLine_RecalculaTotal(t *testing.T) {
	f := newPurchaseFixture()
	note := f.createDraft(t, decimal.Zero)
	f.addLine(t, note.ID, "prod-1", 10, 100)
	f.addLine(t, note.ID, "prod-1", 5, 40)

	lines, err := f.uc.ListLines(context.Background(), note.ID)
	require.NoError(t, err)
	require.Len(t, lines, 2)

	require.NoError(t, f.uc.DeleteLine(context.Background(), note.ID, lines[0].ID, testUserID))

	stored, err := f.uc.GetByID(context.Background(), note.ID)
	require.NoError(t, err)
	remaining, err := f.uc.ListLines(context.Background(), note.ID)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.True(t, stored.TotalAmount.Equal(remaining[0].TotalPrice))
}

func TestPurchaseDelete_NotaInexistente_RetornaNotFound(t *testing.T) {
	f := newPurchaseFixture()
	err := f.uc.Delete(context.Background(), "nota-fantasma", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Confirmación
// ──────────────────────────────────────────────────────────────────────────────

func TestPurchaseConfirm_AplicaStockYCash(t *testing.T) {
	f := newPurchaseFixture()
	note := f.createDraft(t, decimal.NewFromInt(60))
	f.addLine(t, note.ID, "prod-1", 10, 100)

	confirmed, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, confirmed.Status)
	assert.True(t, confirmed.TotalAmount.Equal(decimal.NewFromInt(100)))
	assert.True(t, f.state.cellQuantity("prod-1", "loc-deme").Equal(decimal.NewFromInt(10)),
		"la compra acredita el stock en DEME_STOCK")
	assert.True(t, f.state.accountBalance("acc-deme").Equal(decimal.NewFromInt(940)),
		"DEME_CASH baja lo pagado")
	assert.True(t, f.state.accountBalance("acc-sup").Equal(decimal.NewFromInt(-40)),
		"la diferencia total-pagado queda como deuda con el proveedor")
}

func TestPurchaseConfirm_ServicioNoMueveStock(t *testing.T) {
	f := newPurchaseFixture()
	note := f.createDraft(t, decimal.Zero)
	f.addLine(t, note.ID, "prod-2", 1, 30) // producto sin inventario

	confirmed, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	assert.True(t, f.state.cellQuantity("prod-2", "loc-deme").IsZero(),
		"los servicios no generan movimiento de stock")
	assert.True(t, confirmed.TotalAmount.Equal(decimal.NewFromInt(30)),
		"el total sí incluye las líneas de servicio")
	assert.True(t, f.state.accountBalance("acc-sup").Equal(decimal.NewFromInt(-30)))
}

func TestPurchaseConfirm_LineasMixtasConPagoParcial(t *testing.T) {
	f := newPurchaseFixture()
	f.state.seedAccount("acc-deme", "DEME_CASH", decimal.NewFromInt(2000))

	note := f.createDraft(t, decimal.NewFromInt(1500))
	f.addLine(t, note.ID, "prod-1", 10, 1000) // inventario
	f.addLine(t, note.ID, "prod-2", 1, 1000)  // servicio

	confirmed, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	assert.True(t, confirmed.TotalAmount.Equal(decimal.NewFromInt(2000)))
	assert.True(t, f.state.cellQuantity("prod-1", "loc-deme").Equal(decimal.NewFromInt(10)))
	assert.True(t, f.state.cellQuantity("prod-2", "loc-deme").IsZero())
	assert.True(t, f.state.accountBalance("acc-deme").Equal(decimal.NewFromInt(500)))
	assert.True(t, f.state.accountBalance("acc-sup").Equal(decimal.NewFromInt(-500)))
}

func TestPurchaseConfirm_NotaInexistente_RetornaNotFound(t *testing.T) {
	f := newPurchaseFixture()
	_, err := f.uc.Confirm(context.Background(), "nota-fantasma", testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPurchaseConfirm_SinLineas_RetornaValidacion(t *testing.T) {
	f := newPurchaseFixture()
	note := f.createDraft(t, decimal.Zero)
	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPurchaseConfirm_DobleConfirmacion_RetornaInvalidState(t *testing.T) {
	f := newPurchaseFixture()
	note := f.createDraft(t, decimal.Zero)
	f.addLine(t, note.ID, "prod-1", 5, 50)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	_, err = f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, f.state.cellQuantity("prod-1", "loc-deme").Equal(decimal.NewFromInt(5)),
		"la segunda confirmación no debe duplicar el stock")
}

func TestPurchaseConfirm_SaldoInsuficiente_EsAtomico(t *testing.T) {
	f := newPurchaseFixture()
	f.state.seedAccount("acc-deme", "DEME_CASH", decimal.NewFromInt(10)) // menos que el pago

	note := f.createDraft(t, decimal.NewFromInt(50))
	f.addLine(t, note.ID, "prod-1", 10, 50)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvariant)

	// Nada persistido: ni el stock (que se aplicó antes del cash) ni el estado.
	stored, errGet := f.uc.GetByID(context.Background(), note.ID)
	require.NoError(t, errGet)
	assert.Equal(t, entity.StatusDraft, stored.Status, "la nota debe seguir en DRAFT")
	assert.True(t, f.state.cellQuantity("prod-1", "loc-deme").IsZero(),
		"el movimiento de stock debe revertirse con la transacción")
	assert.True(t, f.state.accountBalance("acc-deme").Equal(decimal.NewFromInt(10)))
}

func TestPurchaseUpdate_NotaConfirmada_RetornaInvalidState(t *testing.T) {
	f := newPurchaseFixture()
	note := f.createDraft(t, decimal.Zero)
	f.addLine(t, note.ID, "prod-1", 5, 50)
	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	newPaid := decimal.NewFromInt(10)
	_, err = f.uc.Update(context.Background(), note.ID, testUserID, dto.UpdatePurchaseNoteRequest{
		PaidAmount: &newPaid,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	err = f.uc.Delete(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
