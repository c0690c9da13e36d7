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

type depositFixture struct {
	state *memState
	uc    *notes.StockDepositNotesUseCase
}

func newDepositFixture() *depositFixture {
	state := newMemState()
	state.seedLocation("loc-deme", "DEME_STOCK")
	state.seedLocation("loc-bod", "bodega-norte")
	state.seedProduct("prod-1", "Cemento", true)

	runner := &memTxRunner{state: state}
	uc := notes.NewStockDepositNotesUseCase(
		runner,
		memDeposits{state},
		memProducts{state},
		memLocations{state},
		movements.NewStockEngine(testNames),
	)
	return &depositFixture{state: state, uc: uc}
}

func strPtr(s string) *string { return &s }

func (f *depositFixture) createDraft(t *testing.T, from, to *string, qty int64) *entity.StockDepositNote {
	t.Helper()
	note, err := f.uc.Create(context.Background(), testUserID, dto.CreateStockDepositNoteRequest{
		FromStockLocationID: from,
		ToStockLocationID:   to,
		ProductID:           "prod-1",
		Quantity:            decimal.NewFromInt(qty),
	})
	require.NoError(t, err)
	return note
}

func TestDepositCreate_SinUbicaciones_RetornaValidacion(t *testing.T) {
	f := newDepositFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreateStockDepositNoteRequest{
		ProductID: "prod-1",
		Quantity:  decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDepositCreate_OrigenIgualDestino_RetornaValidacion(t *testing.T) {
	f := newDepositFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreateStockDepositNoteRequest{
		FromStockLocationID: strPtr("loc-deme"),
		ToStockLocationID:   strPtr("loc-deme"),
		ProductID:           "prod-1",
		Quantity:            decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDepositCreate_CantidadCero_RetornaValidacion(t *testing.T) {
	f := newDepositFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreateStockDepositNoteRequest{
		ToStockLocationID: strPtr("loc-deme"),
		ProductID:         "prod-1",
		Quantity:          decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestDepositConfirm_MueveStockEntreUbicaciones(t *testing.T) {
	f := newDepositFixture()
	f.state.seedCell("prod-1", "loc-deme", decimal.NewFromInt(10))

	note := f.createDraft(t, strPtr("loc-deme"), strPtr("loc-bod"), 4)
	confirmed, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, confirmed.Status)
	assert.True(t, f.state.cellQuantity("prod-1", "loc-deme").Equal(decimal.NewFromInt(6)))
	assert.True(t, f.state.cellQuantity("prod-1", "loc-bod").Equal(decimal.NewFromInt(4)))
}

func TestDepositConfirm_SoloDestino_EsAjusteDeEntrada(t *testing.T) {
	f := newDepositFixture()
	note := f.createDraft(t, nil, strPtr("loc-bod"), 7)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)
	assert.True(t, f.state.cellQuantity("prod-1", "loc-bod").Equal(decimal.NewFromInt(7)))
}

func TestDepositConfirm_UbicacionInexistente_RetornaNotFound(t *testing.T) {
	f := newDepositFixture()
	note := f.createDraft(t, nil, strPtr("loc-fantasma"), 1)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDepositConfirm_OrigenInsuficiente_EsAtomico(t *testing.T) {
	f := newDepositFixture()
	f.state.seedCell("prod-1", "loc-deme", decimal.NewFromInt(2))

	note := f.createDraft(t, strPtr("loc-deme"), strPtr("loc-bod"), 5)
	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvariant)

	stored, errGet := f.uc.GetByID(context.Background(), note.ID)
	require.NoError(t, errGet)
	assert.Equal(t, entity.StatusDraft, stored.Status)
	assert.True(t, f.state.cellQuantity("prod-1", "loc-deme").Equal(decimal.NewFromInt(2)))
	assert.True(t, f.state.cellQuantity("prod-1", "loc-bod").IsZero())
}

func TestDepositConfirm_DobleConfirmacion_RetornaInvalidState(t *testing.T) {
	f := newDepositFixture()
	note := f.createDraft(t, nil, strPtr("loc-bod"), 3)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	_, err = f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, f.state.cellQuantity("prod-1", "loc-bod").Equal(decimal.NewFromInt(3)),
		"la segunda confirmación no debe duplicar el depósito")
}

func TestDepositUpdate_NotaConfirmada_RetornaInvalidState(t *testing.T) {
	f := newDepositFixture()
	note := f.createDraft(t, nil, strPtr("loc-bod"), 3)
	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	_, err = f.uc.Update(context.Background(), note.ID, testUserID, dto.CreateStockDepositNoteRequest{
		ToStockLocationID: strPtr("loc-deme"),
		ProductID:         "prod-1",
		Quantity:          decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
