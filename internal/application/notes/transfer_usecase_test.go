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

type transferFixture struct {
	state *memState
	uc    *notes.CashTransferNotesUseCase
}

func newTransferFixture() *transferFixture {
	state := newMemState()
	state.seedAccount("acc-1", "caja-principal", decimal.NewFromInt(100))
	state.seedAccount("acc-2", "caja-chica", decimal.NewFromInt(5))

	runner := &memTxRunner{state: state}
	uc := notes.NewCashTransferNotesUseCase(
		runner,
		memTransfers{state},
		memAccounts{state},
		movements.NewCashEngine(testNames),
	)
	return &transferFixture{state: state, uc: uc}
}

func (f *transferFixture) createDraft(t *testing.T, amount int64) *entity.CashTransferNote {
	t.Helper()
	note, err := f.uc.Create(context.Background(), testUserID, dto.CreateCashTransferNoteRequest{
		FromCashAccountID: "acc-1",
		ToCashAccountID:   "acc-2",
		Amount:            decimal.NewFromInt(amount),
	})
	require.NoError(t, err)
	return note
}

func TestTransferCreate_CuentasIguales_RetornaValidacion(t *testing.T) {
	f := newTransferFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreateCashTransferNoteRequest{
		FromCashAccountID: "acc-1",
		ToCashAccountID:   "acc-1",
		Amount:            decimal.NewFromInt(10),
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransferCreate_MontoNoPositivo_RetornaValidacion(t *testing.T) {
	f := newTransferFixture()
	_, err := f.uc.Create(context.Background(), testUserID, dto.CreateCashTransferNoteRequest{
		FromCashAccountID: "acc-1",
		ToCashAccountID:   "acc-2",
		Amount:            decimal.Zero,
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestTransferConfirm_MueveSaldo(t *testing.T) {
	f := newTransferFixture()
	note := f.createDraft(t, 40)

	confirmed, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	assert.Equal(t, entity.StatusConfirmed, confirmed.Status)
	assert.True(t, f.state.accountBalance("acc-1").Equal(decimal.NewFromInt(60)))
	assert.True(t, f.state.accountBalance("acc-2").Equal(decimal.NewFromInt(45)))
}

func TestTransferConfirm_SaldoInsuficiente_EsAtomico(t *testing.T) {
	f := newTransferFixture()
	note := f.createDraft(t, 500)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvariant)

	stored, errGet := f.uc.GetByID(context.Background(), note.ID)
	require.NoError(t, errGet)
	assert.Equal(t, entity.StatusDraft, stored.Status)
	assert.True(t, f.state.accountBalance("acc-1").Equal(decimal.NewFromInt(100)))
	assert.True(t, f.state.accountBalance("acc-2").Equal(decimal.NewFromInt(5)))
}

func TestTransferConfirm_CuentaInexistente_RetornaNotFound(t *testing.T) {
	f := newTransferFixture()
	note, err := f.uc.Create(context.Background(), testUserID, dto.CreateCashTransferNoteRequest{
		FromCashAccountID: "acc-1",
		ToCashAccountID:   "acc-fantasma",
		Amount:            decimal.NewFromInt(10),
	})
	require.NoError(t, err, "la referencia se valida al confirmar, no al crear")

	_, err = f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransferConfirm_DobleConfirmacion_RetornaInvalidState(t *testing.T) {
	f := newTransferFixture()
	note := f.createDraft(t, 10)

	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	_, err = f.uc.Confirm(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	assert.True(t, f.state.accountBalance("acc-1").Equal(decimal.NewFromInt(90)),
		"la segunda confirmación no debe mover saldo")
}

func TestTransferDelete_NotaConfirmada_RetornaInvalidState(t *testing.T) {
	f := newTransferFixture()
	note := f.createDraft(t, 10)
	_, err := f.uc.Confirm(context.Background(), note.ID, testUserID)
	require.NoError(t, err)

	err = f.uc.Delete(context.Background(), note.ID, testUserID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
