package notes

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Deme-api/internal/application/dto"
	"github.com/jhoicas/Deme-api/internal/application/movements"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/document"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
)

// CashTransferNotesUseCase lifecycle controller de CashTransferNote.
// Documento sin líneas: una cuenta origen, una destino y un monto.
type CashTransferNotesUseCase struct {
	txRunner TxRunner
	notes    repository.CashTransferNoteRepository
	accounts repository.CashAccountRepository
	cash     *movements.CashEngine
}

// NewCashTransferNotesUseCase construye el caso de uso.
func NewCashTransferNotesUseCase(
	txRunner TxRunner,
	notes repository.CashTransferNoteRepository,
	accounts repository.CashAccountRepository,
	cash *movements.CashEngine,
) *CashTransferNotesUseCase {
	return &CashTransferNotesUseCase{
		txRunner: txRunner,
		notes:    notes,
		accounts: accounts,
		cash:     cash,
	}
}

// Create crea una CashTransferNote en DRAFT.
func (uc *CashTransferNotesUseCase) Create(ctx context.Context, userID string, in dto.CreateCashTransferNoteRequest) (*entity.CashTransferNote, error) {
	if err := validateTransferStructure(in.FromCashAccountID, in.ToCashAccountID, in.Amount.IsPositive()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	note := &entity.CashTransferNote{
		ID:                uuid.New().String(),
		FromCashAccountID: in.FromCashAccountID,
		ToCashAccountID:   in.ToCashAccountID,
		Amount:            in.Amount,
		Date:              date,
		Status:            entity.StatusDraft,
		Notes:             in.Notes,
		Audit: entity.Audit{
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
			CreatedBy: userID,
			UpdatedBy: userID,
		},
	}
	if err := uc.notes.Create(note); err != nil {
		return nil, err
	}
	return note, nil
}

// GetByID devuelve una CashTransferNote activa.
func (uc *CashTransferNotesUseCase) GetByID(ctx context.Context, id string) (*entity.CashTransferNote, error) {
	note, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: nota de transferencia", domain.ErrNotFound)
	}
	return note, nil
}

// List lista CashTransferNotes activas.
func (uc *CashTransferNotesUseCase) List(ctx context.Context, limit, offset int) ([]*entity.CashTransferNote, error) {
	return uc.notes.List(limit, offset)
}

// Update actualiza una CashTransferNote solo si está en DRAFT.
func (uc *CashTransferNotesUseCase) Update(ctx context.Context, id, userID string, in dto.CreateCashTransferNoteRequest) (*entity.CashTransferNote, error) {
	note, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.Status != entity.StatusDraft {
		return nil, fmt.Errorf("%w: la nota de transferencia solo es editable en DRAFT", domain.ErrInvalidState)
	}
	if err := validateTransferStructure(in.FromCashAccountID, in.ToCashAccountID, in.Amount.IsPositive()); err != nil {
		return nil, err
	}

	note.FromCashAccountID = in.FromCashAccountID
	note.ToCashAccountID = in.ToCashAccountID
	note.Amount = in.Amount
	note.Notes = in.Notes
	if in.Date != nil {
		note.Date = *in.Date
	}
	note.UpdatedAt = time.Now().UTC()
	note.UpdatedBy = userID
	if err := uc.notes.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete soft delete de una CashTransferNote solo si está en DRAFT.
func (uc *CashTransferNotesUseCase) Delete(ctx context.Context, id, userID string) error {
	note, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if note.Status != entity.StatusDraft {
		return fmt.Errorf("%w: la nota de transferencia solo es editable en DRAFT", domain.ErrInvalidState)
	}
	note.SoftDelete(time.Now().UTC(), userID)
	return uc.notes.Update(note)
}

// Confirm confirma una CashTransferNote: DRAFT -> CONFIRMED.
// La cuenta origen no puede quedar negativa; la destino recibe el monto.
func (uc *CashTransferNotesUseCase) Confirm(ctx context.Context, noteID, userID string) (*entity.CashTransferNote, error) {
	var confirmed *entity.CashTransferNote
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := r.Transfers.GetByIDForUpdate(noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return fmt.Errorf("%w: nota de transferencia", domain.ErrNotFound)
		}
		if note.Status != entity.StatusDraft {
			return fmt.Errorf("%w: la nota de transferencia ya fue confirmada", domain.ErrInvalidState)
		}
		if err := validateTransferStructure(note.FromCashAccountID, note.ToCashAccountID, note.Amount.IsPositive()); err != nil {
			return err
		}

		effect, ok := document.EffectOf(document.KindCashTransfer)
		if !ok {
			return domain.ErrUnsupportedAggregate
		}

		if effect.Cash {
			doc := movements.CashDocument{
				Kind:              document.KindCashTransfer,
				FromCashAccountID: note.FromCashAccountID,
				ToCashAccountID:   note.ToCashAccountID,
				Amount:            note.Amount,
			}
			if err := uc.cash.Apply(r.Accounts, doc, note.Date, userID); err != nil {
				return err
			}
		}

		note.Status = entity.StatusConfirmed
		note.UpdatedAt = time.Now().UTC()
		note.UpdatedBy = userID
		if err := r.Transfers.Update(note); err != nil {
			return err
		}
		confirmed = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return confirmed, nil
}

func validateTransferStructure(from, to string, amountPositive bool) error {
	if from == "" || to == "" {
		return fmt.Errorf("%w: se requieren cuenta origen y destino", domain.ErrValidation)
	}
	if from == to {
		return fmt.Errorf("%w: origen y destino no pueden ser la misma cuenta", domain.ErrValidation)
	}
	if !amountPositive {
		return fmt.Errorf("%w: amount debe ser mayor que cero", domain.ErrValidation)
	}
	return nil
}
