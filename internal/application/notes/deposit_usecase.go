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

// StockDepositNotesUseCase lifecycle controller de StockDepositNote.
// El documento no tiene líneas: un producto, una cantidad, dos ubicaciones
// opcionales (al menos una).
type StockDepositNotesUseCase struct {
	txRunner  TxRunner
	notes     repository.StockDepositNoteRepository
	products  repository.ProductRepository
	locations repository.StockLocationRepository
	stock     *movements.StockEngine
}

// NewStockDepositNotesUseCase construye el caso de uso.
func NewStockDepositNotesUseCase(
	txRunner TxRunner,
	notes repository.StockDepositNoteRepository,
	products repository.ProductRepository,
	locations repository.StockLocationRepository,
	stock *movements.StockEngine,
) *StockDepositNotesUseCase {
	return &StockDepositNotesUseCase{
		txRunner:  txRunner,
		notes:     notes,
		products:  products,
		locations: locations,
		stock:     stock,
	}
}

// Create crea una StockDepositNote en DRAFT.
func (uc *StockDepositNotesUseCase) Create(ctx context.Context, userID string, in dto.CreateStockDepositNoteRequest) (*entity.StockDepositNote, error) {
	if err := uc.validateStructure(in.ProductID, in.FromStockLocationID, in.ToStockLocationID, in.Quantity.IsPositive()); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	note := &entity.StockDepositNote{
		ID:                  uuid.New().String(),
		FromStockLocationID: in.FromStockLocationID,
		ToStockLocationID:   in.ToStockLocationID,
		ProductID:           in.ProductID,
		Quantity:            in.Quantity,
		Date:                date,
		Status:              entity.StatusDraft,
		Notes:               in.Notes,
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

// GetByID devuelve una StockDepositNote activa.
func (uc *StockDepositNotesUseCase) GetByID(ctx context.Context, id string) (*entity.StockDepositNote, error) {
	note, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: nota de depósito", domain.ErrNotFound)
	}
	return note, nil
}

// List lista StockDepositNotes activas.
func (uc *StockDepositNotesUseCase) List(ctx context.Context, limit, offset int) ([]*entity.StockDepositNote, error) {
	return uc.notes.List(limit, offset)
}

// Update actualiza una StockDepositNote solo si está en DRAFT.
func (uc *StockDepositNotesUseCase) Update(ctx context.Context, id, userID string, in dto.CreateStockDepositNoteRequest) (*entity.StockDepositNote, error) {
	note, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if note.Status != entity.StatusDraft {
		return nil, fmt.Errorf("%w: la nota de depósito solo es editable en DRAFT", domain.ErrInvalidState)
	}
	if err := uc.validateStructure(in.ProductID, in.FromStockLocationID, in.ToStockLocationID, in.Quantity.IsPositive()); err != nil {
		return nil, err
	}

	note.FromStockLocationID = in.FromStockLocationID
	note.ToStockLocationID = in.ToStockLocationID
	note.ProductID = in.ProductID
	note.Quantity = in.Quantity
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

// Delete soft delete de una StockDepositNote solo si está en DRAFT.
func (uc *StockDepositNotesUseCase) Delete(ctx context.Context, id, userID string) error {
	note, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if note.Status != entity.StatusDraft {
		return fmt.Errorf("%w: la nota de depósito solo es editable en DRAFT", domain.ErrInvalidState)
	}
	note.SoftDelete(time.Now().UTC(), userID)
	return uc.notes.Update(note)
}

// Confirm confirma una StockDepositNote: DRAFT -> CONFIRMED.
// Resta en la ubicación origen y suma en la destino (la que exista).
func (uc *StockDepositNotesUseCase) Confirm(ctx context.Context, noteID, userID string) (*entity.StockDepositNote, error) {
	var confirmed *entity.StockDepositNote
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := r.Deposits.GetByIDForUpdate(noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return fmt.Errorf("%w: nota de depósito", domain.ErrNotFound)
		}
		if note.Status != entity.StatusDraft {
			return fmt.Errorf("%w: la nota de depósito ya fue confirmada", domain.ErrInvalidState)
		}
		if err := uc.validateStructure(note.ProductID, note.FromStockLocationID, note.ToStockLocationID, note.Quantity.IsPositive()); err != nil {
			return err
		}
		if err := uc.checkReferences(r, note); err != nil {
			return err
		}

		effect, ok := document.EffectOf(document.KindStockDeposit)
		if !ok {
			return domain.ErrUnsupportedAggregate
		}

		if effect.Stock {
			doc := movements.StockDocument{
				Kind:                document.KindStockDeposit,
				ProductID:           note.ProductID,
				Quantity:            note.Quantity,
				FromStockLocationID: note.FromStockLocationID,
				ToStockLocationID:   note.ToStockLocationID,
			}
			if err := uc.stock.Apply(r.Cells, r.Locations, doc, nil, note.Date, userID); err != nil {
				return err
			}
		}

		note.Status = entity.StatusConfirmed
		note.UpdatedAt = time.Now().UTC()
		note.UpdatedBy = userID
		if err := r.Deposits.Update(note); err != nil {
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

// validateStructure reglas estructurales del documento.
func (uc *StockDepositNotesUseCase) validateStructure(productID string, from, to *string, quantityPositive bool) error {
	if productID == "" {
		return fmt.Errorf("%w: product_id es obligatorio", domain.ErrValidation)
	}
	if !quantityPositive {
		return fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrValidation)
	}
	if from == nil && to == nil {
		return fmt.Errorf("%w: se requiere al menos una ubicación de origen o destino", domain.ErrValidation)
	}
	if from != nil && to != nil && *from == *to {
		return fmt.Errorf("%w: origen y destino no pueden ser la misma ubicación", domain.ErrValidation)
	}
	return nil
}

// checkReferences verifica producto y ubicaciones referenciadas.
func (uc *StockDepositNotesUseCase) checkReferences(r TxRepos, note *entity.StockDepositNote) error {
	product, err := r.Products.GetByID(note.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return fmt.Errorf("%w: producto", domain.ErrNotFound)
	}
	for _, id := range []*string{note.FromStockLocationID, note.ToStockLocationID} {
		if id == nil {
			continue
		}
		loc, err := r.Locations.GetByID(*id)
		if err != nil {
			return err
		}
		if loc == nil {
			return fmt.Errorf("%w: ubicación de stock", domain.ErrNotFound)
		}
	}
	return nil
}
