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
	"github.com/shopspring/decimal"
)

// SalesNotesUseCase lifecycle controller de SalesNote.
type SalesNotesUseCase struct {
	txRunner  TxRunner
	notes     repository.SalesNoteRepository
	lines     repository.SalesLineRepository
	customers repository.CustomerRepository
	stock     *movements.StockEngine
	cash      *movements.CashEngine
}

// NewSalesNotesUseCase construye el caso de uso.
func NewSalesNotesUseCase(
	txRunner TxRunner,
	notes repository.SalesNoteRepository,
	lines repository.SalesLineRepository,
	customers repository.CustomerRepository,
	stock *movements.StockEngine,
	cash *movements.CashEngine,
) *SalesNotesUseCase {
	return &SalesNotesUseCase{
		txRunner:  txRunner,
		notes:     notes,
		lines:     lines,
		customers: customers,
		stock:     stock,
		cash:      cash,
	}
}

// Create crea una SalesNote en DRAFT con total cero.
func (uc *SalesNotesUseCase) Create(ctx context.Context, userID string, in dto.CreateSalesNoteRequest) (*entity.SalesNote, error) {
	if in.CustomerID == "" {
		return nil, fmt.Errorf("%w: customer_id es obligatorio", domain.ErrValidation)
	}
	customer, err := uc.customers.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
	}

	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	note := &entity.SalesNote{
		ID:          uuid.New().String(),
		CustomerID:  in.CustomerID,
		Date:        date,
		Status:      entity.StatusDraft,
		TotalAmount: decimal.Zero,
		PaidAmount:  decimal.Zero,
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

// GetByID devuelve una SalesNote activa.
func (uc *SalesNotesUseCase) GetByID(ctx context.Context, id string) (*entity.SalesNote, error) {
	note, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: nota de venta", domain.ErrNotFound)
	}
	return note, nil
}

// List lista SalesNotes activas.
func (uc *SalesNotesUseCase) List(ctx context.Context, limit, offset int) ([]*entity.SalesNote, error) {
	return uc.notes.List(limit, offset)
}

// Update actualiza una SalesNote solo si está en DRAFT.
func (uc *SalesNotesUseCase) Update(ctx context.Context, id, userID string, in dto.UpdateSalesNoteRequest) (*entity.SalesNote, error) {
	note, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureDraftSale(note); err != nil {
		return nil, err
	}

	if in.CustomerID != nil {
		customer, err := uc.customers.GetByID(*in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, fmt.Errorf("%w: cliente", domain.ErrNotFound)
		}
		note.CustomerID = *in.CustomerID
	}
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

// Delete soft delete de una SalesNote solo si está en DRAFT.
func (uc *SalesNotesUseCase) Delete(ctx context.Context, id, userID string) error {
	note, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureDraftSale(note); err != nil {
		return err
	}
	note.SoftDelete(time.Now().UTC(), userID)
	return uc.notes.Update(note)
}

// ListLines devuelve las líneas activas de la nota.
func (uc *SalesNotesUseCase) ListLines(ctx context.Context, noteID string) ([]*entity.SalesLine, error) {
	if _, err := uc.GetByID(ctx, noteID); err != nil {
		return nil, err
	}
	return uc.lines.ListByNote(noteID)
}

// AddLine crea una línea y recalcula el total, en una transacción.
func (uc *SalesNotesUseCase) AddLine(ctx context.Context, noteID, userID string, in dto.LineRequest) (*entity.SalesLine, error) {
	if err := validateLine(in); err != nil {
		return nil, err
	}

	var line *entity.SalesLine
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := lockDraftSale(r, noteID)
		if err != nil {
			return err
		}
		product, err := r.Products.GetByID(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: producto", domain.ErrNotFound)
		}

		now := time.Now().UTC()
		line = &entity.SalesLine{
			ID:          uuid.New().String(),
			SalesNoteID: note.ID,
			ProductID:   in.ProductID,
			Quantity:    in.Quantity,
			UnitPrice:   in.UnitPrice,
			TotalPrice:  in.TotalPrice,
			Audit: entity.Audit{
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
				CreatedBy: userID,
				UpdatedBy: userID,
			},
		}
		if err := r.SalesLines.Create(line); err != nil {
			return err
		}
		return recalcSalesTotal(r, note, userID)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine actualiza una línea y recalcula el total, en una transacción.
func (uc *SalesNotesUseCase) UpdateLine(ctx context.Context, noteID, lineID, userID string, in dto.LineRequest) (*entity.SalesLine, error) {
	if err := validateLine(in); err != nil {
		return nil, err
	}

	var line *entity.SalesLine
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := lockDraftSale(r, noteID)
		if err != nil {
			return err
		}
		line, err = r.SalesLines.GetByID(noteID, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de venta", domain.ErrNotFound)
		}

		line.ProductID = in.ProductID
		line.Quantity = in.Quantity
		line.UnitPrice = in.UnitPrice
		line.TotalPrice = in.TotalPrice
		line.UpdatedAt = time.Now().UTC()
		line.UpdatedBy = userID
		if err := r.SalesLines.Update(line); err != nil {
			return err
		}
		return recalcSalesTotal(r, note, userID)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine soft delete de una línea y recálculo del total, en una transacción.
func (uc *SalesNotesUseCase) DeleteLine(ctx context.Context, noteID, lineID, userID string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := lockDraftSale(r, noteID)
		if err != nil {
			return err
		}
		line, err := r.SalesLines.GetByID(noteID, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de venta", domain.ErrNotFound)
		}
		line.SoftDelete(time.Now().UTC(), userID)
		if err := r.SalesLines.Update(line); err != nil {
			return err
		}
		return recalcSalesTotal(r, note, userID)
	})
}

// Confirm confirma una SalesNote: DRAFT -> CONFIRMED.
//
// La baja de stock se intenta primero contra la ubicación del cliente y el
// remanente sale de la ubicación canónica. Todas las líneas mueven stock,
// incluso productos sin inventario; el engine rechaza con invariante si un
// saldo quedara negativo y la transacción revierte completa.
func (uc *SalesNotesUseCase) Confirm(ctx context.Context, noteID, userID string) (*entity.SalesNote, error) {
	var confirmed *entity.SalesNote
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := r.Sales.GetByIDForUpdate(noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return fmt.Errorf("%w: nota de venta", domain.ErrNotFound)
		}
		if note.Status != entity.StatusDraft {
			return fmt.Errorf("%w: la nota de venta ya fue confirmada", domain.ErrInvalidState)
		}
		if note.CustomerID == "" {
			return fmt.Errorf("%w: la nota de venta requiere cliente", domain.ErrValidation)
		}

		lines, err := r.SalesLines.ListByNote(note.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("%w: la nota de venta no puede confirmarse sin líneas", domain.ErrValidation)
		}

		total := decimal.Zero
		stockLines := make([]movements.Line, 0, len(lines))
		for _, line := range lines {
			total = total.Add(line.TotalPrice)
			stockLines = append(stockLines, movements.Line{
				ProductID:  line.ProductID,
				Quantity:   line.Quantity,
				TotalPrice: line.TotalPrice,
			})
		}
		note.TotalAmount = total

		effect, ok := document.EffectOf(document.KindSale)
		if !ok {
			return domain.ErrUnsupportedAggregate
		}

		if effect.Stock {
			doc := movements.StockDocument{
				Kind:       document.KindSale,
				CustomerID: note.CustomerID,
			}
			if err := uc.stock.Apply(r.Cells, r.Locations, doc, stockLines, note.Date, userID); err != nil {
				return err
			}
		}

		if effect.Cash {
			doc := movements.CashDocument{
				Kind:        document.KindSale,
				TotalAmount: note.TotalAmount,
			}
			if err := uc.cash.Apply(r.Accounts, doc, note.Date, userID); err != nil {
				return err
			}
		}

		note.Status = entity.StatusConfirmed
		note.PaidAmount = note.TotalAmount
		note.UpdatedAt = time.Now().UTC()
		note.UpdatedBy = userID
		if err := r.Sales.Update(note); err != nil {
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

func ensureDraftSale(note *entity.SalesNote) error {
	if note.Status != entity.StatusDraft {
		return fmt.Errorf("%w: la nota de venta solo es editable en DRAFT", domain.ErrInvalidState)
	}
	return nil
}

// lockDraftSale carga la nota con FOR UPDATE y exige estado DRAFT.
func lockDraftSale(r TxRepos, noteID string) (*entity.SalesNote, error) {
	note, err := r.Sales.GetByIDForUpdate(noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: nota de venta", domain.ErrNotFound)
	}
	if err := ensureDraftSale(note); err != nil {
		return nil, err
	}
	return note, nil
}

// recalcSalesTotal recalcula total_amount desde las líneas activas.
func recalcSalesTotal(r TxRepos, note *entity.SalesNote, userID string) error {
	lines, err := r.SalesLines.ListByNote(note.ID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.TotalPrice)
	}
	note.TotalAmount = total
	note.UpdatedAt = time.Now().UTC()
	note.UpdatedBy = userID
	return r.Sales.Update(note)
}
