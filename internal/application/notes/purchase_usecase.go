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

// PurchaseNotesUseCase lifecycle controller de PurchaseNote.
//
// NO ejecuta lógica de stock ni cash: decide reglas documentales (DRAFT,
// líneas obligatorias, paid <= total) y orquesta los movement engines en
// confirm(). Las líneas se gestionan aquí porque cada mutación recalcula el
// total del documento.
type PurchaseNotesUseCase struct {
	txRunner  TxRunner
	notes     repository.PurchaseNoteRepository
	lines     repository.PurchaseLineRepository
	suppliers repository.SupplierRepository
	stock     *movements.StockEngine
	cash      *movements.CashEngine
}

// NewPurchaseNotesUseCase construye el caso de uso.
func NewPurchaseNotesUseCase(
	txRunner TxRunner,
	notes repository.PurchaseNoteRepository,
	lines repository.PurchaseLineRepository,
	suppliers repository.SupplierRepository,
	stock *movements.StockEngine,
	cash *movements.CashEngine,
) *PurchaseNotesUseCase {
	return &PurchaseNotesUseCase{
		txRunner:  txRunner,
		notes:     notes,
		lines:     lines,
		suppliers: suppliers,
		stock:     stock,
		cash:      cash,
	}
}

// Create crea una PurchaseNote en DRAFT con total cero.
func (uc *PurchaseNotesUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseNoteRequest) (*entity.PurchaseNote, error) {
	if in.SupplierID == "" {
		return nil, fmt.Errorf("%w: supplier_id es obligatorio", domain.ErrValidation)
	}
	if in.PaidAmount.IsNegative() {
		return nil, fmt.Errorf("%w: paid_amount no puede ser negativo", domain.ErrValidation)
	}
	supplier, err := uc.suppliers.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, fmt.Errorf("%w: proveedor", domain.ErrNotFound)
	}

	now := time.Now().UTC()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	note := &entity.PurchaseNote{
		ID:          uuid.New().String(),
		SupplierID:  in.SupplierID,
		Date:        date,
		Status:      entity.StatusDraft,
		TotalAmount: decimal.Zero,
		PaidAmount:  in.PaidAmount,
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

// GetByID devuelve una PurchaseNote activa.
func (uc *PurchaseNotesUseCase) GetByID(ctx context.Context, id string) (*entity.PurchaseNote, error) {
	note, err := uc.notes.GetByID(id)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: nota de compra", domain.ErrNotFound)
	}
	return note, nil
}

// List lista PurchaseNotes activas.
func (uc *PurchaseNotesUseCase) List(ctx context.Context, limit, offset int) ([]*entity.PurchaseNote, error) {
	return uc.notes.List(limit, offset)
}

// Update actualiza una PurchaseNote solo si está en DRAFT.
func (uc *PurchaseNotesUseCase) Update(ctx context.Context, id, userID string, in dto.UpdatePurchaseNoteRequest) (*entity.PurchaseNote, error) {
	note, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := ensureDraftPurchase(note); err != nil {
		return nil, err
	}

	if in.SupplierID != nil {
		supplier, err := uc.suppliers.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, fmt.Errorf("%w: proveedor", domain.ErrNotFound)
		}
		note.SupplierID = *in.SupplierID
	}
	if in.Date != nil {
		note.Date = *in.Date
	}
	if in.PaidAmount != nil {
		if in.PaidAmount.IsNegative() {
			return nil, fmt.Errorf("%w: paid_amount no puede ser negativo", domain.ErrValidation)
		}
		note.PaidAmount = *in.PaidAmount
	}

	note.UpdatedAt = time.Now().UTC()
	note.UpdatedBy = userID
	if err := uc.notes.Update(note); err != nil {
		return nil, err
	}
	return note, nil
}

// Delete soft delete de una PurchaseNote solo si está en DRAFT.
func (uc *PurchaseNotesUseCase) Delete(ctx context.Context, id, userID string) error {
	note, err := uc.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := ensureDraftPurchase(note); err != nil {
		return err
	}
	note.SoftDelete(time.Now().UTC(), userID)
	return uc.notes.Update(note)
}

// ListLines devuelve las líneas activas de la nota.
func (uc *PurchaseNotesUseCase) ListLines(ctx context.Context, noteID string) ([]*entity.PurchaseLine, error) {
	if _, err := uc.GetByID(ctx, noteID); err != nil {
		return nil, err
	}
	return uc.lines.ListByNote(noteID)
}

// AddLine crea una línea y recalcula el total, en una transacción.
func (uc *PurchaseNotesUseCase) AddLine(ctx context.Context, noteID, userID string, in dto.LineRequest) (*entity.PurchaseLine, error) {
	if err := validateLine(in); err != nil {
		return nil, err
	}

	var line *entity.PurchaseLine
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := lockDraftPurchase(r, noteID)
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
		line = &entity.PurchaseLine{
			ID:             uuid.New().String(),
			PurchaseNoteID: note.ID,
			ProductID:      in.ProductID,
			Quantity:       in.Quantity,
			UnitPrice:      in.UnitPrice,
			TotalPrice:     in.TotalPrice,
			Audit: entity.Audit{
				IsActive:  true,
				CreatedAt: now,
				UpdatedAt: now,
				CreatedBy: userID,
				UpdatedBy: userID,
			},
		}
		if err := r.PurchaseLines.Create(line); err != nil {
			return err
		}
		return recalcPurchaseTotal(r, note, userID)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// UpdateLine actualiza una línea y recalcula el total, en una transacción.
func (uc *PurchaseNotesUseCase) UpdateLine(ctx context.Context, noteID, lineID, userID string, in dto.LineRequest) (*entity.PurchaseLine, error) {
	if err := validateLine(in); err != nil {
		return nil, err
	}

	var line *entity.PurchaseLine
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := lockDraftPurchase(r, noteID)
		if err != nil {
			return err
		}
		line, err = r.PurchaseLines.GetByID(noteID, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de compra", domain.ErrNotFound)
		}

		line.ProductID = in.ProductID
		line.Quantity = in.Quantity
		line.UnitPrice = in.UnitPrice
		line.TotalPrice = in.TotalPrice
		line.UpdatedAt = time.Now().UTC()
		line.UpdatedBy = userID
		if err := r.PurchaseLines.Update(line); err != nil {
			return err
		}
		return recalcPurchaseTotal(r, note, userID)
	})
	if err != nil {
		return nil, err
	}
	return line, nil
}

// DeleteLine soft delete de una línea y recálculo del total, en una transacción.
func (uc *PurchaseNotesUseCase) DeleteLine(ctx context.Context, noteID, lineID, userID string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := lockDraftPurchase(r, noteID)
		if err != nil {
			return err
		}
		line, err := r.PurchaseLines.GetByID(noteID, lineID)
		if err != nil {
			return err
		}
		if line == nil {
			return fmt.Errorf("%w: línea de compra", domain.ErrNotFound)
		}
		line.SoftDelete(time.Now().UTC(), userID)
		if err := r.PurchaseLines.Update(line); err != nil {
			return err
		}
		return recalcPurchaseTotal(r, note, userID)
	})
}

// Confirm confirma una PurchaseNote: DRAFT -> CONFIRMED.
//
// Toda la unidad corre en una transacción: carga con bloqueo de fila,
// validación estructural, recálculo del total, movimiento de stock (solo
// líneas de productos con inventario), movimiento de cash y cambio de
// estado. Si cualquier paso falla, el documento sigue en DRAFT y ningún
// saldo cambia.
func (uc *PurchaseNotesUseCase) Confirm(ctx context.Context, noteID, userID string) (*entity.PurchaseNote, error) {
	var confirmed *entity.PurchaseNote
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		note, err := r.Purchases.GetByIDForUpdate(noteID)
		if err != nil {
			return err
		}
		if note == nil {
			return fmt.Errorf("%w: nota de compra", domain.ErrNotFound)
		}
		if note.Status != entity.StatusDraft {
			return fmt.Errorf("%w: la nota de compra ya fue confirmada", domain.ErrInvalidState)
		}

		lines, err := r.PurchaseLines.ListByNote(note.ID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return fmt.Errorf("%w: la nota de compra no puede confirmarse sin líneas", domain.ErrValidation)
		}

		total := decimal.Zero
		for _, line := range lines {
			total = total.Add(line.TotalPrice)
		}
		if note.PaidAmount.GreaterThan(total) {
			return fmt.Errorf("%w: paid_amount no puede superar total_amount", domain.ErrValidation)
		}
		note.TotalAmount = total

		effect, ok := document.EffectOf(document.KindPurchase)
		if !ok {
			return domain.ErrUnsupportedAggregate
		}

		if effect.Stock {
			// Solo los productos con inventario generan movimiento de stock;
			// el total (y por tanto el cash) se calcula sobre todas las líneas.
			stockLines, err := inventoryLines(r, lines)
			if err != nil {
				return err
			}
			if len(stockLines) > 0 {
				doc := movements.StockDocument{Kind: document.KindPurchase}
				if err := uc.stock.Apply(r.Cells, r.Locations, doc, stockLines, note.Date, userID); err != nil {
					return err
				}
			}
		}

		if effect.Cash {
			doc := movements.CashDocument{
				Kind:        document.KindPurchase,
				SupplierID:  note.SupplierID,
				TotalAmount: note.TotalAmount,
				PaidAmount:  note.PaidAmount,
			}
			if err := uc.cash.Apply(r.Accounts, doc, note.Date, userID); err != nil {
				return err
			}
		}

		note.Status = entity.StatusConfirmed
		note.UpdatedAt = time.Now().UTC()
		note.UpdatedBy = userID
		if err := r.Purchases.Update(note); err != nil {
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

// ── helpers ──────────────────────────────────────────────────────────────────

func ensureDraftPurchase(note *entity.PurchaseNote) error {
	if note.Status != entity.StatusDraft {
		return fmt.Errorf("%w: la nota de compra solo es editable en DRAFT", domain.ErrInvalidState)
	}
	return nil
}

// lockDraftPurchase carga la nota con FOR UPDATE y exige estado DRAFT.
func lockDraftPurchase(r TxRepos, noteID string) (*entity.PurchaseNote, error) {
	note, err := r.Purchases.GetByIDForUpdate(noteID)
	if err != nil {
		return nil, err
	}
	if note == nil {
		return nil, fmt.Errorf("%w: nota de compra", domain.ErrNotFound)
	}
	if err := ensureDraftPurchase(note); err != nil {
		return nil, err
	}
	return note, nil
}

// recalcPurchaseTotal recalcula total_amount desde las líneas activas y
// rechaza paid > total.
func recalcPurchaseTotal(r TxRepos, note *entity.PurchaseNote, userID string) error {
	lines, err := r.PurchaseLines.ListByNote(note.ID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.TotalPrice)
	}
	if note.PaidAmount.GreaterThan(total) {
		return fmt.Errorf("%w: paid_amount no puede superar total_amount", domain.ErrValidation)
	}
	note.TotalAmount = total
	note.UpdatedAt = time.Now().UTC()
	note.UpdatedBy = userID
	return r.Purchases.Update(note)
}

// inventoryLines convierte líneas a snapshots dejando fuera los productos
// sin inventario (servicios).
func inventoryLines(r TxRepos, lines []*entity.PurchaseLine) ([]movements.Line, error) {
	out := make([]movements.Line, 0, len(lines))
	for _, line := range lines {
		product, err := r.Products.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, fmt.Errorf("%w: producto de la línea", domain.ErrNotFound)
		}
		if !product.IsInventory {
			continue
		}
		out = append(out, movements.Line{
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			TotalPrice: line.TotalPrice,
		})
	}
	return out, nil
}

// validateLine validación estructural de una línea.
func validateLine(in dto.LineRequest) error {
	if in.ProductID == "" {
		return fmt.Errorf("%w: product_id es obligatorio", domain.ErrValidation)
	}
	if !in.Quantity.IsPositive() {
		return fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrValidation)
	}
	if in.UnitPrice.IsNegative() || in.TotalPrice.IsNegative() {
		return fmt.Errorf("%w: los precios no pueden ser negativos", domain.ErrValidation)
	}
	return nil
}
