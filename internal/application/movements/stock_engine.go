package movements

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/document"
	"github.com/jhoicas/Deme-api/internal/domain/entity"
	"github.com/jhoicas/Deme-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// StockEngine aplica efectos reales sobre StockCell.
//
// Modelo operativo cerrado: un movimiento es siempre atómico y se define como
// (product, quantity, from_location | nil, to_location | nil).
//
// Casos:
//   - Compra:   nil -> DEME_STOCK, una entrada por línea.
//   - Venta:    ubicación del cliente -> nil; el faltante sale de DEME_STOCK.
//     El fallback es por línea, no por documento.
//   - Depósito: delta único entre dos ubicaciones explícitas.
//
// El engine no conoce is_inventory: el caller filtra las líneas antes de
// invocar. Los deltas de líneas anteriores NO se revierten aquí si una línea
// posterior falla; la transacción del caller es la frontera de atomicidad.
type StockEngine struct {
	names CompanyNames
}

// NewStockEngine construye el engine con los nombres canónicos de ubicaciones.
func NewStockEngine(names CompanyNames) *StockEngine {
	return &StockEngine{names: names}
}

// Apply ejecuta el movimiento de stock del documento recibido.
// cells y locations deben estar atados a la transacción del caller.
func (e *StockEngine) Apply(
	cells repository.StockCellRepository,
	locations repository.StockLocationRepository,
	doc StockDocument,
	lines []Line,
	date time.Time,
	userID string,
) error {
	switch doc.Kind {
	case document.KindPurchase:
		return e.applyPurchase(cells, locations, lines, date, userID)
	case document.KindSale:
		return e.applySale(cells, locations, doc, lines, date, userID)
	case document.KindStockDeposit:
		return e.applyStockDeposit(cells, doc, date, userID)
	default:
		return fmt.Errorf("%w: %s en stock engine", domain.ErrUnsupportedAggregate, doc.Kind)
	}
}

// applyPurchase entrada de stock desde proveedor hacia DEME_STOCK.
func (e *StockEngine) applyPurchase(
	cells repository.StockCellRepository,
	locations repository.StockLocationRepository,
	lines []Line,
	date time.Time,
	userID string,
) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: el movimiento de compra requiere líneas", domain.ErrValidation)
	}

	deme, err := e.demeLocation(locations)
	if err != nil {
		return err
	}

	for _, line := range lines {
		if err := e.applyDelta(cells, line.ProductID, deme.ID, line.Quantity, date, userID); err != nil {
			return err
		}
	}
	return nil
}

// applySale salida de stock desde la ubicación del cliente; si no alcanza,
// el resto sale de DEME_STOCK. Cada línea resuelve su faltante por separado.
func (e *StockEngine) applySale(
	cells repository.StockCellRepository,
	locations repository.StockLocationRepository,
	doc StockDocument,
	lines []Line,
	date time.Time,
	userID string,
) error {
	if len(lines) == 0 {
		return fmt.Errorf("%w: el movimiento de venta requiere líneas", domain.ErrValidation)
	}

	customerLoc, err := e.customerLocation(locations, doc.CustomerID)
	if err != nil {
		return err
	}
	deme, err := e.demeLocation(locations)
	if err != nil {
		return err
	}

	for _, line := range lines {
		remaining := line.Quantity

		cell, err := cells.Get(line.ProductID, customerLoc.ID)
		if err != nil {
			return err
		}
		available := cell.Quantity

		if available.IsPositive() {
			used := decimal.Min(available, remaining)
			if err := e.applyDelta(cells, line.ProductID, customerLoc.ID, used.Neg(), date, userID); err != nil {
				return err
			}
			remaining = remaining.Sub(used)
		}

		if remaining.IsPositive() {
			if err := e.applyDelta(cells, line.ProductID, deme.ID, remaining.Neg(), date, userID); err != nil {
				return err
			}
		}
	}
	return nil
}

// applyStockDeposit delta único entre dos ubicaciones; from o to pueden
// omitirse (ajuste sin contraparte), pero no ambos.
func (e *StockEngine) applyStockDeposit(
	cells repository.StockCellRepository,
	doc StockDocument,
	date time.Time,
	userID string,
) error {
	if !doc.Quantity.IsPositive() {
		return fmt.Errorf("%w: la cantidad del depósito debe ser mayor que cero", domain.ErrValidation)
	}
	if doc.FromStockLocationID == nil && doc.ToStockLocationID == nil {
		return fmt.Errorf("%w: el depósito requiere ubicación origen o destino", domain.ErrValidation)
	}

	if doc.FromStockLocationID != nil {
		if err := e.applyDelta(cells, doc.ProductID, *doc.FromStockLocationID, doc.Quantity.Neg(), date, userID); err != nil {
			return err
		}
	}
	if doc.ToStockLocationID != nil {
		if err := e.applyDelta(cells, doc.ProductID, *doc.ToStockLocationID, doc.Quantity, date, userID); err != nil {
			return err
		}
	}
	return nil
}

// applyDelta aplica un delta sobre una celda, creándola en cero si no existe.
// updated_at lleva la fecha de negocio del documento, no la hora actual.
func (e *StockEngine) applyDelta(
	cells repository.StockCellRepository,
	productID, locationID string,
	delta decimal.Decimal,
	date time.Time,
	userID string,
) error {
	cell, err := cells.GetForUpdate(productID, locationID)
	if err != nil {
		return err
	}

	newQuantity := cell.Quantity.Add(delta)
	if newQuantity.IsNegative() {
		return fmt.Errorf("%w: el stock no puede quedar negativo", domain.ErrInvariant)
	}

	if cell.ID == "" {
		cell.ID = uuid.New().String()
		cell.IsActive = true
	}
	cell.Quantity = newQuantity
	cell.UpdatedAt = date
	cell.UpdatedBy = userID
	return cells.Upsert(cell)
}

func (e *StockEngine) demeLocation(locations repository.StockLocationRepository) (*entity.StockLocation, error) {
	loc, err := locations.GetByName(e.names.StockLocationName)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: ubicación de stock DEME", domain.ErrNotFound)
	}
	return loc, nil
}

func (e *StockEngine) customerLocation(locations repository.StockLocationRepository, customerID string) (*entity.StockLocation, error) {
	name := fmt.Sprintf(e.names.CustomerLocationPattern, customerID)
	loc, err := locations.GetByName(name)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, fmt.Errorf("%w: ubicación de stock del cliente", domain.ErrNotFound)
	}
	return loc, nil
}
