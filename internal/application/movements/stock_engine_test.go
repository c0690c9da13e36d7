package movements_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Deme-api/internal/application/movements"
	"github.com/jhoicas/Deme-api/internal/domain"
	"github.com/jhoicas/Deme-api/internal/domain/document"
)

var (
	testDate   = time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)
	testUserID = "00000000-0000-0000-0000-000000000001"
)

// ──────────────────────────────────────────────────────────────────────────────
// Compras: cada línea entra completa a DEME_STOCK.
// ──────────────────────────────────────────────────────────────────────────────

func TestStockEngine_CompraAcreditaDeme(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")
	deme := locations.id("DEME_STOCK")
	cells.seed("prod-1", deme, decimal.NewFromInt(10))

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindPurchase},
		[]movements.Line{
			{ProductID: "prod-1", Quantity: decimal.NewFromInt(5)},
			{ProductID: "prod-2", Quantity: decimal.NewFromInt(3)},
		},
		testDate, testUserID)

	require.NoError(t, err)
	assert.True(t, cells.quantity("prod-1", deme).Equal(decimal.NewFromInt(15)),
		"prod-1 debe quedar en 15 (10 + 5)")
	assert.True(t, cells.quantity("prod-2", deme).Equal(decimal.NewFromInt(3)),
		"prod-2 debe crearse perezosamente con 3")
}

func TestStockEngine_CompraEstampaFechaDeNegocio(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")
	deme := locations.id("DEME_STOCK")

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindPurchase},
		[]movements.Line{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
		testDate, testUserID)
	require.NoError(t, err)

	cell, err := cells.Get("prod-1", deme)
	require.NoError(t, err)
	assert.Equal(t, testDate, cell.UpdatedAt, "updated_at debe llevar la fecha del documento")
	assert.Equal(t, testUserID, cell.UpdatedBy)
	assert.NotEmpty(t, cell.ID, "la celda nueva debe recibir un ID")
}

func TestStockEngine_CompraSinLineas_RetornaValidacion(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindPurchase}, nil, testDate, testUserID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventas: primero la ubicación del cliente, el faltante sale de DEME_STOCK.
// ──────────────────────────────────────────────────────────────────────────────

func TestStockEngine_VentaConsumeUbicacionDelClientePrimero(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK", "customer_cli-1_stock")
	deme := locations.id("DEME_STOCK")
	cliente := locations.id("customer_cli-1_stock")
	cells.seed("prod-1", cliente, decimal.NewFromInt(3))
	cells.seed("prod-1", deme, decimal.NewFromInt(10))

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindSale, CustomerID: "cli-1"},
		[]movements.Line{{ProductID: "prod-1", Quantity: decimal.NewFromInt(5)}},
		testDate, testUserID)

	require.NoError(t, err)
	assert.True(t, cells.quantity("prod-1", cliente).IsZero(),
		"la ubicación del cliente debe vaciarse primero")
	assert.True(t, cells.quantity("prod-1", deme).Equal(decimal.NewFromInt(8)),
		"el faltante (2) debe salir de DEME_STOCK")
}

func TestStockEngine_VentaSinStockDelCliente_SaleTodoDeDeme(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK", "customer_cli-1_stock")
	deme := locations.id("DEME_STOCK")
	cells.seed("prod-1", deme, decimal.NewFromInt(10))

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindSale, CustomerID: "cli-1"},
		[]movements.Line{{ProductID: "prod-1", Quantity: decimal.NewFromInt(4)}},
		testDate, testUserID)

	require.NoError(t, err)
	assert.True(t, cells.quantity("prod-1", deme).Equal(decimal.NewFromInt(6)))
}

func TestStockEngine_VentaCubiertaPorElCliente_NoTocaDeme(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK", "customer_cli-1_stock")
	deme := locations.id("DEME_STOCK")
	cliente := locations.id("customer_cli-1_stock")
	cells.seed("prod-1", cliente, decimal.NewFromInt(9))
	cells.seed("prod-1", deme, decimal.NewFromInt(2))

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindSale, CustomerID: "cli-1"},
		[]movements.Line{{ProductID: "prod-1", Quantity: decimal.NewFromInt(9)}},
		testDate, testUserID)

	require.NoError(t, err)
	assert.True(t, cells.quantity("prod-1", cliente).IsZero())
	assert.True(t, cells.quantity("prod-1", deme).Equal(decimal.NewFromInt(2)),
		"DEME_STOCK no debe tocarse si el cliente cubre la cantidad")
}

func TestStockEngine_VentaStockInsuficiente_RetornaInvariante(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK", "customer_cli-1_stock")
	deme := locations.id("DEME_STOCK")
	cells.seed("prod-1", deme, decimal.NewFromInt(2))

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindSale, CustomerID: "cli-1"},
		[]movements.Line{{ProductID: "prod-1", Quantity: decimal.NewFromInt(5)}},
		testDate, testUserID)

	assert.ErrorIs(t, err, domain.ErrInvariant,
		"el stock nunca puede quedar negativo, ni siquiera en DEME_STOCK")
}

func TestStockEngine_VentaClienteSinUbicacion_RetornaNotFound(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindSale, CustomerID: "cli-fantasma"},
		[]movements.Line{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
		testDate, testUserID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Depósitos: delta único entre dos ubicaciones explícitas.
// ──────────────────────────────────────────────────────────────────────────────

func TestStockEngine_DepositoMueveEntreUbicaciones(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK", "bodega-2")
	from := locations.id("DEME_STOCK")
	to := locations.id("bodega-2")
	cells.seed("prod-1", from, decimal.NewFromInt(10))

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{
			Kind:                document.KindStockDeposit,
			ProductID:           "prod-1",
			Quantity:            decimal.NewFromInt(4),
			FromStockLocationID: &from,
			ToStockLocationID:   &to,
		}, nil, testDate, testUserID)

	require.NoError(t, err)
	assert.True(t, cells.quantity("prod-1", from).Equal(decimal.NewFromInt(6)))
	assert.True(t, cells.quantity("prod-1", to).Equal(decimal.NewFromInt(4)))
}

func TestStockEngine_DepositoSoloDestino_EsAjusteDeEntrada(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")
	to := locations.id("DEME_STOCK")

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{
			Kind:              document.KindStockDeposit,
			ProductID:         "prod-1",
			Quantity:          decimal.NewFromInt(7),
			ToStockLocationID: &to,
		}, nil, testDate, testUserID)

	require.NoError(t, err)
	assert.True(t, cells.quantity("prod-1", to).Equal(decimal.NewFromInt(7)))
}

func TestStockEngine_DepositoOrigenInsuficiente_RetornaInvariante(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK", "bodega-2")
	from := locations.id("DEME_STOCK")
	to := locations.id("bodega-2")
	cells.seed("prod-1", from, decimal.NewFromInt(1))

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{
			Kind:                document.KindStockDeposit,
			ProductID:           "prod-1",
			Quantity:            decimal.NewFromInt(3),
			FromStockLocationID: &from,
			ToStockLocationID:   &to,
		}, nil, testDate, testUserID)

	assert.ErrorIs(t, err, domain.ErrInvariant)
	assert.True(t, cells.quantity("prod-1", to).IsZero(),
		"el destino no debe acreditarse si el origen falla")
}

func TestStockEngine_DepositoCantidadNoPositiva_RetornaValidacion(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")
	to := locations.id("DEME_STOCK")

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{
			Kind:              document.KindStockDeposit,
			ProductID:         "prod-1",
			Quantity:          decimal.Zero,
			ToStockLocationID: &to,
		}, nil, testDate, testUserID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestStockEngine_DepositoSinUbicaciones_RetornaValidacion(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{
			Kind:      document.KindStockDeposit,
			ProductID: "prod-1",
			Quantity:  decimal.NewFromInt(1),
		}, nil, testDate, testUserID)

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ──────────────────────────────────────────────────────────────────────────────
// Despacho por Kind
// ──────────────────────────────────────────────────────────────────────────────

func TestStockEngine_KindFueraDelConjunto_RetornaUnsupported(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.Kind("PAYROLL")}, nil, testDate, testUserID)

	assert.ErrorIs(t, err, domain.ErrUnsupportedAggregate)
}

func TestStockEngine_TransferenciaDeCaja_NoEsMovimientoDeStock(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo("DEME_STOCK")

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindCashTransfer}, nil, testDate, testUserID)

	assert.ErrorIs(t, err, domain.ErrUnsupportedAggregate)
}

func TestStockEngine_UbicacionDemeAusente_RetornaNotFound(t *testing.T) {
	cells := newFakeCellRepo()
	locations := newFakeLocationRepo() // sin DEME_STOCK

	engine := movements.NewStockEngine(testNames)
	err := engine.Apply(cells, locations,
		movements.StockDocument{Kind: document.KindPurchase},
		[]movements.Line{{ProductID: "prod-1", Quantity: decimal.NewFromInt(1)}},
		testDate, testUserID)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
