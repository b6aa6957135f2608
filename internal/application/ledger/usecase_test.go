package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/storetest"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func newLedgerUseCase(t *testing.T, policy ledger.StockPolicy) (*ledger.UseCase, *storetest.Store) {
	t.Helper()
	store := storetest.NewStore()
	engine := ledger.NewEngine(policy, logger.Nop())
	uc := ledger.NewUseCase(store.TxRunner(), engine, store.MovementRepo(), store.ProductRepo())
	return uc, store
}

func seedProduct(t *testing.T, store *storetest.Store, id, sku, name string, stock int64) {
	t.Helper()
	err := store.ProductRepo().Create(&entity.Product{
		ID:       id,
		SKU:      sku,
		Name:     name,
		Category: "General",
		Stock:    decimal.NewFromInt(stock),
	})
	require.NoError(t, err)
}

func TestRegisterMovement_SalidaDescuentaStock(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 100)

	out, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOUT,
		Quantity:  decimal.NewFromInt(30),
		Notes:     "venta mostrador",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeOUT, out.Type)
	assert.Equal(t, "Tornillo", out.ProductName)
	assert.True(t, out.Quantity.Equal(decimal.NewFromInt(30)))

	p := store.Product("p1")
	require.NotNil(t, p)
	assert.True(t, p.Stock.Equal(decimal.NewFromInt(70)),
		"el stock debe quedar en 70 tras la salida de 30")
	assert.Equal(t, 1, store.MovementCount())
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 10)

	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(5),
	})

	require.NoError(t, err)
	assert.True(t, store.Product("p1").Stock.Equal(decimal.NewFromInt(15)))
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)

	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "no-existe",
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(1),
	})

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, store.MovementCount(),
		"un movimiento rechazado no debe dejar fila en el libro")
}

func TestRegisterMovement_ValidaEntrada(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 10)

	cases := []struct {
		name string
		in   ledger.MovementInput
	}{
		{"tipo desconocido", ledger.MovementInput{ProductID: "p1", Type: "AJUSTE", Quantity: decimal.NewFromInt(1)}},
		{"cantidad cero", ledger.MovementInput{ProductID: "p1", Type: entity.MovementTypeIN, Quantity: decimal.Zero}},
		{"cantidad negativa", ledger.MovementInput{ProductID: "p1", Type: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(-3)}},
		{"sin producto", ledger.MovementInput{Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.RegisterMovement(context.Background(), tc.in)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 0, store.MovementCount())
}

func TestRegisterMovement_PoliticaEstrictaRechazaNegativo(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyStrict)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 10)

	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOUT,
		Quantity:  decimal.NewFromInt(11),
	})

	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, store.Product("p1").Stock.Equal(decimal.NewFromInt(10)),
		"el stock no debe cambiar si la salida fue rechazada")
	assert.Equal(t, 0, store.MovementCount())
}

func TestRegisterMovement_PoliticaPermisivaAdmiteNegativo(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 10)

	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOUT,
		Quantity:  decimal.NewFromInt(11),
	})

	require.NoError(t, err)
	assert.True(t, store.Product("p1").Stock.Equal(decimal.NewFromInt(-1)))
	assert.Equal(t, 1, store.MovementCount())
}

func TestRegisterMovement_SalidaExactaDejaCero(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyStrict)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 10)

	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOUT,
		Quantity:  decimal.NewFromInt(10),
	})

	require.NoError(t, err, "dejar el stock exactamente en cero es válido aun en estricto")
	assert.True(t, store.Product("p1").Stock.IsZero())
}

func TestListMovements_RecientesPrimero(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 100)

	for i := 0; i < 3; i++ {
		_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
			ProductID: "p1",
			Type:      entity.MovementTypeIN,
			Quantity:  decimal.NewFromInt(int64(i + 1)),
		})
		require.NoError(t, err)
	}

	list, err := uc.ListMovements(repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	// El último registrado aparece primero.
	assert.True(t, list.Items[0].Quantity.Equal(decimal.NewFromInt(3)))
	assert.True(t, list.Items[2].Quantity.Equal(decimal.NewFromInt(1)))

	// Dos lecturas sin escrituras intermedias ven la misma secuencia.
	again, err := uc.ListMovements(repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, again.Items, 3)
	for i := range list.Items {
		assert.Equal(t, list.Items[i].ID, again.Items[i].ID)
	}
}

func TestListMovements_FiltraPorTipo(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 100)

	for _, mt := range []string{entity.MovementTypeIN, entity.MovementTypeOUT, entity.MovementTypeIN} {
		_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
			ProductID: "p1",
			Type:      mt,
			Quantity:  decimal.NewFromInt(1),
		})
		require.NoError(t, err)
	}

	list, err := uc.ListMovements(repository.MovementFilter{Type: entity.MovementTypeIN})
	require.NoError(t, err)
	assert.Len(t, list.Items, 2)
	for _, m := range list.Items {
		assert.Equal(t, entity.MovementTypeIN, m.Type)
	}
}

func TestListMovements_TipoInvalido(t *testing.T) {
	uc, _ := newLedgerUseCase(t, ledger.StockPolicyPermissive)

	_, err := uc.ListMovements(repository.MovementFilter{Type: "AJUSTE"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListMovements_ProductoBorradoMuestraMarcador(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 100)

	_, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeOUT,
		Quantity:  decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	require.NoError(t, store.ProductRepo().Delete("p1"))

	list, err := uc.ListMovements(repository.MovementFilter{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, ledger.DeletedProductName, list.Items[0].ProductName)
	assert.Equal(t, ledger.DeletedProductSKU, list.Items[0].ProductSKU)
	assert.Equal(t, "p1", list.Items[0].ProductID,
		"el id original se conserva aunque el producto ya no exista")
}

func TestRegisterMovement_FechaDelServidor(t *testing.T) {
	uc, store := newLedgerUseCase(t, ledger.StockPolicyPermissive)
	seedProduct(t, store, "p1", "TORN-01", "Tornillo", 100)

	before := time.Now()
	out, err := uc.RegisterMovement(context.Background(), ledger.MovementInput{
		ProductID: "p1",
		Type:      entity.MovementTypeIN,
		Quantity:  decimal.NewFromInt(1),
	})
	after := time.Now()

	require.NoError(t, err)
	assert.False(t, out.Date.Before(before))
	assert.False(t, out.Date.After(after))
}

func TestParseStockPolicy(t *testing.T) {
	p, err := ledger.ParseStockPolicy("")
	require.NoError(t, err)
	assert.Equal(t, ledger.StockPolicyPermissive, p, "vacío usa la política por defecto")

	p, err = ledger.ParseStockPolicy("strict")
	require.NoError(t, err)
	assert.Equal(t, ledger.StockPolicyStrict, p)

	_, err = ledger.ParseStockPolicy("laxa")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
