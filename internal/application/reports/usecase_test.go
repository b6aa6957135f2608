package reports_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/reports"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/storetest"
)

func seedInventory(t *testing.T, store *storetest.Store) {
	t.Helper()
	products := []*entity.Product{
		{ID: "p1", SKU: "TORN-01", Name: "Tornillo", Category: "Ferretería",
			Stock: decimal.NewFromInt(100), Cost: decimal.NewFromInt(2), MinStock: decimal.NewFromInt(10)},
		{ID: "p2", SKU: "MART-01", Name: "Martillo", Category: "Ferretería",
			Stock: decimal.NewFromInt(4), Cost: decimal.NewFromInt(50), MinStock: decimal.NewFromInt(5)},
		{ID: "p3", SKU: "PINT-01", Name: "Pintura blanca", Category: "Pinturas",
			Stock: decimal.NewFromInt(20), Cost: decimal.NewFromInt(30), MinStock: decimal.NewFromInt(30)},
	}
	for _, p := range products {
		require.NoError(t, store.ProductRepo().Create(p))
	}
	require.NoError(t, store.MovementRepo().Create(&entity.Movement{
		ID: "m1", ProductID: "p1", Type: entity.MovementTypeIN, Quantity: decimal.NewFromInt(100),
	}))
}

func TestDashboard(t *testing.T) {
	store := storetest.NewStore()
	seedInventory(t, store)
	uc := reports.NewUseCase(store.ReportRepo())

	out, err := uc.Dashboard()
	require.NoError(t, err)
	assert.Equal(t, 3, out.TotalProducts)
	assert.Equal(t, 1, out.TotalMovements)
	assert.Equal(t, 2, out.LowStockCount, "martillo y pintura están en umbral")
	// 100*2 + 4*50 + 20*30 = 1000
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(1000)))
}

func TestLowStock_SugerenciaDeCompra(t *testing.T) {
	store := storetest.NewStore()
	seedInventory(t, store)
	uc := reports.NewUseCase(store.ReportRepo())

	out, err := uc.LowStock()
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	// La pintura tiene el mayor déficit (30-20=10 contra 5-4=1).
	pintura := out.Items[0]
	assert.Equal(t, "p3", pintura.ProductID)
	// sugerido = 30*2 - 20 = 40
	assert.True(t, pintura.SuggestedQty.Equal(decimal.NewFromInt(40)))

	martillo := out.Items[1]
	assert.Equal(t, "p2", martillo.ProductID)
	// sugerido = 5*2 - 4 = 6
	assert.True(t, martillo.SuggestedQty.Equal(decimal.NewFromInt(6)))
}

func TestLowStock_SugerenciaNuncaNegativa(t *testing.T) {
	store := storetest.NewStore()
	// Stock igual al mínimo y mínimo cero: 0*2 - 0 = 0, y un caso donde
	// stock > min*2 quedaría negativo si no se recortara.
	require.NoError(t, store.ProductRepo().Create(&entity.Product{
		ID: "p1", SKU: "X-01", Name: "Caso borde", Category: "General",
		Stock: decimal.NewFromInt(5), MinStock: decimal.NewFromInt(5),
	}))
	uc := reports.NewUseCase(store.ReportRepo())

	out, err := uc.LowStock()
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.False(t, out.Items[0].SuggestedQty.IsNegative())
	assert.True(t, out.Items[0].SuggestedQty.Equal(decimal.NewFromInt(5)))
}

func TestInventoryValue_PorCategoria(t *testing.T) {
	store := storetest.NewStore()
	seedInventory(t, store)
	uc := reports.NewUseCase(store.ReportRepo())

	out, err := uc.InventoryValue()
	require.NoError(t, err)
	require.Len(t, out.Categories, 2)

	assert.True(t, out.TotalUnits.Equal(decimal.NewFromInt(124)))
	assert.True(t, out.TotalValue.Equal(decimal.NewFromInt(1000)))

	ferreteria := out.Categories[0]
	assert.Equal(t, "Ferretería", ferreteria.Category)
	assert.True(t, ferreteria.Value.Equal(decimal.NewFromInt(400)))
	assert.True(t, ferreteria.Share.Equal(decimal.NewFromInt(40)), "400 de 1000 es el 40 por ciento")

	pinturas := out.Categories[1]
	assert.True(t, pinturas.Value.Equal(decimal.NewFromInt(600)))
	assert.True(t, pinturas.Share.Equal(decimal.NewFromInt(60)))
}

func TestInventoryValue_SinProductos(t *testing.T) {
	store := storetest.NewStore()
	uc := reports.NewUseCase(store.ReportRepo())

	out, err := uc.InventoryValue()
	require.NoError(t, err)
	assert.Empty(t, out.Categories)
	assert.True(t, out.TotalValue.IsZero())
}
