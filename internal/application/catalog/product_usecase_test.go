package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/storetest"
	"github.com/jhoicas/almacen-api/pkg/logger"
)

func newProductUseCase(t *testing.T, policy catalog.DeletePolicy) (*catalog.ProductUseCase, *storetest.Store) {
	t.Helper()
	store := storetest.NewStore()
	engine := ledger.NewEngine(ledger.StockPolicyPermissive, logger.Nop())
	uc := catalog.NewProductUseCase(
		store.TxRunner(),
		engine,
		store.ProductRepo(),
		store.CategoryRepo(),
		store.MovementRepo(),
		store.AssemblyRepo(),
		policy,
	)
	require.NoError(t, store.CategoryRepo().Create(&entity.Category{Name: "Ferretería", CreatedAt: time.Now()}))
	return uc, store
}

func validCreateRequest() dto.CreateProductRequest {
	return dto.CreateProductRequest{
		SKU:      "TORN-01",
		Name:     "Tornillo 3/8",
		Category: "Ferretería",
		Price:    decimal.NewFromInt(500),
		Cost:     decimal.NewFromInt(200),
		Stock:    decimal.NewFromInt(40),
		MinStock: decimal.NewFromInt(10),
	}
}

func TestProductCreate_ConStockInicial(t *testing.T) {
	uc, store := newProductUseCase(t, catalog.DeletePolicyTolerate)

	out, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	assert.True(t, out.Stock.Equal(decimal.NewFromInt(40)))

	// El stock inicial queda respaldado con un IN en el libro.
	require.Equal(t, 1, store.MovementCount())
	list, err := store.MovementRepo().List(repository.MovementFilter{ProductID: out.ID})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, entity.MovementTypeIN, list[0].Type)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, "Stock inicial", list[0].Notes)
}

func TestProductCreate_SinStockInicial(t *testing.T) {
	uc, store := newProductUseCase(t, catalog.DeletePolicyTolerate)

	in := validCreateRequest()
	in.Stock = decimal.Zero
	out, err := uc.Create(context.Background(), in)

	require.NoError(t, err)
	assert.True(t, out.Stock.IsZero())
	assert.Equal(t, 0, store.MovementCount(),
		"sin stock inicial no se registra movimiento")
}

func TestProductCreate_CoercionDeNegativos(t *testing.T) {
	uc, _ := newProductUseCase(t, catalog.DeletePolicyTolerate)

	in := validCreateRequest()
	in.Price = decimal.NewFromInt(-5)
	in.Cost = decimal.NewFromInt(-1)
	in.Stock = decimal.NewFromInt(-20)
	in.MinStock = decimal.NewFromInt(-3)

	out, err := uc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, out.Price.IsZero())
	assert.True(t, out.Cost.IsZero())
	assert.True(t, out.Stock.IsZero())
	assert.True(t, out.MinStock.IsZero())
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _ := newProductUseCase(t, catalog.DeletePolicyTolerate)

	_, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	dup := validCreateRequest()
	dup.Name = "Otro producto"
	_, err = uc.Create(context.Background(), dup)
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CategoriaInexistente(t *testing.T) {
	uc, _ := newProductUseCase(t, catalog.DeletePolicyTolerate)

	in := validCreateRequest()
	in.Category = "No Existe"
	_, err := uc.Create(context.Background(), in)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductCreate_CamposObligatorios(t *testing.T) {
	uc, _ := newProductUseCase(t, catalog.DeletePolicyTolerate)

	sinNombre := validCreateRequest()
	sinNombre.Name = ""
	_, err := uc.Create(context.Background(), sinNombre)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	sinSKU := validCreateRequest()
	sinSKU.SKU = ""
	_, err = uc.Create(context.Background(), sinSKU)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoTocaElStock(t *testing.T) {
	uc, store := newProductUseCase(t, catalog.DeletePolicyTolerate)

	created, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	nuevoNombre := "Tornillo 1/2"
	nuevoPrecio := decimal.NewFromInt(800)
	out, err := uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{
		Name:  &nuevoNombre,
		Price: &nuevoPrecio,
	})
	require.NoError(t, err)
	assert.Equal(t, "Tornillo 1/2", out.Name)
	assert.True(t, out.Stock.Equal(decimal.NewFromInt(40)),
		"la edición de catálogo nunca modifica el stock")
	assert.True(t, store.Product(created.ID).Stock.Equal(decimal.NewFromInt(40)))
	assert.Equal(t, 1, store.MovementCount(), "editar no genera movimientos")
}

func TestProductUpdate_SKUDeOtroProducto(t *testing.T) {
	uc, _ := newProductUseCase(t, catalog.DeletePolicyTolerate)

	_, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	otro := validCreateRequest()
	otro.SKU = "TUER-01"
	otro.Name = "Tuerca"
	created, err := uc.Create(context.Background(), otro)
	require.NoError(t, err)

	skuAjeno := "TORN-01"
	_, err = uc.Update(context.Background(), created.ID, dto.UpdateProductRequest{SKU: &skuAjeno})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductUpdate_Inexistente(t *testing.T) {
	uc, _ := newProductUseCase(t, catalog.DeletePolicyTolerate)

	nombre := "x"
	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &nombre})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductGetByID_AusenteDevuelveNil(t *testing.T) {
	uc, _ := newProductUseCase(t, catalog.DeletePolicyTolerate)

	out, err := uc.GetByID("no-existe")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductDelete_Tolerate(t *testing.T) {
	uc, store := newProductUseCase(t, catalog.DeletePolicyTolerate)

	created, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.Nil(t, store.Product(created.ID))
	assert.Equal(t, 1, store.MovementCount(),
		"tolerate deja el historial intacto con la referencia colgante")
}

func TestProductDelete_BlockConMovimientos(t *testing.T) {
	uc, store := newProductUseCase(t, catalog.DeletePolicyBlock)

	created, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	err = uc.Delete(context.Background(), created.ID)
	require.ErrorIs(t, err, domain.ErrConflict)
	assert.NotNil(t, store.Product(created.ID), "block no debe borrar el producto")
}

func TestProductDelete_BlockSinReferencias(t *testing.T) {
	uc, store := newProductUseCase(t, catalog.DeletePolicyBlock)

	in := validCreateRequest()
	in.Stock = decimal.Zero // sin movimiento inicial
	created, err := uc.Create(context.Background(), in)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.Nil(t, store.Product(created.ID))
}

func TestProductDelete_CascadeBorraReferencias(t *testing.T) {
	uc, store := newProductUseCase(t, catalog.DeletePolicyCascade)

	created, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.Equal(t, 1, store.MovementCount())

	require.NoError(t, store.AssemblyRepo().Create(&entity.Assembly{
		ID:        "a1",
		Name:      "Kit",
		ProductID: "otro",
		Components: []entity.AssemblyComponent{
			{ComponentID: created.ID, Quantity: decimal.NewFromInt(2)},
		},
	}))

	require.NoError(t, uc.Delete(context.Background(), created.ID))
	assert.Nil(t, store.Product(created.ID))
	assert.Equal(t, 0, store.MovementCount(), "cascade borra los movimientos del producto")
	n, err := store.AssemblyRepo().CountByProduct(created.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "cascade borra las recetas que lo referencian")
}

func TestProductDelete_Inexistente(t *testing.T) {
	uc, _ := newProductUseCase(t, catalog.DeletePolicyTolerate)

	err := uc.Delete(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseDeletePolicy(t *testing.T) {
	p, err := catalog.ParseDeletePolicy("")
	require.NoError(t, err)
	assert.Equal(t, catalog.DeletePolicyTolerate, p, "vacío usa la política por defecto")

	for _, s := range []string{"tolerate", "block", "cascade"} {
		p, err := catalog.ParseDeletePolicy(s)
		require.NoError(t, err)
		assert.Equal(t, catalog.DeletePolicy(s), p)
	}

	_, err = catalog.ParseDeletePolicy("soft")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}
