package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/catalog"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/storetest"
)

func newCategoryUseCase(t *testing.T) (*catalog.CategoryUseCase, *storetest.Store) {
	t.Helper()
	store := storetest.NewStore()
	return catalog.NewCategoryUseCase(store.CategoryRepo(), store.ProductRepo()), store
}

func TestCategoryCreate(t *testing.T) {
	uc, _ := newCategoryUseCase(t)

	out, err := uc.Create("Ferretería")
	require.NoError(t, err)
	assert.Equal(t, "Ferretería", out.Name)
	assert.False(t, out.CreatedAt.IsZero())
}

func TestCategoryCreate_Duplicada(t *testing.T) {
	uc, _ := newCategoryUseCase(t)

	_, err := uc.Create("Ferretería")
	require.NoError(t, err)
	_, err = uc.Create("Ferretería")
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryCreate_NombreVacio(t *testing.T) {
	uc, _ := newCategoryUseCase(t)

	_, err := uc.Create("")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCategoryList_OrdenadaPorNombre(t *testing.T) {
	uc, _ := newCategoryUseCase(t)

	for _, name := range []string{"Pinturas", "Ferretería", "Eléctricos"} {
		_, err := uc.Create(name)
		require.NoError(t, err)
	}

	list, err := uc.List()
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Eléctricos", list[0].Name)
	assert.Equal(t, "Ferretería", list[1].Name)
	assert.Equal(t, "Pinturas", list[2].Name)
}

func TestCategoryDelete_ConProductosAsignados(t *testing.T) {
	// newProductUseCase ya siembra la categoría "Ferretería".
	prodUC, store := newProductUseCase(t, catalog.DeletePolicyTolerate)
	_, err := prodUC.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	catUC := catalog.NewCategoryUseCase(store.CategoryRepo(), store.ProductRepo())
	err = catUC.Delete("Ferretería")
	require.ErrorIs(t, err, domain.ErrConflict)

	cat, err := store.CategoryRepo().GetByName("Ferretería")
	require.NoError(t, err)
	assert.NotNil(t, cat, "un borrado rechazado deja la categoría intacta")
}

func TestCategoryDelete_SinProductos(t *testing.T) {
	uc, store := newCategoryUseCase(t)

	_, err := uc.Create("Ferretería")
	require.NoError(t, err)

	require.NoError(t, uc.Delete("Ferretería"))
	cat, err := store.CategoryRepo().GetByName("Ferretería")
	require.NoError(t, err)
	assert.Nil(t, cat)
}

func TestCategoryDelete_InexistenteEsNoOp(t *testing.T) {
	uc, _ := newCategoryUseCase(t)

	require.NoError(t, uc.Delete("No Existe"))
}
