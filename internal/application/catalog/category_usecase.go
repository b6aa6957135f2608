package catalog

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// CategoryUseCase casos de uso para categorías. La única regla de integridad
// referencial que el catálogo sí garantiza vive aquí: una categoría con
// productos asignados no se puede borrar (se bloquea, no se cascadea).
type CategoryUseCase struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(
	categories repository.CategoryRepository,
	products repository.ProductRepository,
) *CategoryUseCase {
	return &CategoryUseCase{categories: categories, products: products}
}

// Create crea una categoría. Nombre duplicado → ErrDuplicate.
func (uc *CategoryUseCase) Create(name string) (*dto.CategoryResponse, error) {
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categories.GetByName(name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	category := &entity.Category{Name: name, CreatedAt: time.Now()}
	if err := uc.categories.Create(category); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{Name: category.Name, CreatedAt: category.CreatedAt}, nil
}

// List lista todas las categorías por nombre.
func (uc *CategoryUseCase) List() ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List()
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, dto.CategoryResponse{Name: c.Name, CreatedAt: c.CreatedAt})
	}
	return items, nil
}

// Delete elimina una categoría. Si algún producto la referencia falla con
// ErrConflict y la categoría queda intacta. Borrar una categoría inexistente
// es un no-op (igual que el origen).
func (uc *CategoryUseCase) Delete(name string) error {
	if name == "" {
		return domain.ErrInvalidInput
	}
	n, err := uc.products.CountByCategory(name)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrConflict
	}
	return uc.categories.Delete(name)
}
