package assembly

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase maneja recetas de ensamble (lista de materiales) y su producción.
// Una receta nace completa y se borra completa; editar = borrar y recrear.
type UseCase struct {
	txRunner   ledger.TxRunner
	engine     *ledger.Engine
	assemblies repository.AssemblyRepository
	products   repository.ProductRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	assemblies repository.AssemblyRepository,
	products repository.ProductRepository,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		engine:     engine,
		assemblies: assemblies,
		products:   products,
	}
}

// Create valida y persiste una receta. Cabecera y componentes se insertan en
// una transacción: nunca se observa una receta a medias. Reglas: nombre y
// producto de salida presentes y resolubles, al menos un componente, cantidades
// positivas, componentes resolubles y ningún componente igual a la salida.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateAssemblyRequest) (*dto.AssemblyResponse, error) {
	if in.Name == "" || in.ProductID == "" || len(in.Components) == 0 {
		return nil, domain.ErrInvalidInput
	}
	output, err := uc.products.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if output == nil {
		return nil, domain.ErrInvalidInput
	}

	components := make([]entity.AssemblyComponent, 0, len(in.Components))
	seen := make(map[string]bool, len(in.Components))
	for _, c := range in.Components {
		if c.ProductID == "" || !c.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
		// Autorreferencia: la receta consumiría lo que produce.
		if c.ProductID == in.ProductID {
			return nil, domain.ErrInvalidInput
		}
		if seen[c.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[c.ProductID] = true
		component, err := uc.products.GetByID(c.ProductID)
		if err != nil {
			return nil, err
		}
		if component == nil {
			return nil, domain.ErrInvalidInput
		}
		components = append(components, entity.AssemblyComponent{
			ComponentID: c.ProductID,
			Quantity:    c.Quantity,
		})
	}

	a := &entity.Assembly{
		ID:         uuid.New().String(),
		Name:       in.Name,
		ProductID:  in.ProductID,
		Components: components,
		CreatedAt:  time.Now(),
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		_ repository.ProductRepository,
		assemblyRepo repository.AssemblyRepository,
	) error {
		return assemblyRepo.Create(a)
	})
	if err != nil {
		return nil, err
	}
	return uc.toResponse(a, nil), nil
}

// GetByID obtiene una receta con sus componentes resueltos.
func (uc *UseCase) GetByID(id string) (*dto.AssemblyResponse, error) {
	a, err := uc.assemblies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return uc.toResponse(a, nil), nil
}

// List lista las recetas con componentes resueltos a nombre/SKU. La resolución
// es una proyección de lectura, no parte de la entidad almacenada.
func (uc *UseCase) List() ([]dto.AssemblyResponse, error) {
	list, err := uc.assemblies.List()
	if err != nil {
		return nil, err
	}
	cache := make(map[string]*entity.Product)
	items := make([]dto.AssemblyResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *uc.toResponse(a, cache))
	}
	return items, nil
}

// Delete borra una receta con sus componentes. Sin chequeo contra producciones
// pasadas: esas viven solo como movimientos, no referencian la receta.
func (uc *UseCase) Delete(id string) error {
	a, err := uc.assemblies.GetByID(id)
	if err != nil {
		return err
	}
	if a == nil {
		return domain.ErrNotFound
	}
	return uc.assemblies.Delete(id)
}

func (uc *UseCase) toResponse(a *entity.Assembly, cache map[string]*entity.Product) *dto.AssemblyResponse {
	if cache == nil {
		cache = make(map[string]*entity.Product)
	}
	name, sku := uc.resolve(a.ProductID, cache)
	out := &dto.AssemblyResponse{
		ID:          a.ID,
		Name:        a.Name,
		ProductID:   a.ProductID,
		ProductName: name,
		ProductSKU:  sku,
		Components:  make([]dto.AssemblyComponentResponse, 0, len(a.Components)),
		CreatedAt:   a.CreatedAt,
	}
	for _, c := range a.Components {
		cname, csku := uc.resolve(c.ComponentID, cache)
		out.Components = append(out.Components, dto.AssemblyComponentResponse{
			ProductID:   c.ComponentID,
			ProductName: cname,
			ProductSKU:  csku,
			Quantity:    c.Quantity,
		})
	}
	return out
}

func (uc *UseCase) resolve(productID string, cache map[string]*entity.Product) (name, sku string) {
	product, ok := cache[productID]
	if !ok {
		product, _ = uc.products.GetByID(productID)
		cache[productID] = product
	}
	if product == nil {
		return ledger.DeletedProductName, ledger.DeletedProductSKU
	}
	return product.Name, product.SKU
}
