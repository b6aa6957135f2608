package catalog

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

// Nota del movimiento que registra el inventario inicial de un producto.
// Así el invariante stock == suma del libro vale desde la creación.
const initialStockNote = "Stock inicial"

// ProductUseCase casos de uso CRUD para productos. El stock no se edita aquí:
// lo deriva el libro de movimientos.
type ProductUseCase struct {
	txRunner   ledger.TxRunner
	engine     *ledger.Engine
	products   repository.ProductRepository
	categories repository.CategoryRepository
	movements  repository.MovementRepository
	assemblies repository.AssemblyRepository
	policy     DeletePolicy
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	txRunner ledger.TxRunner,
	engine *ledger.Engine,
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	movements repository.MovementRepository,
	assemblies repository.AssemblyRepository,
	policy DeletePolicy,
) *ProductUseCase {
	return &ProductUseCase{
		txRunner:   txRunner,
		engine:     engine,
		products:   products,
		categories: categories,
		movements:  movements,
		assemblies: assemblies,
		policy:     policy,
	}
}

// Create crea un producto nuevo. Si el stock inicial es mayor que cero, el
// alta del producto y su movimiento IN "Stock inicial" van en la misma
// transacción: nunca se observa un producto con stock sin respaldo en el libro.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" {
		return nil, domain.ErrInvalidInput
	}
	category, err := uc.categories.GetByName(in.Category)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.products.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Category:    in.Category,
		Description: in.Description,
		Price:       nonNegative(in.Price),
		Cost:        nonNegative(in.Cost),
		Stock:       decimal.Zero,
		MinStock:    nonNegative(in.MinStock),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	initialStock := nonNegative(in.Stock)

	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
		_ repository.AssemblyRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		if initialStock.GreaterThan(decimal.Zero) {
			_, err := uc.engine.Apply(movRepo, productRepo, ledger.MovementInput{
				ProductID: product.ID,
				Type:      entity.MovementTypeIN,
				Quantity:  initialStock,
				Notes:     initialStockNote,
			}, now)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	product.Stock = initialStock
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve (nil, nil) si no existe:
// la ausencia es un resultado esperado para los lectores, no un error.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// Update actualiza los campos editables de un producto. El stock queda fuera:
// se maneja vía movimientos.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}

	if in.Name != nil {
		if *in.Name == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = *in.Name
	}
	if in.SKU != nil {
		if *in.SKU == "" {
			return nil, domain.ErrInvalidInput
		}
		if other, _ := uc.products.GetBySKU(*in.SKU); other != nil && other.ID != id {
			return nil, domain.ErrDuplicate
		}
		product.SKU = *in.SKU
	}
	if in.Category != nil {
		category, err := uc.categories.GetByName(*in.Category)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrInvalidInput
		}
		product.Category = *in.Category
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = nonNegative(*in.Price)
	}
	if in.Cost != nil {
		product.Cost = nonNegative(*in.Cost)
	}
	if in.MinStock != nil {
		product.MinStock = nonNegative(*in.MinStock)
	}
	product.UpdatedAt = time.Now()

	if err := uc.products.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Delete elimina un producto según la política configurada:
// tolerate deja colgar las referencias, block rechaza con ErrConflict si hay
// movimientos o recetas que lo referencien, cascade los borra en la misma tx.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.products.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	switch uc.policy {
	case DeletePolicyBlock:
		return uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
			assemblyRepo repository.AssemblyRepository,
		) error {
			if n, err := movRepo.CountByProduct(id); err != nil {
				return err
			} else if n > 0 {
				return domain.ErrConflict
			}
			if n, err := assemblyRepo.CountByProduct(id); err != nil {
				return err
			} else if n > 0 {
				return domain.ErrConflict
			}
			return productRepo.Delete(id)
		})
	case DeletePolicyCascade:
		return uc.txRunner.Run(ctx, func(
			movRepo repository.MovementRepository,
			productRepo repository.ProductRepository,
			assemblyRepo repository.AssemblyRepository,
		) error {
			if err := movRepo.DeleteByProduct(id); err != nil {
				return err
			}
			if err := assemblyRepo.DeleteByProduct(id); err != nil {
				return err
			}
			return productRepo.Delete(id)
		})
	default:
		return uc.products.Delete(id)
	}
}

// nonNegative trunca valores negativos a cero (coerción de campos numéricos).
func nonNegative(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Category:    p.Category,
		Description: p.Description,
		Price:       p.Price,
		Cost:        p.Cost,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		LowStock:    p.LowStock(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
