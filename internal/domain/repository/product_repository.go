package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe: muchos lectores tratan
// una referencia colgante como caso esperado, no como error.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE). Solo tiene
	// sentido dentro de una transacción; serializa las mutaciones de stock del
	// mismo producto.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// UpdateStock escribe solo el stock recalculado (usado por el motor de movimientos).
	UpdateStock(productID string, stock decimal.Decimal) error
	List(limit, offset int) ([]*entity.Product, error)
	CountByCategory(category string) (int, error)
	Delete(id string) error
}
