package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock es un valor derivado: siempre debe ser igual a la suma con signo de los
// movimientos del producto en el libro (IN suma, OUT resta). El único escritor
// de Stock es el motor de movimientos; el CRUD de catálogo nunca lo toca.
type Product struct {
	ID          string
	SKU         string
	Name        string
	Category    string // referencia por nombre a Category
	Description string
	Price       decimal.Decimal // precio de venta
	Cost        decimal.Decimal // costo unitario
	Stock       decimal.Decimal
	MinStock    decimal.Decimal // umbral de stock bajo, solo informativo
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral mínimo.
// Es una señal para reportes, nunca un piso duro.
func (p *Product) LowStock() bool {
	return p.Stock.LessThanOrEqual(p.MinStock)
}
