package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assembly es una receta (lista de materiales): un producto de salida más la
// lista ordenada de componentes con sus cantidades por unidad producida.
// Se crea y se borra como unidad completa; no hay edición parcial.
type Assembly struct {
	ID         string
	Name       string
	ProductID  string // producto ensamblado (salida)
	Components []AssemblyComponent
	CreatedAt  time.Time
}

// AssemblyComponent es una línea de la receta: cuánto consume del componente
// cada unidad producida. ComponentID nunca puede ser el producto de salida.
type AssemblyComponent struct {
	ComponentID string
	Quantity    decimal.Decimal // > 0
}
