package entity

import "time"

// Category representa una categoría de productos. Su identidad es el nombre:
// los productos la referencian por nombre, no por un id opaco.
type Category struct {
	Name      string
	CreatedAt time.Time
}
