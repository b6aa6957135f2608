package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// ValidMovementType reporta si s es un tipo de movimiento conocido.
func ValidMovementType(s string) bool {
	return s == MovementTypeIN || s == MovementTypeOUT
}

// Movement es una entrada inmutable del libro de movimientos: registra una
// cantidad de stock que entra o sale para un producto. Una vez insertado,
// nunca se actualiza; el historial por producto, reducido con signo, debe
// coincidir con Product.Stock.
type Movement struct {
	ID        string
	ProductID string
	Type      string          // IN u OUT
	Quantity  decimal.Decimal // siempre positiva; el signo lo da Type
	Date      time.Time       // asignada por el servidor al insertar
	Notes     string
}

// Signed devuelve la cantidad con signo según el tipo (IN positiva, OUT negativa).
func (m *Movement) Signed() decimal.Decimal {
	if m.Type == MovementTypeOUT {
		return m.Quantity.Neg()
	}
	return m.Quantity
}
