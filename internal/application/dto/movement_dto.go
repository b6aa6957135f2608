package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"` // IN u OUT
	Quantity  decimal.Decimal `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
}

// MovementResponse representación HTTP de un movimiento, con el producto
// resuelto a nombre/SKU para consumo directo de los listados. Si el producto
// fue borrado después (política "tolerate") se muestra un marcador.
type MovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Date        time.Time       `json:"date"`
	Notes       string          `json:"notes,omitempty"`
}

// MovementListResponse listado paginado de movimientos (recientes primero).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
