package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssemblyComponentInput línea de receta en la creación.
type AssemblyComponentInput struct {
	ProductID string          `json:"product_id"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateAssemblyRequest body para POST /api/assemblies. La receta se crea
// completa (cabecera + componentes); no existe edición parcial.
type CreateAssemblyRequest struct {
	Name       string                   `json:"name"`
	ProductID  string                   `json:"product_id"`
	Components []AssemblyComponentInput `json:"components"`
}

// AssemblyComponentResponse línea de receta con el producto resuelto.
type AssemblyComponentResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// AssemblyResponse representación HTTP de una receta de ensamble.
type AssemblyResponse struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	ProductID   string                      `json:"product_id"`
	ProductName string                      `json:"product_name"`
	ProductSKU  string                      `json:"product_sku"`
	Components  []AssemblyComponentResponse `json:"components"`
	CreatedAt   time.Time                   `json:"created_at"`
}

// ProduceRequest body para POST /api/assemblies/:id/produce.
type ProduceRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ProduceResponse movimientos generados por una corrida de producción:
// exactamente un IN del producto ensamblado y un OUT por componente.
type ProduceResponse struct {
	Movements []MovementResponse `json:"movements"`
}
