package dto

import "github.com/shopspring/decimal"

// DashboardResponse totales para el tablero.
type DashboardResponse struct {
	TotalProducts  int             `json:"total_products"`
	TotalValue     decimal.Decimal `json:"total_value"`
	LowStockCount  int             `json:"low_stock_count"`
	TotalMovements int             `json:"total_movements"`
}

// LowStockRow un producto en o por debajo de su umbral mínimo.
type LowStockRow struct {
	ProductID    string          `json:"product_id"`
	SKU          string          `json:"sku"`
	Name         string          `json:"name"`
	Category     string          `json:"category"`
	Stock        decimal.Decimal `json:"stock"`
	MinStock     decimal.Decimal `json:"min_stock"`
	SuggestedQty decimal.Decimal `json:"suggested_qty"` // max(min_stock*2 - stock, 0)
}

// LowStockResponse reporte de stock bajo.
type LowStockResponse struct {
	Items []LowStockRow `json:"items"`
}

// CategoryValueRow valorización a costo de una categoría.
type CategoryValueRow struct {
	Category string          `json:"category"`
	Units    decimal.Decimal `json:"units"`
	Value    decimal.Decimal `json:"value"`
	Share    decimal.Decimal `json:"share_pct"` // % del valor total
}

// InventoryValueResponse reporte de valorización del inventario.
type InventoryValueResponse struct {
	Categories []CategoryValueRow `json:"categories"`
	TotalUnits decimal.Decimal    `json:"total_units"`
	TotalValue decimal.Decimal    `json:"total_value"`
}
