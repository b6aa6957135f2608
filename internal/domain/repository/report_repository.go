package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// DashboardStats agrega los totales que muestra el tablero.
type DashboardStats struct {
	TotalProducts  int
	TotalValue     decimal.Decimal // sum(stock * cost)
	LowStockCount  int             // productos con stock <= min_stock
	TotalMovements int
}

// CategoryValueRow valoriza el inventario de una categoría a costo.
type CategoryValueRow struct {
	Category string
	Units    decimal.Decimal
	Value    decimal.Decimal
}

// ReportRepository define el puerto de lectura para proyecciones agregadas.
// Son lecturas sin bloqueo: pueden ver un snapshot levemente desactualizado,
// nunca una escritura a medias.
type ReportRepository interface {
	DashboardStats() (*DashboardStats, error)
	ValueByCategory() ([]CategoryValueRow, error)
	// LowStock lista los productos con stock <= min_stock, ordenados por el
	// déficit relativo (los más críticos primero).
	LowStock() ([]*entity.Product, error)
}
