package reports

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// UseCase proyecciones de solo lectura sobre el inventario: tablero, stock
// bajo y valorización por categoría. No muta nada; puede ver un snapshot
// levemente desactualizado.
type UseCase struct {
	reports repository.ReportRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(reports repository.ReportRepository) *UseCase {
	return &UseCase{reports: reports}
}

// Dashboard totales para el tablero.
func (uc *UseCase) Dashboard() (*dto.DashboardResponse, error) {
	stats, err := uc.reports.DashboardStats()
	if err != nil {
		return nil, err
	}
	return &dto.DashboardResponse{
		TotalProducts:  stats.TotalProducts,
		TotalValue:     stats.TotalValue,
		LowStockCount:  stats.LowStockCount,
		TotalMovements: stats.TotalMovements,
	}, nil
}

// LowStock productos en o por debajo de su umbral, con cantidad de compra
// sugerida (dos veces el mínimo menos el stock actual, nunca negativa).
func (uc *UseCase) LowStock() (*dto.LowStockResponse, error) {
	list, err := uc.reports.LowStock()
	if err != nil {
		return nil, err
	}
	items := make([]dto.LowStockRow, 0, len(list))
	for _, p := range list {
		suggested := p.MinStock.Mul(decimal.NewFromInt(2)).Sub(p.Stock)
		if suggested.IsNegative() {
			suggested = decimal.Zero
		}
		items = append(items, dto.LowStockRow{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Category:     p.Category,
			Stock:        p.Stock,
			MinStock:     p.MinStock,
			SuggestedQty: suggested,
		})
	}
	return &dto.LowStockResponse{Items: items}, nil
}

// InventoryValue valorización a costo por categoría más totales generales.
func (uc *UseCase) InventoryValue() (*dto.InventoryValueResponse, error) {
	rows, err := uc.reports.ValueByCategory()
	if err != nil {
		return nil, err
	}
	totalUnits := decimal.Zero
	totalValue := decimal.Zero
	for _, r := range rows {
		totalUnits = totalUnits.Add(r.Units)
		totalValue = totalValue.Add(r.Value)
	}
	hundred := decimal.NewFromInt(100)
	out := make([]dto.CategoryValueRow, 0, len(rows))
	for _, r := range rows {
		share := decimal.Zero
		if totalValue.GreaterThan(decimal.Zero) {
			share = r.Value.Mul(hundred).DivRound(totalValue, 2)
		}
		out = append(out, dto.CategoryValueRow{
			Category: r.Category,
			Units:    r.Units,
			Value:    r.Value,
			Share:    share,
		})
	}
	return &dto.InventoryValueResponse{
		Categories: out,
		TotalUnits: totalUnits,
		TotalValue: totalValue,
	}, nil
}
