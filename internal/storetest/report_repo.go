package storetest

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ReportRepo devuelve la vista ReportRepository del almacén. Los agregados se
// derivan del estado en memoria con la misma semántica que las consultas SQL.
func (s *Store) ReportRepo() repository.ReportRepository { return &reportRepo{s} }

type reportRepo struct{ s *Store }

func (r *reportRepo) DashboardStats() (*repository.DashboardStats, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stats := &repository.DashboardStats{
		TotalMovements: len(r.s.movements),
		TotalValue:     decimal.Zero,
	}
	for _, p := range r.s.products {
		stats.TotalProducts++
		stats.TotalValue = stats.TotalValue.Add(p.Stock.Mul(p.Cost))
		if p.LowStock() {
			stats.LowStockCount++
		}
	}
	return stats, nil
}

func (r *reportRepo) ValueByCategory() ([]repository.CategoryValueRow, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	byCategory := make(map[string]*repository.CategoryValueRow)
	for _, p := range r.s.products {
		row, ok := byCategory[p.Category]
		if !ok {
			row = &repository.CategoryValueRow{
				Category: p.Category,
				Units:    decimal.Zero,
				Value:    decimal.Zero,
			}
			byCategory[p.Category] = row
		}
		row.Units = row.Units.Add(p.Stock)
		row.Value = row.Value.Add(p.Stock.Mul(p.Cost))
	}
	rows := make([]repository.CategoryValueRow, 0, len(byCategory))
	for _, row := range byCategory {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Category < rows[j].Category })
	return rows, nil
}

func (r *reportRepo) LowStock() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.LowStock() {
			cp := *p
			list = append(list, &cp)
		}
	}
	// Déficit absoluto mayor primero; desempate estable por nombre.
	sort.Slice(list, func(i, j int) bool {
		di := list[i].MinStock.Sub(list[i].Stock)
		dj := list[j].MinStock.Sub(list[j].Stock)
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return list[i].Name < list[j].Name
	})
	return list, nil
}
