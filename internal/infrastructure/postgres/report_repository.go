package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo proyecciones agregadas de solo lectura sobre PostgreSQL.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes. Pasar pool o tx (Querier).
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// DashboardStats agrega los totales del tablero en una sola consulta.
func (r *ReportRepo) DashboardStats() (*repository.DashboardStats, error) {
	var s repository.DashboardStats
	err := r.q.QueryRow(context.Background(), `
		SELECT
			(SELECT count(*) FROM products),
			(SELECT coalesce(sum(stock * cost), 0) FROM products),
			(SELECT count(*) FROM products WHERE stock <= min_stock),
			(SELECT count(*) FROM movements)`,
	).Scan(&s.TotalProducts, &s.TotalValue, &s.LowStockCount, &s.TotalMovements)
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &s, nil
}

// ValueByCategory valoriza el inventario a costo por categoría.
func (r *ReportRepo) ValueByCategory() ([]repository.CategoryValueRow, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT category, coalesce(sum(stock), 0), coalesce(sum(stock * cost), 0)
		FROM products
		GROUP BY category
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("value by category: %w", err)
	}
	defer rows.Close()
	var list []repository.CategoryValueRow
	for rows.Next() {
		var row repository.CategoryValueRow
		if err := rows.Scan(&row.Category, &row.Units, &row.Value); err != nil {
			return nil, fmt.Errorf("scan category value: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// LowStock lista productos en o por debajo de su umbral, los más críticos
// primero (mayor déficit absoluto).
func (r *ReportRepo) LowStock() ([]*entity.Product, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+productColumns+`
		FROM products
		WHERE stock <= min_stock
		ORDER BY (min_stock - stock) DESC, name`)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.SKU, &p.Name, &p.Category, &p.Description,
			&p.Price, &p.Cost, &p.Stock, &p.MinStock, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
