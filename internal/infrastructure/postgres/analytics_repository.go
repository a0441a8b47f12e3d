package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas read-only para el dashboard.
type AnalyticsRepo struct {
	q Querier
}

func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetProductStats agrega totales del catálogo en una sola consulta.
func (r *AnalyticsRepo) GetProductStats(ctx context.Context) (*repository.ProductStats, error) {
	query := `
		SELECT COUNT(*),
		       COALESCE(SUM(price * stock_quantity), 0),
		       COUNT(*) FILTER (WHERE stock_quantity < min_stock_threshold)
		FROM products`
	var stats repository.ProductStats
	err := r.q.QueryRow(ctx, query).Scan(
		&stats.TotalProducts, &stats.TotalStockValue, &stats.LowStockItems,
	)
	if err != nil {
		return nil, fmt.Errorf("product stats: %w", err)
	}
	return &stats, nil
}

// GetOrderStats agrega totales de pedidos. El revenue cuenta solo completed.
func (r *AnalyticsRepo) GetOrderStats(ctx context.Context) (*repository.OrderStats, error) {
	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = $1),
		       COALESCE(SUM(total_amount) FILTER (WHERE status = $2), 0)
		FROM orders`
	var stats repository.OrderStats
	err := r.q.QueryRow(ctx, query, entity.OrderStatusPending, entity.OrderStatusCompleted).Scan(
		&stats.TotalOrders, &stats.PendingOrders, &stats.TotalRevenue,
	)
	if err != nil {
		return nil, fmt.Errorf("order stats: %w", err)
	}
	return &stats, nil
}
