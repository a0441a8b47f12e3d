package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// ProductStats agregados de catálogo para el dashboard.
type ProductStats struct {
	TotalProducts   int64
	TotalStockValue decimal.Decimal // Σ price × stock_quantity
	LowStockItems   int64           // productos con stock_quantity < min_stock_threshold
}

// OrderStats agregados de pedidos para el dashboard.
type OrderStats struct {
	TotalOrders   int64
	PendingOrders int64
	TotalRevenue  decimal.Decimal // solo pedidos completed
}

// AnalyticsRepository consultas read-only de agregación para reportes.
type AnalyticsRepository interface {
	GetProductStats(ctx context.Context) (*ProductStats, error)
	GetOrderStats(ctx context.Context) (*OrderStats, error)
}
