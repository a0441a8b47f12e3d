package dto

import "github.com/shopspring/decimal"

// DashboardStatsDTO resumen del negocio para GET /api/reports/dashboard.
type DashboardStatsDTO struct {
	TotalProducts   int64           `json:"total_products"`
	TotalStockValue decimal.Decimal `json:"total_stock_value"`
	LowStockItems   int64           `json:"low_stock_items"`
	TotalOrders     int64           `json:"total_orders"`
	PendingOrders   int64           `json:"pending_orders"`
	TotalRevenue    decimal.Decimal `json:"total_revenue"`
}
