// Package analytics contiene los casos de uso read-only para reportes de
// negocio y el dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// DashboardUseCase genera el resumen del negocio para el dashboard.
//
// Fuente de datos: AnalyticsRepository (consultas de agregación).
// No accede directamente a las tablas; delega todo en el repositorio.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetStats construye el DashboardStatsDTO.
//
// Dos llamadas en paralelo:
//  1. GetProductStats → total de productos, valor del stock, items bajo umbral
//  2. GetOrderStats   → pedidos totales/pendientes e ingresos de completados
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardStatsDTO, error) {
	type productResult struct {
		stats *repository.ProductStats
		err   error
	}
	type orderResult struct {
		stats *repository.OrderStats
		err   error
	}

	productCh := make(chan productResult, 1)
	orderCh := make(chan orderResult, 1)

	go func() {
		stats, err := uc.analyticsRepo.GetProductStats(ctx)
		productCh <- productResult{stats, err}
	}()
	go func() {
		stats, err := uc.analyticsRepo.GetOrderStats(ctx)
		orderCh <- orderResult{stats, err}
	}()

	products := <-productCh
	ordersRes := <-orderCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard product stats: %w", products.err)
	}
	if ordersRes.err != nil {
		return nil, fmt.Errorf("dashboard order stats: %w", ordersRes.err)
	}

	return &dto.DashboardStatsDTO{
		TotalProducts:   products.stats.TotalProducts,
		TotalStockValue: products.stats.TotalStockValue,
		LowStockItems:   products.stats.LowStockItems,
		TotalOrders:     ordersRes.stats.TotalOrders,
		PendingOrders:   ordersRes.stats.PendingOrders,
		TotalRevenue:    ordersRes.stats.TotalRevenue,
	}, nil
}
