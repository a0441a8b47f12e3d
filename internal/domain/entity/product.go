package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del catálogo.
// StockQuantity es el acumulador derivado del libro de movimientos: debe ser
// siempre igual a la suma de los deltas firmados aplicados desde su creación,
// y nunca negativo. Solo el motor de inventario lo modifica (fila bloqueada).
type Product struct {
	ID                string
	SKU               string // código único
	Name              string
	Category          string
	Price             decimal.Decimal // precio de venta unitario
	StockQuantity     decimal.Decimal // cantidad actual (cacheada, derivada del libro)
	MinStockThreshold decimal.Decimal // umbral de stock bajo para alertas
	SupplierID        string          // referencia débil al proveedor (puede estar vacía)
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsLowStock indica si el producto está por debajo de su umbral mínimo.
func (p *Product) IsLowStock() bool {
	return p.StockQuantity.LessThan(p.MinStockThreshold)
}
