package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido. COMPLETED y CANCELLED son terminales; el motor de
// pedidos solo produce COMPLETED (no hay reversión de stock por cancelación).
const (
	OrderStatusPending   = "pending"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
)

// Order representa un pedido de venta. TotalAmount es derivado:
// la suma de price_at_time × quantity de sus líneas.
type Order struct {
	ID          string
	CustomerID  string
	UserID      string // usuario que creó el pedido
	TotalAmount decimal.Decimal
	Status      string
	CreatedAt   time.Time
}

// OrderItem es una línea del pedido, propiedad exclusiva de su Order.
// PriceAtTime es el precio del producto congelado al momento del commit:
// cambios posteriores de precio no lo recalculan.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	Quantity    decimal.Decimal
	PriceAtTime decimal.Decimal
}
