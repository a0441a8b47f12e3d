package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeIN         = "IN"         // entrada (compra, reposición)
	MovementTypeOUT        = "OUT"        // salida (venta, pedido)
	MovementTypeADJUSTMENT = "ADJUSTMENT" // ajuste manual con delta firmado
)

// ValidMovementType valida el tipo de movimiento.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT || t == MovementTypeADJUSTMENT
}

// StockMovement representa una línea del libro de movimientos de stock.
// El libro es append-only: una vez creado, un movimiento nunca se actualiza
// ni se borra. Quantity es el delta firmado aplicado al producto (las salidas
// se guardan en negativo), de modo que la suma de todos los movimientos de un
// producto reproduce su cantidad actual.
type StockMovement struct {
	ID         string
	ProductID  string
	ChangeType string
	Quantity   decimal.Decimal // delta firmado: IN positivo, OUT negativo, ADJUSTMENT con su signo
	Notes      string          // texto libre; las salidas por pedido llevan "Order #<id>"
	CreatedAt  time.Time
}
