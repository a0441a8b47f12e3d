package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/inventory/adjust.
// Para IN/OUT Quantity es una magnitud estrictamente positiva;
// para ADJUSTMENT es el delta firmado que se aplica tal cual.
type AdjustStockRequest struct {
	ProductID  string          `json:"product_id" validate:"required"`
	ChangeType string          `json:"change_type" validate:"required,oneof=IN OUT ADJUSTMENT"`
	Quantity   decimal.Decimal `json:"quantity"`
	Notes      string          `json:"notes" validate:"max=500"`
}

// StockMovementResponse salida de un movimiento del libro.
// Quantity es el delta firmado realmente aplicado (las salidas en negativo).
type StockMovementResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ChangeType  string          `json:"change_type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Notes       string          `json:"notes,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MovementListResponse lista paginada de movimientos (más recientes primero).
type MovementListResponse struct {
	Items []StockMovementResponse `json:"items"`
	Page  PageResponse            `json:"page"`
}
