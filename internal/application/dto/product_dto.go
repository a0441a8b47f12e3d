package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialStock permite fijar el stock inicial al crear; después de la creación
// toda variación de stock pasa por el libro de movimientos.
type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"required,min=1,max=100"`
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Category          string          `json:"category" validate:"max=100"`
	Price             decimal.Decimal `json:"price"`
	InitialStock      decimal.Decimal `json:"initial_stock"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
	SupplierID        string          `json:"supplier_id"`
}

// UpdateProductRequest entrada para actualizar un producto (sin StockQuantity:
// el stock se maneja vía movimientos).
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Category          *string          `json:"category" validate:"omitempty,max=100"`
	Price             *decimal.Decimal `json:"price"`
	MinStockThreshold *decimal.Decimal `json:"min_stock_threshold"`
	SupplierID        *string          `json:"supplier_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string          `json:"id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	Price             decimal.Decimal `json:"price"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
	SupplierID        string          `json:"supplier_id,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
