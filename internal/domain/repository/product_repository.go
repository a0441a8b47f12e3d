package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate + UpdateStock son el acumulador de stock: la fila del producto
// es la unidad de exclusión mutua (SELECT FOR UPDATE) y dos deltas concurrentes
// sobre el mismo producto se serializan ahí. Usar solo dentro de transacción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea su fila (SELECT FOR UPDATE).
	GetForUpdate(id string) (*entity.Product, error)
	// UpdateStock escribe la nueva cantidad cacheada. El caller debe tener la fila bloqueada.
	UpdateStock(productID string, quantity decimal.Decimal) error
	Update(product *entity.Product) error
	List(search, category string, limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
}
