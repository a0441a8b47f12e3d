package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(order *entity.Order) error
	CreateItem(item *entity.OrderItem) error
	GetByID(id string) (*entity.Order, error)
	GetItemsByOrderID(orderID string) ([]*entity.OrderItem, error)
	// ListRecent lista pedidos del más reciente al más antiguo.
	ListRecent(limit, offset int) ([]*entity.Order, error)
}
