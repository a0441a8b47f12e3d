package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// MovementWithProduct es un movimiento con el nombre del producto denormalizado
// (join explícito en el adaptador; nunca carga perezosa).
type MovementWithProduct struct {
	entity.StockMovement
	ProductName string
}

// StockMovementRepository define el puerto del libro de movimientos.
// El libro es write-once: el puerto no expone update ni delete.
type StockMovementRepository interface {
	// Create inserta un movimiento inmutable. Nunca escribe parcialmente.
	Create(movement *entity.StockMovement) error
	// ListRecent lista movimientos del más reciente al más antiguo
	// (created_at DESC, desempate por id DESC para orden estable).
	ListRecent(limit, offset int) ([]*MovementWithProduct, error)
}
