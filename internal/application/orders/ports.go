package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// OrderTxRunner ejecuta una función dentro de una transacción que incluye los
// repos de inventario y de pedidos. Un pedido, sus líneas y sus movimientos
// de salida comparten la misma frontera transaccional.
type OrderTxRunner interface {
	RunOrder(ctx context.Context, fn func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error) error
}

// StockApplier integra el motor de pedidos con el de inventario.
// ApplyOUTLocked registra una salida usando los repositorios del caller
// (misma transacción) sobre un producto cuya fila ya está bloqueada.
// Si retorna error (ej: ErrInsufficientStock), el caller hace rollback.
type StockApplier interface {
	ApplyOUTLocked(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		product *entity.Product,
		quantity decimal.Decimal,
		note string,
		now time.Time,
	) error
}
