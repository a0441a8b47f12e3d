package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// AdjustStockUseCase aplica un cambio de stock (IN, OUT, ADJUSTMENT) como
// unidad atómica: bloqueo de fila del producto (SELECT FOR UPDATE), nueva
// cantidad y línea en el libro de movimientos dentro de la misma transacción.
// Si la cantidad resultante sería negativa no se escribe nada.
type AdjustStockUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) *AdjustStockUseCase {
	return &AdjustStockUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// signedDelta traduce el tipo de movimiento a un delta firmado.
// IN → +quantity, OUT → −quantity, ADJUSTMENT → quantity tal cual (ya firmado).
func signedDelta(changeType string, quantity decimal.Decimal) decimal.Decimal {
	if changeType == entity.MovementTypeOUT {
		return quantity.Neg()
	}
	return quantity
}

// Adjust valida la entrada, bloquea la fila del producto y aplica el delta
// junto con la línea del libro en una sola transacción.
//
// Reglas de entrada: para IN/OUT Quantity es una magnitud > 0; para ADJUSTMENT
// es el delta firmado que se aplica directamente (decisión de diseño: el
// ajuste es relativo, no un valor absoluto).
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in dto.AdjustStockRequest) (*dto.StockMovementResponse, error) {
	if in.ProductID == "" || !entity.ValidMovementType(in.ChangeType) {
		return nil, domain.ErrInvalidInput
	}
	switch in.ChangeType {
	case entity.MovementTypeIN, entity.MovementTypeOUT:
		if !in.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	case entity.MovementTypeADJUSTMENT:
		if in.Quantity.IsZero() {
			return nil, domain.ErrInvalidInput
		}
	}

	delta := signedDelta(in.ChangeType, in.Quantity)
	now := time.Now()

	var resp *dto.StockMovementResponse
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
	) error {
		// Bloquea la fila del producto: dos deltas concurrentes sobre el mismo
		// producto se serializan aquí (lost-update imposible).
		product, err := productRepo.GetForUpdate(in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrProductNotFound
		}

		newQty := product.StockQuantity.Add(delta)
		if newQty.IsNegative() {
			// Rollback: ni cantidad nueva ni línea en el libro.
			return domain.ErrInsufficientStock
		}
		if err := productRepo.UpdateStock(product.ID, newQty); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:         uuid.New().String(),
			ProductID:  product.ID,
			ChangeType: in.ChangeType,
			Quantity:   delta,
			Notes:      in.Notes,
			CreatedAt:  now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}

		resp = toMovementResponse(mov, product.Name)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// ApplyOUTLocked registra una salida usando los repositorios del caller (misma
// transacción). El caller debe tener la fila del producto ya bloqueada y su
// disponibilidad verificada; aquí se vuelve a comprobar el invariante antes de
// escribir. Lo usa el motor de pedidos con note = "Order #<id>".
func (uc *AdjustStockUseCase) ApplyOUTLocked(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	quantity decimal.Decimal,
	note string,
	now time.Time,
) error {
	if product.StockQuantity.LessThan(quantity) {
		return domain.ErrInsufficientStock
	}
	newQty := product.StockQuantity.Sub(quantity)
	if err := productRepo.UpdateStock(product.ID, newQty); err != nil {
		return err
	}
	product.StockQuantity = newQty

	mov := &entity.StockMovement{
		ID:         uuid.New().String(),
		ProductID:  product.ID,
		ChangeType: entity.MovementTypeOUT,
		Quantity:   quantity.Neg(),
		Notes:      note,
		CreatedAt:  now,
	}
	return movRepo.Create(mov)
}

// ListMovements lista el libro de movimientos del más reciente al más antiguo.
// Lectura sin efectos: dos llamadas sin escrituras intermedias devuelven lo mismo.
func (uc *AdjustStockUseCase) ListMovements(ctx context.Context, limit, offset int) (*dto.MovementListResponse, error) {
	movements, err := uc.movementRepo.ListRecent(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.MovementListResponse{
		Items: make([]dto.StockMovementResponse, 0, len(movements)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, m := range movements {
		out.Items = append(out.Items, *toMovementResponse(&m.StockMovement, m.ProductName))
	}
	return out, nil
}

func toMovementResponse(m *entity.StockMovement, productName string) *dto.StockMovementResponse {
	return &dto.StockMovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		ProductName: productName,
		ChangeType:  m.ChangeType,
		Quantity:    m.Quantity,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
	}
}
