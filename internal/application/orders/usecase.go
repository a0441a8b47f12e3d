package orders

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// CreateOrderUseCase crea un pedido multi-línea y descuenta el stock en una
// sola transacción: o todo el pedido queda persistido con sus movimientos de
// salida, o el sistema queda exactamente como estaba.
//
// Diseño en dos pasadas dentro de la tx:
//  1. bloquear la fila de cada producto (en orden ascendente de id, sin
//     deadlocks) y verificar disponibilidad de TODAS las líneas;
//  2. solo si todas pasan, escribir pedido, líneas y un movimiento OUT por
//     línea con nota "Order #<id>".
type CreateOrderUseCase struct {
	txRunner     OrderTxRunner
	stockApplier StockApplier
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	orderRepo    repository.OrderRepository
}

// NewCreateOrderUseCase construye el caso de uso.
func NewCreateOrderUseCase(
	txRunner OrderTxRunner,
	stockApplier StockApplier,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	orderRepo repository.OrderRepository,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		txRunner:     txRunner,
		stockApplier: stockApplier,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		orderRepo:    orderRepo,
	}
}

// Create valida cliente, productos y disponibilidad, congela el precio actual
// de cada línea como price_at_time y hace el commit atómico.
func (uc *CreateOrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.CustomerID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || !item.Quantity.GreaterThan(decimal.Zero) {
			return nil, domain.ErrInvalidInput
		}
	}

	// Validar cliente (lectura fuera de la tx)
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	// Cantidad total requerida por producto (soporta líneas repetidas del mismo
	// producto: la verificación es acumulada, el bloqueo es uno por producto).
	required := make(map[string]decimal.Decimal)
	productIDs := make([]string, 0, len(in.Items))
	for _, item := range in.Items {
		if _, seen := required[item.ProductID]; !seen {
			productIDs = append(productIDs, item.ProductID)
		}
		required[item.ProductID] = required[item.ProductID].Add(item.Quantity)
	}
	// Orden determinista de adquisición de bloqueos
	sort.Strings(productIDs)

	now := time.Now()
	orderID := uuid.New().String() // se usa como referencia en las notas de los movimientos
	var order *entity.Order
	var items []*entity.OrderItem

	err = uc.txRunner.RunOrder(ctx, func(
		movRepo repository.StockMovementRepository,
		productRepo repository.ProductRepository,
		orderRepo repository.OrderRepository,
	) error {
		// Pasada 1: bloquear y verificar todas las líneas antes de tocar stock.
		locked := make(map[string]*entity.Product, len(productIDs))
		for _, id := range productIDs {
			product, err := productRepo.GetForUpdate(id)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
			}
			if product.StockQuantity.LessThan(required[id]) {
				// Aborta el pedido completo nombrando el primer producto que falla.
				return fmt.Errorf("%w: %s", domain.ErrInsufficientStock, product.Name)
			}
			locked[id] = product
		}

		// Total con el precio actual de cada producto, congelado en la línea.
		var total decimal.Decimal
		for _, item := range in.Items {
			total = total.Add(locked[item.ProductID].Price.Mul(item.Quantity))
		}

		// Pasada 2: pedido, líneas y un movimiento OUT por línea.
		order = &entity.Order{
			ID:          orderID,
			CustomerID:  in.CustomerID,
			UserID:      userID,
			TotalAmount: total,
			Status:      entity.OrderStatusCompleted,
			CreatedAt:   now,
		}
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		note := fmt.Sprintf("Order #%s", orderID)
		for _, item := range in.Items {
			product := locked[item.ProductID]
			line := &entity.OrderItem{
				ID:          uuid.New().String(),
				OrderID:     orderID,
				ProductID:   item.ProductID,
				Quantity:    item.Quantity,
				PriceAtTime: product.Price,
			}
			if err := orderRepo.CreateItem(line); err != nil {
				return err
			}
			if err := uc.stockApplier.ApplyOUTLocked(movRepo, productRepo, product, item.Quantity, note, now); err != nil {
				return err
			}
			items = append(items, line)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return toOrderResponse(order, items), nil
}

// List lista pedidos del más reciente al más antiguo con sus líneas.
func (uc *CreateOrderUseCase) List(ctx context.Context, limit, offset int) (*dto.OrderListResponse, error) {
	orderList, err := uc.orderRepo.ListRecent(limit, offset)
	if err != nil {
		return nil, err
	}
	out := &dto.OrderListResponse{
		Items: make([]dto.OrderResponse, 0, len(orderList)),
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}
	for _, o := range orderList {
		items, err := uc.orderRepo.GetItemsByOrderID(o.ID)
		if err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *toOrderResponse(o, items))
	}
	return out, nil
}

// GetByID obtiene un pedido con sus líneas.
func (uc *CreateOrderUseCase) GetByID(ctx context.Context, id string) (*dto.OrderResponse, error) {
	order, err := uc.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	items, err := uc.orderRepo.GetItemsByOrderID(id)
	if err != nil {
		return nil, err
	}
	return toOrderResponse(order, items), nil
}

func toOrderResponse(o *entity.Order, items []*entity.OrderItem) *dto.OrderResponse {
	resp := &dto.OrderResponse{
		ID:          o.ID,
		CustomerID:  o.CustomerID,
		UserID:      o.UserID,
		TotalAmount: o.TotalAmount,
		Status:      o.Status,
		CreatedAt:   o.CreatedAt,
		Items:       make([]dto.OrderItemResponse, 0, len(items)),
	}
	for _, it := range items {
		resp.Items = append(resp.Items, dto.OrderItemResponse{
			ProductID:   it.ProductID,
			Quantity:    it.Quantity,
			PriceAtTime: it.PriceAtTime,
		})
	}
	return resp
}
