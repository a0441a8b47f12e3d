package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// fakeStore emula la base: un mapa de productos y un slice append-only de
// movimientos. fakeTxRunner serializa las "transacciones" con un mutex global
// (el equivalente grueso del FOR UPDATE por fila) y restaura un snapshot si el
// callback falla, igual que un rollback.
// ──────────────────────────────────────────────────────────────────────────────

type fakeStore struct {
	mu        sync.Mutex
	products  map[string]*entity.Product
	movements []*entity.StockMovement

	// movementCreateErr hace fallar el INSERT del libro para ejercitar el
	// rollback después de haber escrito la nueva cantidad.
	movementCreateErr error
}

func newFakeStore(products ...*entity.Product) *fakeStore {
	s := &fakeStore{products: make(map[string]*entity.Product)}
	for _, p := range products {
		cp := *p
		s.products[p.ID] = &cp
	}
	return s
}

func (s *fakeStore) stockOf(id string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.products[id].StockQuantity
}

type fakeTxRunner struct {
	store *fakeStore
}

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	movRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	// Snapshot para simular rollback.
	snapProducts := make(map[string]*entity.Product, len(r.store.products))
	for id, p := range r.store.products {
		cp := *p
		snapProducts[id] = &cp
	}
	snapMovLen := len(r.store.movements)

	if err := fn(&fakeMovementRepo{store: r.store}, &fakeProductRepo{store: r.store}); err != nil {
		r.store.products = snapProducts
		r.store.movements = r.store.movements[:snapMovLen]
		return err
	}
	return nil
}

// fakeProductRepo opera directamente sobre el store. El caller ya tiene el
// mutex del store (dentro de Run), así que no vuelve a bloquear.
type fakeProductRepo struct {
	store *fakeStore
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	f.store.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.store.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range f.store.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return f.GetByID(id)
}

func (f *fakeProductRepo) UpdateStock(productID string, quantity decimal.Decimal) error {
	f.store.products[productID].StockQuantity = quantity
	return nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	f.store.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) List(_, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.store.products, id)
	return nil
}

type fakeMovementRepo struct {
	store *fakeStore
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	if f.store.movementCreateErr != nil {
		return f.store.movementCreateErr
	}
	cp := *m
	f.store.movements = append(f.store.movements, &cp)
	return nil
}

func (f *fakeMovementRepo) ListRecent(limit, offset int) ([]*repository.MovementWithProduct, error) {
	var out []*repository.MovementWithProduct
	// más recientes primero
	for i := len(f.store.movements) - 1; i >= 0; i-- {
		out = append(out, &repository.MovementWithProduct{StockMovement: *f.store.movements[i]})
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func newTestUseCase(store *fakeStore) *inventory.AdjustStockUseCase {
	return inventory.NewAdjustStockUseCase(
		&fakeTxRunner{store: store},
		&fakeProductRepo{store: store},
		&fakeMovementRepo{store: store},
	)
}

func testProduct(stock int64) *entity.Product {
	now := time.Now()
	return &entity.Product{
		ID:                uuid.New().String(),
		SKU:               "SKU-1",
		Name:              "Teclado mecánico",
		Price:             decimal.NewFromFloat(49.90),
		StockQuantity:     decimal.NewFromInt(stock),
		MinStockThreshold: decimal.NewFromInt(10),
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests Adjust
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjust_INIncrementaStock(t *testing.T) {
	p := testProduct(10)
	store := newFakeStore(p)
	uc := newTestUseCase(store)

	out, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:  p.ID,
		ChangeType: entity.MovementTypeIN,
		Quantity:   decimal.NewFromInt(5),
		Notes:      "reposición semanal",
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, decimal.NewFromInt(15).Equal(store.stockOf(p.ID)),
		"stock debe quedar en 15")
	assert.True(t, decimal.NewFromInt(5).Equal(out.Quantity),
		"el delta del movimiento IN es positivo")
	assert.Equal(t, p.Name, out.ProductName)
	require.Len(t, store.movements, 1)
}

func TestAdjust_OUTDecrementaStock(t *testing.T) {
	p := testProduct(10)
	store := newFakeStore(p)
	uc := newTestUseCase(store)

	out, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:  p.ID,
		ChangeType: entity.MovementTypeOUT,
		Quantity:   decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(6).Equal(store.stockOf(p.ID)))
	assert.True(t, decimal.NewFromInt(-4).Equal(out.Quantity),
		"el delta registrado de un OUT es negativo")
}

func TestAdjust_OUTInsuficiente_NoEscribeNada(t *testing.T) {
	p := testProduct(10)
	store := newFakeStore(p)
	uc := newTestUseCase(store)

	_, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:  p.ID,
		ChangeType: entity.MovementTypeOUT,
		Quantity:   decimal.NewFromInt(12),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, decimal.NewFromInt(10).Equal(store.stockOf(p.ID)),
		"el stock no debe cambiar tras un rechazo")
	assert.Empty(t, store.movements,
		"un ajuste rechazado no deja línea en el libro")
}

func TestAdjust_ADJUSTMENTDeltaFirmado(t *testing.T) {
	p := testProduct(10)
	store := newFakeStore(p)
	uc := newTestUseCase(store)

	out, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:  p.ID,
		ChangeType: entity.MovementTypeADJUSTMENT,
		Quantity:   decimal.NewFromInt(-3),
		Notes:      "merma por conteo físico",
	})
	require.NoError(t, err)

	assert.True(t, decimal.NewFromInt(7).Equal(store.stockOf(p.ID)))
	assert.True(t, decimal.NewFromInt(-3).Equal(out.Quantity))
}

func TestAdjust_ADJUSTMENTDejaríaNegativo_Rechazado(t *testing.T) {
	p := testProduct(2)
	store := newFakeStore(p)
	uc := newTestUseCase(store)

	_, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:  p.ID,
		ChangeType: entity.MovementTypeADJUSTMENT,
		Quantity:   decimal.NewFromInt(-5),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, decimal.NewFromInt(2).Equal(store.stockOf(p.ID)))
}

func TestAdjust_EntradaInvalida(t *testing.T) {
	p := testProduct(10)
	store := newFakeStore(p)
	uc := newTestUseCase(store)

	cases := []struct {
		name string
		in   dto.AdjustStockRequest
	}{
		{"tipo desconocido", dto.AdjustStockRequest{ProductID: p.ID, ChangeType: "TRANSFER", Quantity: decimal.NewFromInt(1)}},
		{"IN cantidad cero", dto.AdjustStockRequest{ProductID: p.ID, ChangeType: entity.MovementTypeIN, Quantity: decimal.Zero}},
		{"OUT cantidad negativa", dto.AdjustStockRequest{ProductID: p.ID, ChangeType: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(-2)}},
		{"ADJUSTMENT cero", dto.AdjustStockRequest{ProductID: p.ID, ChangeType: entity.MovementTypeADJUSTMENT, Quantity: decimal.Zero}},
		{"sin product_id", dto.AdjustStockRequest{ChangeType: entity.MovementTypeIN, Quantity: decimal.NewFromInt(1)}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.Adjust(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Empty(t, store.movements)
}

// Si el INSERT del libro falla después de escribir la nueva cantidad, la
// transacción revierte también el acumulador: el stock queda como estaba.
func TestAdjust_FalloDelLibro_RevierteElAcumulador(t *testing.T) {
	p := testProduct(10)
	store := newFakeStore(p)
	store.movementCreateErr = errors.New("insert stock_movements: disco lleno")
	uc := newTestUseCase(store)

	_, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:  p.ID,
		ChangeType: entity.MovementTypeIN,
		Quantity:   decimal.NewFromInt(5),
	})
	require.ErrorIs(t, err, store.movementCreateErr)

	assert.True(t, decimal.NewFromInt(10).Equal(store.stockOf(p.ID)),
		"la cantidad escrita antes del fallo debe revertirse")
	assert.Empty(t, store.movements)
}

func TestAdjust_ProductoInexistente(t *testing.T) {
	store := newFakeStore()
	uc := newTestUseCase(store)

	_, err := uc.Adjust(context.Background(), dto.AdjustStockRequest{
		ProductID:  uuid.New().String(),
		ChangeType: entity.MovementTypeIN,
		Quantity:   decimal.NewFromInt(1),
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

// Dos OUT de 6 contra un stock de 10 en paralelo: exactamente uno debe ganar
// y el stock final debe ser 4 con una sola línea en el libro.
func TestAdjust_ConcurrenciaDosOUT(t *testing.T) {
	p := testProduct(10)
	store := newFakeStore(p)
	uc := newTestUseCase(store)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.Adjust(context.Background(), dto.AdjustStockRequest{
				ProductID:  p.ID,
				ChangeType: entity.MovementTypeOUT,
				Quantity:   decimal.NewFromInt(6),
			})
		}(i)
	}
	wg.Wait()

	var okCount, insufficientCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficientCount++
		}
	}
	assert.Equal(t, 1, okCount, "exactamente un OUT debe aplicarse")
	assert.Equal(t, 1, insufficientCount, "el otro debe rechazarse")
	assert.True(t, decimal.NewFromInt(4).Equal(store.stockOf(p.ID)))
	assert.Len(t, store.movements, 1)
}

// La cantidad cacheada siempre reconcilia con el stock inicial más la suma de
// deltas del libro.
func TestAdjust_ReconciliacionConElLibro(t *testing.T) {
	p := testProduct(20)
	store := newFakeStore(p)
	uc := newTestUseCase(store)
	ctx := context.Background()

	steps := []dto.AdjustStockRequest{
		{ProductID: p.ID, ChangeType: entity.MovementTypeIN, Quantity: decimal.NewFromInt(15)},
		{ProductID: p.ID, ChangeType: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(8)},
		{ProductID: p.ID, ChangeType: entity.MovementTypeADJUSTMENT, Quantity: decimal.NewFromInt(-2)},
		{ProductID: p.ID, ChangeType: entity.MovementTypeOUT, Quantity: decimal.NewFromInt(100)}, // rechazado
		{ProductID: p.ID, ChangeType: entity.MovementTypeIN, Quantity: decimal.NewFromInt(3)},
	}
	for _, s := range steps {
		_, _ = uc.Adjust(ctx, s)
	}

	sum := decimal.NewFromInt(20) // stock inicial
	for _, m := range store.movements {
		sum = sum.Add(m.Quantity)
	}
	assert.True(t, sum.Equal(store.stockOf(p.ID)),
		"stock inicial + Σ deltas del libro debe igualar la cantidad cacheada")
	assert.True(t, decimal.NewFromInt(28).Equal(store.stockOf(p.ID)))
	assert.Len(t, store.movements, 4, "el OUT rechazado no aparece en el libro")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests ListMovements
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_MasRecientesPrimero(t *testing.T) {
	p := testProduct(50)
	store := newFakeStore(p)
	uc := newTestUseCase(store)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		_, err := uc.Adjust(ctx, dto.AdjustStockRequest{
			ProductID:  p.ID,
			ChangeType: entity.MovementTypeOUT,
			Quantity:   decimal.NewFromInt(int64(i)),
		})
		require.NoError(t, err)
	}

	out, err := uc.ListMovements(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, out.Items, 3)
	assert.True(t, decimal.NewFromInt(-3).Equal(out.Items[0].Quantity),
		"el último movimiento aparece primero")
	assert.True(t, decimal.NewFromInt(-1).Equal(out.Items[2].Quantity))
}
