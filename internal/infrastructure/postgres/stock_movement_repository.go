package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo INSERT y SELECT: la tabla es append-only.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento inmutable del libro.
func (r *StockMovementRepo) Create(movement *entity.StockMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_movements (id, product_id, change_type, quantity, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	notes := (*string)(nil)
	if movement.Notes != "" {
		notes = &movement.Notes
	}
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.ChangeType,
		movement.Quantity, notes, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// ListRecent lista movimientos del más reciente al más antiguo con el nombre
// del producto resuelto por join explícito. Desempate por id DESC para que
// lecturas repetidas devuelvan el mismo orden.
func (r *StockMovementRepo) ListRecent(limit, offset int) ([]*repository.MovementWithProduct, error) {
	query := `
		SELECT m.id, m.product_id, m.change_type, m.quantity, m.notes, m.created_at,
		       COALESCE(p.name, 'Unknown') AS product_name
		FROM stock_movements m
		LEFT JOIN products p ON p.id = m.product_id
		ORDER BY m.created_at DESC, m.id DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*repository.MovementWithProduct
	for rows.Next() {
		var m repository.MovementWithProduct
		var notes *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.ChangeType, &m.Quantity, &notes, &m.CreatedAt, &m.ProductName); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if notes != nil {
			m.Notes = *notes
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
