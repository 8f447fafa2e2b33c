package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL (usable con pool o tx).
// La tabla stock_movements es append-only, indexada por (inventory_id, created_at).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento del libro.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, inventory_id, type, quantity, reference, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	createdBy := (*string)(nil)
	if movement.CreatedBy != "" {
		createdBy = &movement.CreatedBy
	}
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.InventoryID, movement.Type, movement.Quantity,
		movement.Reference, movement.Description, movement.CreatedAt, createdBy,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.StockMovement, error) {
	query := `
		SELECT id, inventory_id, type, quantity, reference, description, created_at, created_by
		FROM stock_movements WHERE id = $1`
	m, err := scanMovement(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ListByInventory lista movimientos de un inventario, más recientes primero.
func (r *MovementRepo) ListByInventory(ctx context.Context, inventoryID string, limit, offset int) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, inventory_id, type, quantity, reference, description, created_at, created_by
		FROM stock_movements WHERE inventory_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, inventoryID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by inventory: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

// CountByInventory cuenta los movimientos de un inventario.
func (r *MovementRepo) CountByInventory(ctx context.Context, inventoryID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE inventory_id = $1`, inventoryID).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return total, nil
}

// ListByReference devuelve los movimientos que comparten una referencia
// (ej. el par de un traslado).
func (r *MovementRepo) ListByReference(ctx context.Context, reference string) ([]*entity.StockMovement, error) {
	query := `
		SELECT id, inventory_id, type, quantity, reference, description, created_at, created_by
		FROM stock_movements WHERE reference = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, reference)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	defer rows.Close()
	return collectMovements(rows)
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var createdBy *string
	err := row.Scan(&m.ID, &m.InventoryID, &m.Type, &m.Quantity, &m.Reference,
		&m.Description, &m.CreatedAt, &createdBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan movement: %w", err)
	}
	if createdBy != nil {
		m.CreatedBy = *createdBy
	}
	return &m, nil
}

func collectMovements(rows pgx.Rows) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, m)
	}
	return list, rows.Err()
}
