package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

const inventoryColumns = `
	i.id, i.product_id, i.store_id, i.on_hand, i.minimum_stock, i.maximum_stock,
	i.reorder_point, i.reorder_quantity, i.status, i.location, i.expiry_date,
	i.created_at, i.updated_at`

// InventoryRepo implementación de InventoryRepository sobre PostgreSQL (usable con pool o tx).
// La tabla inventory_records tiene constraint único sobre (product_id, store_id).
type InventoryRepo struct {
	q Querier
}

// NewInventoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryRepository(q Querier) *InventoryRepo {
	return &InventoryRepo{q: q}
}

func scanInventory(row pgx.Row) (*entity.InventoryRecord, error) {
	var rec entity.InventoryRecord
	err := row.Scan(
		&rec.ID, &rec.ProductID, &rec.StoreID, &rec.OnHand, &rec.MinimumStock,
		&rec.MaximumStock, &rec.ReorderPoint, &rec.ReorderQuantity, &rec.Status,
		&rec.Location, &rec.ExpiryDate, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan inventory record: %w", err)
	}
	return &rec, nil
}

// GetByID obtiene un registro de inventario por ID.
func (r *InventoryRepo) GetByID(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records i WHERE i.id = $1`
	return scanInventory(r.q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE).
func (r *InventoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records i WHERE i.id = $1 FOR UPDATE`
	return scanInventory(r.q.QueryRow(ctx, query, id))
}

// GetByProductAndStore obtiene el registro de un producto en una tienda.
func (r *InventoryRepo) GetByProductAndStore(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records i WHERE i.product_id = $1 AND i.store_id = $2`
	return scanInventory(r.q.QueryRow(ctx, query, productID, storeID))
}

// GetByProductAndStoreForUpdate obtiene el registro y bloquea la fila.
func (r *InventoryRepo) GetByProductAndStoreForUpdate(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records i WHERE i.product_id = $1 AND i.store_id = $2 FOR UPDATE`
	return scanInventory(r.q.QueryRow(ctx, query, productID, storeID))
}

// Create inserta un registro nuevo; ErrDuplicate si (product_id, store_id) ya existe.
func (r *InventoryRepo) Create(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, product_id, store_id, on_hand, minimum_stock, maximum_stock,
			reorder_point, reorder_quantity, status, location, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.ProductID, rec.StoreID, rec.OnHand, rec.MinimumStock, rec.MaximumStock,
		rec.ReorderPoint, rec.ReorderQuantity, rec.Status, rec.Location, rec.ExpiryDate,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory record: %w", err)
	}
	return nil
}

// EnsureExists inserta la fila si no existe (ON CONFLICT DO NOTHING). Resuelve la
// carrera de find-or-create sin ramificar sobre una verificación previa.
func (r *InventoryRepo) EnsureExists(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, product_id, store_id, on_hand, minimum_stock, maximum_stock,
			reorder_point, reorder_quantity, status, location, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (product_id, store_id) DO NOTHING`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.ProductID, rec.StoreID, rec.OnHand, rec.MinimumStock, rec.MaximumStock,
		rec.ReorderPoint, rec.ReorderQuantity, rec.Status, rec.Location, rec.ExpiryDate,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("ensure inventory record: %w", err)
	}
	return nil
}

// Upsert crea la fila o fusiona cantidad y umbrales sobre una existente (carga masiva).
func (r *InventoryRepo) Upsert(ctx context.Context, rec *entity.InventoryRecord) error {
	query := `
		INSERT INTO inventory_records (id, product_id, store_id, on_hand, minimum_stock, maximum_stock,
			reorder_point, reorder_quantity, status, location, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand,
			minimum_stock = EXCLUDED.minimum_stock,
			maximum_stock = EXCLUDED.maximum_stock,
			reorder_point = EXCLUDED.reorder_point,
			reorder_quantity = EXCLUDED.reorder_quantity,
			location = EXCLUDED.location,
			expiry_date = EXCLUDED.expiry_date,
			updated_at = now()`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.ProductID, rec.StoreID, rec.OnHand, rec.MinimumStock, rec.MaximumStock,
		rec.ReorderPoint, rec.ReorderQuantity, rec.Status, rec.Location, rec.ExpiryDate,
		rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert inventory record: %w", err)
	}
	return nil
}

// UpdateQuantity fija el nuevo OnHand (llamar con la fila bloqueada).
func (r *InventoryRepo) UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error {
	query := `UPDATE inventory_records SET on_hand = $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, quantity)
	if err != nil {
		return fmt.Errorf("update inventory quantity: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve la página filtrada y el total de filas que cumplen el filtro.
func (r *InventoryRepo) List(ctx context.Context, filter repository.InventoryFilter) ([]*entity.InventoryRecord, int, error) {
	where, args := buildInventoryWhere(filter)

	countQuery := `
		SELECT COUNT(*)
		FROM inventory_records i
		JOIN products p ON p.id = i.product_id` + where
	var total int
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count inventory records: %w", err)
	}

	orderCol := map[string]string{
		"updated_at":   "i.updated_at",
		"on_hand":      "i.on_hand",
		"product_name": "p.name",
	}[filter.SortBy]
	direction := "DESC"
	if filter.SortOrder == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT `+inventoryColumns+`
		FROM inventory_records i
		JOIN products p ON p.id = i.product_id
		%s
		ORDER BY %s %s
		LIMIT $%d OFFSET $%d`, where, orderCol, direction, len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset())

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list inventory records: %w", err)
	}
	defer rows.Close()

	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, rec)
	}
	return list, total, rows.Err()
}

func buildInventoryWhere(filter repository.InventoryFilter) (string, []any) {
	clauses := []string{}
	args := []any{}
	pos := 1
	if filter.Search != "" {
		clauses = append(clauses, fmt.Sprintf("(p.sku ILIKE $%d OR p.name ILIKE $%d)", pos, pos))
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	if filter.StoreID != "" {
		clauses = append(clauses, fmt.Sprintf("i.store_id = $%d", pos))
		args = append(args, filter.StoreID)
		pos++
	}
	if filter.Status != "" {
		clauses = append(clauses, fmt.Sprintf("i.status = $%d", pos))
		args = append(args, filter.Status)
		pos++
	}
	if filter.LowStock {
		clauses = append(clauses, "i.on_hand <= i.reorder_point")
	}
	if filter.ExpiringWithinDays > 0 {
		clauses = append(clauses, fmt.Sprintf("i.expiry_date IS NOT NULL AND i.expiry_date <= now() + ($%d || ' days')::interval", pos))
		args = append(args, filter.ExpiringWithinDays)
		pos++
	}
	if len(clauses) == 0 {
		return "", args
	}
	where := "\n\t\tWHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}

// ListPage pagina todas las filas por ID para barridos completos (alertas).
func (r *InventoryRepo) ListPage(ctx context.Context, afterID string, limit int) ([]*entity.InventoryRecord, error) {
	query := `SELECT ` + inventoryColumns + ` FROM inventory_records i WHERE i.id > $1 ORDER BY i.id LIMIT $2`
	rows, err := r.q.Query(ctx, query, afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("page inventory records: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryRecord
	for rows.Next() {
		rec, err := scanInventory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
