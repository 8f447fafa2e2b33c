package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste un traslado.
func (r *TransferRepo) Create(ctx context.Context, transfer *entity.Transfer) error {
	query := `
		INSERT INTO transfers (id, product_id, source_store_id, dest_store_id, quantity, status, notes, created_at, updated_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		transfer.ID, transfer.ProductID, transfer.SourceStoreID, transfer.DestStoreID,
		transfer.Quantity, transfer.Status, transfer.Notes, transfer.CreatedAt,
		transfer.UpdatedAt, transfer.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	return nil
}

// GetByID obtiene un traslado por ID.
func (r *TransferRepo) GetByID(ctx context.Context, id string) (*entity.Transfer, error) {
	query := `
		SELECT id, product_id, source_store_id, dest_store_id, quantity, status, notes, created_at, updated_at, created_by
		FROM transfers WHERE id = $1`
	return scanTransfer(r.q.QueryRow(ctx, query, id))
}

// GetByIDForUpdate obtiene el traslado y bloquea la fila (SELECT FOR UPDATE).
func (r *TransferRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	query := `
		SELECT id, product_id, source_store_id, dest_store_id, quantity, status, notes, created_at, updated_at, created_by
		FROM transfers WHERE id = $1 FOR UPDATE`
	return scanTransfer(r.q.QueryRow(ctx, query, id))
}

// Transition cambia el estado solo si el actual coincide con from.
func (r *TransferRepo) Transition(ctx context.Context, id, from, to string, now time.Time) (bool, error) {
	query := `UPDATE transfers SET status = $3, updated_at = $4 WHERE id = $1 AND status = $2`
	cmd, err := r.q.Exec(ctx, query, id, from, to, now)
	if err != nil {
		return false, fmt.Errorf("transition transfer: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func scanTransfer(row pgx.Row) (*entity.Transfer, error) {
	var t entity.Transfer
	err := row.Scan(&t.ID, &t.ProductID, &t.SourceStoreID, &t.DestStoreID,
		&t.Quantity, &t.Status, &t.Notes, &t.CreatedAt, &t.UpdatedAt, &t.CreatedBy)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transfer: %w", err)
	}
	return &t, nil
}
