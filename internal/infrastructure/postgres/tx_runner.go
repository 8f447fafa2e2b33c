package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// Ensure TxRunner implements inventory.TxRunner.
var _ inventory.TxRunner = (*TxRunner)(nil)

// maxTxAttempts intentos ante fallos de serialización o deadlock antes de
// rendirse con ErrConflict.
const maxTxAttempts = 3

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL con reintento
// acotado: un fallo de serialización (40001) o deadlock (40P01) reinicia el
// callback completo; cualquier otro error hace rollback y se propaga tal cual.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	resRepo repository.ReservationRepository,
	transferRepo repository.TransferRepository,
) error) error {
	var lastErr error
	for attempt := 0; attempt < maxTxAttempts; attempt++ {
		lastErr = r.runOnce(ctx, fn)
		if lastErr == nil || !isRetryableTxError(lastErr) {
			return lastErr
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrConflict, lastErr)
}

func (r *TxRunner) runOnce(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	resRepo repository.ReservationRepository,
	transferRepo repository.TransferRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	invRepo := NewInventoryRepository(tx)
	movRepo := NewMovementRepository(tx)
	resRepo := NewReservationRepository(tx)
	transferRepo := NewTransferRepository(tx)

	if err := fn(invRepo, movRepo, resRepo, transferRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
