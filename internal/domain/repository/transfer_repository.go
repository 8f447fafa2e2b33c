package repository

import (
	"context"
	"time"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia de traslados (DIP).
type TransferRepository interface {
	Create(ctx context.Context, transfer *entity.Transfer) error
	GetByID(ctx context.Context, id string) (*entity.Transfer, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.Transfer, error)
	// Transition cambia el estado solo si el actual coincide con from.
	Transition(ctx context.Context, id, from, to string, now time.Time) (bool, error)
}
