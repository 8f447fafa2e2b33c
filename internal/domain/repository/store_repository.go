package repository

import (
	"context"

	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
)

// StoreRepository define el puerto de persistencia para tiendas (DIP).
type StoreRepository interface {
	Create(ctx context.Context, store *entity.Store) error
	GetByID(ctx context.Context, id string) (*entity.Store, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Store, error)
}
