package inventory_test

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/stock-ledger/internal/application/inventory"
	"github.com/tu-usuario/stock-ledger/internal/domain"
	"github.com/tu-usuario/stock-ledger/internal/domain/entity"
	"github.com/tu-usuario/stock-ledger/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: un memStore compartido implementa todos los puertos de
// persistencia, y memTxRunner simula la transacción con snapshot/rollback.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	// mu serializa las transacciones concurrentes, como lo hace el bloqueo de
	// fila FOR UPDATE en la base real. Lo toma memTxRunner durante todo el callback.
	mu sync.Mutex

	inventories  map[string]*entity.InventoryRecord
	movements    []*entity.StockMovement
	reservations map[string]*entity.StockReservation
	transfers    map[string]*entity.Transfer
	products     map[string]*entity.Product
	stores       map[string]*entity.Store

	// Inyección de fallos por inventario para probar rollback transaccional
	failUpdateQuantity map[string]error
	// Inyección de fallo de lectura del catálogo de tiendas
	failStoreGet error
}

func newMemStore() *memStore {
	return &memStore{
		inventories:        map[string]*entity.InventoryRecord{},
		reservations:       map[string]*entity.StockReservation{},
		transfers:          map[string]*entity.Transfer{},
		products:           map[string]*entity.Product{},
		stores:             map[string]*entity.Store{},
		failUpdateQuantity: map[string]error{},
	}
}

func cloneInventory(r *entity.InventoryRecord) *entity.InventoryRecord {
	if r == nil {
		return nil
	}
	v := *r
	if r.MaximumStock != nil {
		m := *r.MaximumStock
		v.MaximumStock = &m
	}
	if r.ExpiryDate != nil {
		t := *r.ExpiryDate
		v.ExpiryDate = &t
	}
	return &v
}

func cloneReservation(r *entity.StockReservation) *entity.StockReservation {
	if r == nil {
		return nil
	}
	v := *r
	return &v
}

func cloneTransfer(t *entity.Transfer) *entity.Transfer {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	if m == nil {
		return nil
	}
	v := *m
	return &v
}

type memSnapshot struct {
	inventories  map[string]*entity.InventoryRecord
	movements    []*entity.StockMovement
	reservations map[string]*entity.StockReservation
	transfers    map[string]*entity.Transfer
}

func (s *memStore) snapshot() memSnapshot {
	snap := memSnapshot{
		inventories:  make(map[string]*entity.InventoryRecord, len(s.inventories)),
		movements:    make([]*entity.StockMovement, len(s.movements)),
		reservations: make(map[string]*entity.StockReservation, len(s.reservations)),
		transfers:    make(map[string]*entity.Transfer, len(s.transfers)),
	}
	for id, rec := range s.inventories {
		snap.inventories[id] = cloneInventory(rec)
	}
	for i, m := range s.movements {
		snap.movements[i] = cloneMovement(m)
	}
	for id, r := range s.reservations {
		snap.reservations[id] = cloneReservation(r)
	}
	for id, t := range s.transfers {
		snap.transfers[id] = cloneTransfer(t)
	}
	return snap
}

func (s *memStore) restore(snap memSnapshot) {
	s.inventories = snap.inventories
	s.movements = snap.movements
	s.reservations = snap.reservations
	s.transfers = snap.transfers
}

// memTxRunner ejecuta el callback contra el mismo memStore y revierte todos los
// cambios si el callback falla, imitando el commit/rollback real. El mutex del
// store serializa callers concurrentes igual que el FOR UPDATE de la fila.
type memTxRunner struct {
	s *memStore
}

var _ inventory.TxRunner = (*memTxRunner)(nil)

func (tx *memTxRunner) Run(ctx context.Context, fn func(
	invRepo repository.InventoryRepository,
	movRepo repository.MovementRepository,
	resRepo repository.ReservationRepository,
	transferRepo repository.TransferRepository,
) error) error {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	snap := tx.s.snapshot()
	err := fn(
		&memInventoryRepo{s: tx.s},
		&memMovementRepo{s: tx.s},
		&memReservationRepo{s: tx.s},
		&memTransferRepo{s: tx.s},
	)
	if err != nil {
		tx.s.restore(snap)
	}
	return err
}

// ──────────────────────────────────────────────────────────────────────────────
// InventoryRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memInventoryRepo struct {
	s *memStore
}

var _ repository.InventoryRepository = (*memInventoryRepo)(nil)

func (r *memInventoryRepo) GetByID(_ context.Context, id string) (*entity.InventoryRecord, error) {
	return cloneInventory(r.s.inventories[id]), nil
}

func (r *memInventoryRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.InventoryRecord, error) {
	return r.GetByID(ctx, id)
}

func (r *memInventoryRepo) findByProductAndStore(productID, storeID string) *entity.InventoryRecord {
	for _, rec := range r.s.inventories {
		if rec.ProductID == productID && rec.StoreID == storeID {
			return rec
		}
	}
	return nil
}

func (r *memInventoryRepo) GetByProductAndStore(_ context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	return cloneInventory(r.findByProductAndStore(productID, storeID)), nil
}

func (r *memInventoryRepo) GetByProductAndStoreForUpdate(ctx context.Context, productID, storeID string) (*entity.InventoryRecord, error) {
	return r.GetByProductAndStore(ctx, productID, storeID)
}

func (r *memInventoryRepo) Create(_ context.Context, rec *entity.InventoryRecord) error {
	if r.findByProductAndStore(rec.ProductID, rec.StoreID) != nil {
		return domain.ErrDuplicate
	}
	r.s.inventories[rec.ID] = cloneInventory(rec)
	return nil
}

func (r *memInventoryRepo) EnsureExists(_ context.Context, rec *entity.InventoryRecord) error {
	if r.findByProductAndStore(rec.ProductID, rec.StoreID) != nil {
		return nil
	}
	r.s.inventories[rec.ID] = cloneInventory(rec)
	return nil
}

func (r *memInventoryRepo) Upsert(_ context.Context, rec *entity.InventoryRecord) error {
	if existing := r.findByProductAndStore(rec.ProductID, rec.StoreID); existing != nil {
		existing.OnHand = rec.OnHand
		existing.MinimumStock = rec.MinimumStock
		existing.MaximumStock = rec.MaximumStock
		existing.ReorderPoint = rec.ReorderPoint
		existing.ReorderQuantity = rec.ReorderQuantity
		existing.Location = rec.Location
		existing.ExpiryDate = rec.ExpiryDate
		existing.UpdatedAt = time.Now()
		return nil
	}
	r.s.inventories[rec.ID] = cloneInventory(rec)
	return nil
}

func (r *memInventoryRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	if err := r.s.failUpdateQuantity[id]; err != nil {
		return err
	}
	rec, ok := r.s.inventories[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.OnHand = quantity
	rec.UpdatedAt = time.Now()
	return nil
}

func (r *memInventoryRepo) List(_ context.Context, filter repository.InventoryFilter) ([]*entity.InventoryRecord, int, error) {
	var matched []*entity.InventoryRecord
	for _, rec := range r.s.inventories {
		if filter.StoreID != "" && rec.StoreID != filter.StoreID {
			continue
		}
		if filter.Status != "" && rec.Status != filter.Status {
			continue
		}
		if filter.LowStock && rec.OnHand.GreaterThan(rec.ReorderPoint) {
			continue
		}
		if filter.Search != "" {
			p := r.s.products[rec.ProductID]
			needle := strings.ToLower(filter.Search)
			if p == nil || (!strings.Contains(strings.ToLower(p.SKU), needle) &&
				!strings.Contains(strings.ToLower(p.Name), needle)) {
				continue
			}
		}
		matched = append(matched, cloneInventory(rec))
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := len(matched)
	offset := filter.Offset()
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (r *memInventoryRepo) ListPage(_ context.Context, afterID string, limit int) ([]*entity.InventoryRecord, error) {
	var ids []string
	for id := range r.s.inventories {
		if id > afterID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	if len(ids) > limit {
		ids = ids[:limit]
	}
	page := make([]*entity.InventoryRecord, 0, len(ids))
	for _, id := range ids {
		page = append(page, cloneInventory(r.s.inventories[id]))
	}
	return page, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memMovementRepo struct {
	s *memStore
}

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(_ context.Context, movement *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, cloneMovement(movement))
	return nil
}

func (r *memMovementRepo) GetByID(_ context.Context, id string) (*entity.StockMovement, error) {
	for _, m := range r.s.movements {
		if m.ID == id {
			return cloneMovement(m), nil
		}
	}
	return nil, nil
}

func (r *memMovementRepo) ListByInventory(_ context.Context, inventoryID string, limit, offset int) ([]*entity.StockMovement, error) {
	// Más recientes primero: recorre desde el final (orden de inserción)
	var all []*entity.StockMovement
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		if r.s.movements[i].InventoryID == inventoryID {
			all = append(all, cloneMovement(r.s.movements[i]))
		}
	}
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *memMovementRepo) CountByInventory(_ context.Context, inventoryID string) (int, error) {
	count := 0
	for _, m := range r.s.movements {
		if m.InventoryID == inventoryID {
			count++
		}
	}
	return count, nil
}

func (r *memMovementRepo) ListByReference(_ context.Context, reference string) ([]*entity.StockMovement, error) {
	var list []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.Reference == reference {
			list = append(list, cloneMovement(m))
		}
	}
	return list, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// ReservationRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memReservationRepo struct {
	s *memStore
}

var _ repository.ReservationRepository = (*memReservationRepo)(nil)

func (r *memReservationRepo) Create(_ context.Context, reservation *entity.StockReservation) error {
	r.s.reservations[reservation.ID] = cloneReservation(reservation)
	return nil
}

func (r *memReservationRepo) GetByID(_ context.Context, id string) (*entity.StockReservation, error) {
	return cloneReservation(r.s.reservations[id]), nil
}

func (r *memReservationRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.StockReservation, error) {
	return r.GetByID(ctx, id)
}

func (r *memReservationRepo) SumActive(_ context.Context, inventoryID string, now time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, res := range r.s.reservations {
		if res.InventoryID == inventoryID &&
			res.Status == entity.ReservationStatusPending &&
			res.ExpiresAt.After(now) {
			sum = sum.Add(res.Quantity)
		}
	}
	return sum, nil
}

func (r *memReservationRepo) Transition(_ context.Context, id, from, to string, now time.Time) (bool, error) {
	res, ok := r.s.reservations[id]
	if !ok || res.Status != from {
		return false, nil
	}
	res.Status = to
	res.UpdatedAt = now
	return true, nil
}

func (r *memReservationRepo) ExpireDue(_ context.Context, now time.Time) (int64, error) {
	var n int64
	for _, res := range r.s.reservations {
		if res.Status == entity.ReservationStatusPending && now.After(res.ExpiresAt) {
			res.Status = entity.ReservationStatusExpired
			res.UpdatedAt = now
			n++
		}
	}
	return n, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// TransferRepository en memoria
// ──────────────────────────────────────────────────────────────────────────────

type memTransferRepo struct {
	s *memStore
}

var _ repository.TransferRepository = (*memTransferRepo)(nil)

func (r *memTransferRepo) Create(_ context.Context, transfer *entity.Transfer) error {
	r.s.transfers[transfer.ID] = cloneTransfer(transfer)
	return nil
}

func (r *memTransferRepo) GetByID(_ context.Context, id string) (*entity.Transfer, error) {
	return cloneTransfer(r.s.transfers[id]), nil
}

func (r *memTransferRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.Transfer, error) {
	return r.GetByID(ctx, id)
}

func (r *memTransferRepo) Transition(_ context.Context, id, from, to string, now time.Time) (bool, error) {
	tr, ok := r.s.transfers[id]
	if !ok || tr.Status != from {
		return false, nil
	}
	tr.Status = to
	tr.UpdatedAt = now
	return true, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo en memoria y helpers de seed
// ──────────────────────────────────────────────────────────────────────────────

type memProductRepo struct {
	s *memStore
}

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.products[product.ID] = product
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return r.s.products[id], nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range r.s.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if offset >= len(list) {
		return nil, nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}

type memStoreRepo struct {
	s *memStore
}

var _ repository.StoreRepository = (*memStoreRepo)(nil)

func (r *memStoreRepo) Create(_ context.Context, store *entity.Store) error {
	r.s.stores[store.ID] = store
	return nil
}

func (r *memStoreRepo) GetByID(_ context.Context, id string) (*entity.Store, error) {
	if r.s.failStoreGet != nil {
		return nil, r.s.failStoreGet
	}
	return r.s.stores[id], nil
}

func (r *memStoreRepo) List(_ context.Context, limit, offset int) ([]*entity.Store, error) {
	var list []*entity.Store
	for _, st := range r.s.stores {
		list = append(list, st)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	if offset >= len(list) {
		return nil, nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}

// d convierte un literal decimal en decimal.Decimal, fallando el test si es inválido.
func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// seedInventory crea un registro de inventario listo para usar en tests.
func seedInventory(s *memStore, id, productID, storeID, onHand string) *entity.InventoryRecord {
	now := time.Now()
	rec := &entity.InventoryRecord{
		ID:           id,
		ProductID:    productID,
		StoreID:      storeID,
		OnHand:       d(onHand),
		MinimumStock: d("0"),
		ReorderPoint: d("0"),
		Status:       entity.InventoryStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.inventories[id] = rec
	return rec
}

// seedCatalog crea un producto y dos tiendas de prueba.
func seedCatalog(s *memStore) (*entity.Product, *entity.Store, *entity.Store) {
	now := time.Now()
	p := &entity.Product{ID: "prod-1", SKU: "SKU-001", Name: "Tornillo 3mm", CreatedAt: now, UpdatedAt: now}
	a := &entity.Store{ID: "store-a", Name: "Bodega Norte", CreatedAt: now, UpdatedAt: now}
	b := &entity.Store{ID: "store-b", Name: "Bodega Sur", CreatedAt: now, UpdatedAt: now}
	s.products[p.ID] = p
	s.stores[a.ID] = a
	s.stores[b.ID] = b
	return p, a, b
}
