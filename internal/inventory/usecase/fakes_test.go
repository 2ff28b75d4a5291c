package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/Guimenn/mobiliai-inventory/internal/model"
	storedto "github.com/Guimenn/mobiliai-inventory/internal/store/dto"
)

// fakeRepo is an in-memory implementation of the ledger with the same
// transactional semantics as the postgres repository: every allocation
// write moves poolDelta out of the product pool atomically.
type fakeRepo struct {
	mu       sync.Mutex
	products map[string]*model.Product
	rows     map[string]*model.StoreInventory
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		products: make(map[string]*model.Product),
		rows:     make(map[string]*model.StoreInventory),
	}
}

func rowKey(storeID, productID string) string {
	return storeID + "|" + productID
}

func (r *fakeRepo) addProduct(p model.Product) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := p
	r.products[p.ID] = &cp
}

func (r *fakeRepo) GetProduct(_ context.Context, productID string) (*model.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[productID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeRepo) GetByStoreProduct(_ context.Context, storeID, productID string) (*model.StoreInventory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[rowKey(storeID, productID)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *fakeRepo) ListByStore(_ context.Context, storeID string) ([]dto.StoreInventoryRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dto.StoreInventoryRow
	for _, row := range r.rows {
		if row.StoreID != storeID {
			continue
		}
		p := r.products[row.ProductID]
		out = append(out, dto.StoreInventoryRow{
			StoreInventory:   *row,
			ProductName:      p.Name,
			ProductSKU:       p.SKU,
			ProductPrice:     p.Price,
			ProductStock:     p.Stock,
			TotalDistributed: r.distributedLocked(row.ProductID),
		})
	}
	return out, nil
}

func (r *fakeRepo) ListLowStock(ctx context.Context, storeID string) ([]dto.StoreInventoryRow, error) {
	rows, err := r.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	var out []dto.StoreInventoryRow
	for _, row := range rows {
		if row.Quantity <= row.MinStock {
			out = append(out, row)
		}
	}
	return out, nil
}

func (r *fakeRepo) DistributedByProduct(_ context.Context, productID string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.distributedLocked(productID), nil
}

func (r *fakeRepo) distributedLocked(productID string) int {
	total := 0
	for _, row := range r.rows {
		if row.ProductID == productID {
			total += row.Quantity
		}
	}
	return total
}

func (r *fakeRepo) FindProductsWithoutStoreRow(_ context.Context, storeID, search string) ([]dto.AvailableProductRow, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dto.AvailableProductRow
	for _, p := range r.products {
		if _, ok := r.rows[rowKey(storeID, p.ID)]; ok {
			continue
		}
		out = append(out, dto.AvailableProductRow{
			Product:          *p,
			DistributedStock: r.distributedLocked(p.ID),
		})
	}
	return out, nil
}

func (r *fakeRepo) Allocate(_ context.Context, inv *model.StoreInventory, poolDelta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeLocked(inv, poolDelta, false)
}

func (r *fakeRepo) Insert(_ context.Context, inv *model.StoreInventory, poolDelta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[rowKey(inv.StoreID, inv.ProductID)]; ok {
		return apperrors.Conflict("product %s already allocated to store %s", inv.ProductID, inv.StoreID)
	}
	return r.writeLocked(inv, poolDelta, true)
}

func (r *fakeRepo) writeLocked(inv *model.StoreInventory, poolDelta int, insert bool) error {
	p, ok := r.products[inv.ProductID]
	if !ok {
		return fmt.Errorf("product %s not found", inv.ProductID)
	}
	if poolDelta != 0 && p.Stock-poolDelta < 0 {
		return fmt.Errorf("pool underflow for product %s", inv.ProductID)
	}

	key := rowKey(inv.StoreID, inv.ProductID)
	if existing, ok := r.rows[key]; ok && !insert {
		// Mirror ON CONFLICT DO UPDATE: the stored row keeps its identity.
		inv.ID = existing.ID
		inv.CreatedAt = existing.CreatedAt
	}
	cp := *inv
	r.rows[key] = &cp
	p.Stock -= poolDelta
	return nil
}

func (r *fakeRepo) Remove(_ context.Context, storeID, productID string) (int, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := rowKey(storeID, productID)
	row, ok := r.rows[key]
	if !ok {
		return 0, false, nil
	}
	delete(r.rows, key)
	if p, ok := r.products[productID]; ok {
		p.Stock += row.Quantity
	}
	return row.Quantity, true, nil
}

func (r *fakeRepo) DeductQuantity(_ context.Context, storeID, productID string, qty int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[rowKey(storeID, productID)]
	if !ok {
		return false, nil
	}
	row.Quantity -= qty
	if row.Quantity < 0 {
		row.Quantity = 0
	}
	return true, nil
}

// poolOf reads the current undistributed pool for assertions.
func (r *fakeRepo) poolOf(productID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.products[productID].Stock
}

func (r *fakeRepo) rowCount(productID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, row := range r.rows {
		if row.ProductID == productID {
			n++
		}
	}
	return n
}

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[string]*model.Store
}

func newFakeStoreRepo(ids ...string) *fakeStoreRepo {
	r := &fakeStoreRepo{stores: make(map[string]*model.Store)}
	for _, id := range ids {
		r.stores[id] = &model.Store{BaseModel: model.BaseModel{ID: id}, Name: "store " + id, IsActive: true}
	}
	return r
}

func (r *fakeStoreRepo) FindByID(_ context.Context, id string) (*model.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoreRepo) FindAll(_ context.Context, _ *storedto.StoreFilters) ([]model.Store, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Store
	for _, s := range r.stores {
		out = append(out, *s)
	}
	return out, len(out), nil
}

// fakeLocker has SetNX semantics over a plain map.
type fakeLocker struct {
	mu    sync.Mutex
	locks map[string]string
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{locks: make(map[string]string)}
}

func (l *fakeLocker) AcquireLock(_ context.Context, key, value string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, held := l.locks[key]; held {
		return false, nil
	}
	l.locks[key] = value
	return true, nil
}

func (l *fakeLocker) ReleaseLock(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks[key] == value {
		delete(l.locks, key)
	}
	return nil
}
