package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	invdto "github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/product/dto"
	storedto "github.com/Guimenn/mobiliai-inventory/internal/store/dto"
)

// memData is shared in-memory state behind the repository fakes, so the
// product and inventory sides observe each other's writes the way they
// would through postgres.
type memData struct {
	mu       sync.Mutex
	stores   map[string]*model.Store
	products map[string]*model.Product
	rows     map[string]*model.StoreInventory
	links    map[string]struct{}
}

func newMemData() *memData {
	return &memData{
		stores:   make(map[string]*model.Store),
		products: make(map[string]*model.Product),
		rows:     make(map[string]*model.StoreInventory),
		links:    make(map[string]struct{}),
	}
}

func key(storeID, productID string) string {
	return storeID + "|" + productID
}

func (d *memData) addStore(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stores[id] = &model.Store{BaseModel: model.BaseModel{ID: id}, Name: "store " + id, IsActive: true}
}

func (d *memData) addProduct(p model.Product) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cp := p
	d.products[p.ID] = &cp
}

func (d *memData) link(storeID, productID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.links[key(storeID, productID)] = struct{}{}
}

func (d *memData) poolOf(productID string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.products[productID].Stock
}

func (d *memData) rowOf(storeID, productID string) *model.StoreInventory {
	d.mu.Lock()
	defer d.mu.Unlock()
	row, ok := d.rows[key(storeID, productID)]
	if !ok {
		return nil
	}
	cp := *row
	return &cp
}

func (d *memData) distributedLocked(productID string) int {
	total := 0
	for _, row := range d.rows {
		if row.ProductID == productID {
			total += row.Quantity
		}
	}
	return total
}

type fakeStoreRepo struct{ data *memData }

func (r *fakeStoreRepo) FindByID(_ context.Context, id string) (*model.Store, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	s, ok := r.data.stores[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (r *fakeStoreRepo) FindAll(_ context.Context, _ *storedto.StoreFilters) ([]model.Store, int, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	var out []model.Store
	for _, s := range r.data.stores {
		out = append(out, *s)
	}
	return out, len(out), nil
}

type fakeProductRepo struct{ data *memData }

func (r *fakeProductRepo) FindByID(_ context.Context, id string) (*model.Product, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	p, ok := r.data.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) Update(_ context.Context, p *model.Product) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	if _, ok := r.data.products[p.ID]; !ok {
		return fmt.Errorf("product %s not found", p.ID)
	}
	cp := *p
	r.data.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindGlobalForCatalog(_ context.Context, f *dto.CatalogFilters) ([]model.Product, int, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	var out []model.Product
	for _, p := range r.data.products {
		if !p.IsActive {
			continue
		}
		if _, linked := r.data.links[key(f.StoreID, p.ID)]; linked {
			continue
		}
		if f.SearchQuery != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(f.SearchQuery)) {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

func (r *fakeProductRepo) IsLinkedToStore(_ context.Context, storeID, productID string) (bool, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	_, ok := r.data.links[key(storeID, productID)]
	return ok, nil
}

func (r *fakeProductRepo) LinkedProductIDs(_ context.Context, storeID string) (map[string]struct{}, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	out := make(map[string]struct{})
	for k := range r.data.links {
		if strings.HasPrefix(k, storeID+"|") {
			out[strings.TrimPrefix(k, storeID+"|")] = struct{}{}
		}
	}
	return out, nil
}

func (r *fakeProductRepo) LinkToStore(_ context.Context, storeID, productID string) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	r.data.links[key(storeID, productID)] = struct{}{}
	return nil
}

type fakeInvRepo struct{ data *memData }

func (r *fakeInvRepo) GetProduct(_ context.Context, productID string) (*model.Product, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	p, ok := r.data.products[productID]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakeInvRepo) GetByStoreProduct(_ context.Context, storeID, productID string) (*model.StoreInventory, error) {
	return r.data.rowOf(storeID, productID), nil
}

func (r *fakeInvRepo) ListByStore(_ context.Context, storeID string) ([]invdto.StoreInventoryRow, error) {
	return nil, nil
}

func (r *fakeInvRepo) ListLowStock(_ context.Context, storeID string) ([]invdto.StoreInventoryRow, error) {
	return nil, nil
}

func (r *fakeInvRepo) DistributedByProduct(_ context.Context, productID string) (int, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	return r.data.distributedLocked(productID), nil
}

func (r *fakeInvRepo) FindProductsWithoutStoreRow(_ context.Context, storeID, search string) ([]invdto.AvailableProductRow, error) {
	return nil, nil
}

func (r *fakeInvRepo) Allocate(_ context.Context, inv *model.StoreInventory, poolDelta int) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	return r.writeLocked(inv, poolDelta, false)
}

func (r *fakeInvRepo) Insert(_ context.Context, inv *model.StoreInventory, poolDelta int) error {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	if _, ok := r.data.rows[key(inv.StoreID, inv.ProductID)]; ok {
		return apperrors.Conflict("product %s already allocated to store %s", inv.ProductID, inv.StoreID)
	}
	return r.writeLocked(inv, poolDelta, true)
}

func (r *fakeInvRepo) writeLocked(inv *model.StoreInventory, poolDelta int, insert bool) error {
	p, ok := r.data.products[inv.ProductID]
	if !ok {
		return fmt.Errorf("product %s not found", inv.ProductID)
	}
	if poolDelta != 0 && p.Stock-poolDelta < 0 {
		return fmt.Errorf("pool underflow for product %s", inv.ProductID)
	}
	cp := *inv
	r.data.rows[key(inv.StoreID, inv.ProductID)] = &cp
	p.Stock -= poolDelta
	return nil
}

func (r *fakeInvRepo) Remove(_ context.Context, storeID, productID string) (int, bool, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	k := key(storeID, productID)
	row, ok := r.data.rows[k]
	if !ok {
		return 0, false, nil
	}
	delete(r.data.rows, k)
	if p, ok := r.data.products[productID]; ok {
		p.Stock += row.Quantity
	}
	return row.Quantity, true, nil
}

func (r *fakeInvRepo) DeductQuantity(_ context.Context, storeID, productID string, qty int) (bool, error) {
	r.data.mu.Lock()
	defer r.data.mu.Unlock()
	row, ok := r.data.rows[key(storeID, productID)]
	if !ok {
		return false, nil
	}
	row.Quantity -= qty
	if row.Quantity < 0 {
		row.Quantity = 0
	}
	return true, nil
}

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
