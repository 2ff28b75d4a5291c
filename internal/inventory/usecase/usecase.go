package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/store"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	lockTTL      = 5 * time.Second
	lockAttempts = 3
	lockBackoff  = 100 * time.Millisecond
)

type inventoryUseCase struct {
	repo   inventory.Repository
	stores store.Repository
	locker inventory.Locker
	logger *zap.Logger
}

func NewInventoryUseCase(repo inventory.Repository, stores store.Repository, locker inventory.Locker, log *zap.Logger) inventory.UseCase {
	return &inventoryUseCase{
		repo:   repo,
		stores: stores,
		locker: locker,
		logger: log,
	}
}

func (uc *inventoryUseCase) GetStoreInventory(ctx context.Context, storeID string) ([]dto.InventoryEntry, error) {
	if err := uc.requireStore(ctx, storeID); err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return mapRows(rows), nil
}

func (uc *inventoryUseCase) GetLowStock(ctx context.Context, storeID string) ([]dto.InventoryEntry, error) {
	if err := uc.requireStore(ctx, storeID); err != nil {
		return nil, err
	}

	rows, err := uc.repo.ListLowStock(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return mapRows(rows), nil
}

func (uc *inventoryUseCase) GetAvailableProducts(ctx context.Context, storeID, search string) ([]dto.AvailableProduct, error) {
	if err := uc.requireStore(ctx, storeID); err != nil {
		return nil, err
	}

	rows, err := uc.repo.FindProductsWithoutStoreRow(ctx, storeID, search)
	if err != nil {
		return nil, err
	}

	items := make([]dto.AvailableProduct, len(rows))
	for i, row := range rows {
		items[i] = dto.AvailableProduct{
			Product:          row.Product,
			AvailableStock:   row.Product.Stock,
			DistributedStock: row.DistributedStock,
		}
	}
	return items, nil
}

func (uc *inventoryUseCase) UpdateStoreInventory(ctx context.Context, input *dto.UpdateStoreInventoryInput) (*dto.InventoryEntry, error) {
	if err := validateNonNegative(input.Quantity, "quantity"); err != nil {
		return nil, err
	}
	if err := validateNonNegative(input.MinStock, "minStock"); err != nil {
		return nil, err
	}
	if err := validateNonNegative(input.MaxStock, "maxStock"); err != nil {
		return nil, err
	}

	if err := uc.requireStore(ctx, input.StoreID); err != nil {
		return nil, err
	}
	product, err := uc.requireProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.acquireLock(ctx, input.StoreID, input.ProductID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := uc.repo.GetByStoreProduct(ctx, input.StoreID, input.ProductID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var (
		inv       *model.StoreInventory
		poolDelta int
		clamped   bool
		created   bool
	)

	if existing == nil {
		// Lazy first edit: seed missing values from the product's scalar
		// stock/minStock, then treat the seed as an allocation request.
		requested := product.Stock
		if input.Quantity != nil {
			requested = *input.Quantity
		}
		minStock := product.MinStock
		if input.MinStock != nil {
			minStock = *input.MinStock
		}

		var applied int
		applied, clamped = clampQuantity(requested, product.Stock, input.MaxStock)

		inv = &model.StoreInventory{
			BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
			StoreID:   input.StoreID,
			ProductID: input.ProductID,
			Quantity:  applied,
			MinStock:  minStock,
			MaxStock:  input.MaxStock,
			Location:  input.Location,
			Notes:     input.Notes,
		}
		poolDelta = applied
		created = true
	} else {
		requested := existing.Quantity
		if input.Quantity != nil {
			requested = *input.Quantity
		}
		maxStock := existing.MaxStock
		if input.MaxStock != nil {
			maxStock = input.MaxStock
		}

		var applied int
		applied, clamped = clampQuantity(requested, product.Stock+existing.Quantity, maxStock)

		inv = existing
		inv.Quantity = applied
		inv.MaxStock = maxStock
		if input.MinStock != nil {
			inv.MinStock = *input.MinStock
		}
		if input.Location != nil {
			inv.Location = input.Location
		}
		if input.Notes != nil {
			inv.Notes = input.Notes
		}
		inv.UpdatedAt = now
		poolDelta = applied - existing.Quantity
	}

	if err := uc.repo.Allocate(ctx, inv, poolDelta); err != nil {
		return nil, err
	}

	if clamped {
		uc.logger.Info("allocation request clamped to pool",
			zap.String("store_id", input.StoreID),
			zap.String("product_id", input.ProductID),
			zap.Int("applied", inv.Quantity),
		)
	}

	return uc.buildEntry(ctx, inv, product, poolDelta, clamped, created)
}

func (uc *inventoryUseCase) AddProductToStore(ctx context.Context, input *dto.AddProductToStoreInput) (*dto.InventoryEntry, error) {
	if input.InitialQuantity < 0 {
		return nil, apperrors.Validation("initialQuantity must not be negative")
	}
	if input.MinStock < 0 {
		return nil, apperrors.Validation("minStock must not be negative")
	}

	if err := uc.requireStore(ctx, input.StoreID); err != nil {
		return nil, err
	}
	product, err := uc.requireProduct(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	unlock, err := uc.acquireLock(ctx, input.StoreID, input.ProductID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	applied, clamped := clampQuantity(input.InitialQuantity, product.Stock, nil)

	now := time.Now()
	inv := &model.StoreInventory{
		BaseModel: model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		StoreID:   input.StoreID,
		ProductID: input.ProductID,
		Quantity:  applied,
		MinStock:  input.MinStock,
	}

	if err := uc.repo.Insert(ctx, inv, applied); err != nil {
		return nil, err
	}

	return uc.buildEntry(ctx, inv, product, applied, clamped, true)
}

func (uc *inventoryUseCase) RemoveProductFromStore(ctx context.Context, storeID, productID string) error {
	if err := uc.requireStore(ctx, storeID); err != nil {
		return err
	}
	if _, err := uc.requireProduct(ctx, productID); err != nil {
		return err
	}

	unlock, err := uc.acquireLock(ctx, storeID, productID)
	if err != nil {
		return err
	}
	defer unlock()

	released, existed, err := uc.repo.Remove(ctx, storeID, productID)
	if err != nil {
		return err
	}
	if existed {
		uc.logger.Info("removed product from store",
			zap.String("store_id", storeID),
			zap.String("product_id", productID),
			zap.Int("released", released),
		)
	}
	return nil
}

func (uc *inventoryUseCase) RecordSale(ctx context.Context, storeID string, items []dto.SaleItem) error {
	for _, item := range items {
		if item.Quantity <= 0 {
			continue
		}
		deducted, err := uc.repo.DeductQuantity(ctx, storeID, item.ProductID, item.Quantity)
		if err != nil {
			return fmt.Errorf("failed to deduct sale for product %s: %w", item.ProductID, err)
		}
		if !deducted {
			uc.logger.Warn("sale for product without store allocation",
				zap.String("store_id", storeID),
				zap.String("product_id", item.ProductID),
			)
		}
	}
	return nil
}

func (uc *inventoryUseCase) requireStore(ctx context.Context, storeID string) error {
	s, err := uc.stores.FindByID(ctx, storeID)
	if err != nil {
		return err
	}
	if s == nil {
		return apperrors.NotFound("store %s", storeID)
	}
	return nil
}

func (uc *inventoryUseCase) requireProduct(ctx context.Context, productID string) (*model.Product, error) {
	p, err := uc.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product %s", productID)
	}
	return p, nil
}

// acquireLock serializes mutations per (store, product) pair. The database
// transaction stays the correctness backstop; the lock just avoids churning
// on conflicting upserts.
func (uc *inventoryUseCase) acquireLock(ctx context.Context, storeID, productID string) (func(), error) {
	key := fmt.Sprintf("lock:store-inventory:%s:%s", storeID, productID)
	value := uuid.New().String()

	for i := 0; i < lockAttempts; i++ {
		ok, err := uc.locker.AcquireLock(ctx, key, value, lockTTL)
		if err != nil {
			uc.logger.Error("failed to acquire inventory lock", zap.Error(err))
		}
		if ok {
			return func() {
				if err := uc.locker.ReleaseLock(ctx, key, value); err != nil {
					uc.logger.Error("failed to release inventory lock", zap.Error(err))
				}
			}, nil
		}
		time.Sleep(lockBackoff)
	}

	return nil, errors.New("inventory busy, please try again later")
}

func (uc *inventoryUseCase) buildEntry(ctx context.Context, inv *model.StoreInventory, product *model.Product, poolDelta int, clamped, created bool) (*dto.InventoryEntry, error) {
	totalDistributed, err := uc.repo.DistributedByProduct(ctx, inv.ProductID)
	if err != nil {
		return nil, err
	}
	pool := product.Stock - poolDelta

	return &dto.InventoryEntry{
		StoreInventory: *inv,
		Product: dto.ProductSummary{
			ID:       product.ID,
			Name:     product.Name,
			SKU:      product.SKU,
			Barcode:  product.Barcode,
			Price:    product.Price,
			ImageURL: product.ImageURL,
		},
		StockInfo: stockInfoFor(pool, totalDistributed, inv.Quantity),
		Clamped:   clamped,
		Created:   created,
	}, nil
}

func mapRows(rows []dto.StoreInventoryRow) []dto.InventoryEntry {
	entries := make([]dto.InventoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = dto.InventoryEntry{
			StoreInventory: row.StoreInventory,
			Product: dto.ProductSummary{
				ID:       row.ProductID,
				Name:     row.ProductName,
				SKU:      row.ProductSKU,
				Barcode:  row.ProductBarcode,
				Price:    row.ProductPrice,
				ImageURL: row.ProductImageURL,
			},
			StockInfo: stockInfoFor(row.ProductStock, row.TotalDistributed, row.Quantity),
		}
	}
	return entries
}

func validateNonNegative(v *int, field string) error {
	if v != nil && *v < 0 {
		return apperrors.Validation("%s must not be negative", field)
	}
	return nil
}
