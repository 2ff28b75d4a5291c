package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/Guimenn/mobiliai-inventory/internal/apperrors"
	"github.com/Guimenn/mobiliai-inventory/internal/inventory"
	invdto "github.com/Guimenn/mobiliai-inventory/internal/inventory/dto"
	"github.com/Guimenn/mobiliai-inventory/internal/model"
	"github.com/Guimenn/mobiliai-inventory/internal/product"
	"github.com/Guimenn/mobiliai-inventory/internal/product/dto"
	"github.com/Guimenn/mobiliai-inventory/internal/store"
	"github.com/Guimenn/mobiliai-inventory/pkg/cache"
	"github.com/Guimenn/mobiliai-inventory/pkg/search"
	"go.uber.org/zap"
)

const (
	catalogCacheTTL  = 5 * time.Minute
	productIndexName = "products"
)

type productUseCase struct {
	repo    product.Repository
	stores  store.Repository
	invRepo inventory.Repository
	invUC   inventory.UseCase
	cache   *cache.RedisClient
	es      *search.Client
	logger  *zap.Logger
}

func NewProductUseCase(
	repo product.Repository,
	stores store.Repository,
	invRepo inventory.Repository,
	invUC inventory.UseCase,
	cacheClient *cache.RedisClient,
	es *search.Client,
	log *zap.Logger,
) product.UseCase {
	return &productUseCase{
		repo:    repo,
		stores:  stores,
		invRepo: invRepo,
		invUC:   invUC,
		cache:   cacheClient,
		es:      es,
		logger:  log,
	}
}

func (uc *productUseCase) GetCatalogProducts(ctx context.Context, filters *dto.CatalogFilters) ([]model.Product, int, error) {
	if err := uc.requireStore(ctx, filters.StoreID); err != nil {
		return nil, 0, err
	}

	// Catalog listings carry no stock values, so caching them does not
	// violate pool freshness.
	cacheKey, err := uc.catalogCacheKey(filters)
	if err == nil && uc.cache != nil {
		if val, err := uc.cache.Client.Get(ctx, cacheKey).Result(); err == nil {
			var result struct {
				Products []model.Product
				Count    int
			}
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	products, count, err := uc.searchCatalog(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if uc.cache != nil && cacheKey != "" {
		cacheData := struct {
			Products []model.Product
			Count    int
		}{Products: products, Count: count}
		if data, err := json.Marshal(cacheData); err == nil {
			uc.cache.Client.Set(ctx, cacheKey, data, catalogCacheTTL)
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchCatalog(ctx context.Context, filters *dto.CatalogFilters) ([]model.Product, int, error) {
	if filters.SearchQuery != "" && uc.es != nil {
		products, count, err := uc.searchCatalogElastic(ctx, filters)
		if err == nil {
			return products, count, nil
		}
		uc.logger.Error("ES catalog search failed, falling back to DB", zap.Error(err))
	}
	return uc.repo.FindGlobalForCatalog(ctx, filters)
}

func (uc *productUseCase) searchCatalogElastic(ctx context.Context, filters *dto.CatalogFilters) ([]model.Product, int, error) {
	linked, err := uc.repo.LinkedProductIDs(ctx, filters.StoreID)
	if err != nil {
		return nil, 0, err
	}

	res, err := uc.es.Search(ctx, productIndexName, buildCatalogQuery(filters, linked))
	if err != nil {
		return nil, 0, err
	}

	var products []model.Product
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err != nil {
			continue
		}
		products = append(products, p)
	}
	return products, res.Hits.Total.Value, nil
}

// buildCatalogQuery excludes linked and inactive products inside the query,
// so pages come back full and the hit total matches what the store can see.
func buildCatalogQuery(filters *dto.CatalogFilters, linked map[string]struct{}) map[string]interface{} {
	boolQuery := map[string]interface{}{
		"must": map[string]interface{}{
			"query_string": map[string]interface{}{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "sku", "barcode", "description"},
			},
		},
		"filter": map[string]interface{}{
			"term": map[string]interface{}{"is_active": true},
		},
	}

	if len(linked) > 0 {
		ids := make([]string, 0, len(linked))
		for id := range linked {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		boolQuery["must_not"] = map[string]interface{}{
			"ids": map[string]interface{}{"values": ids},
		}
	}

	q := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"from":  (filters.Page - 1) * filters.PageSize,
	}
	if filters.PageSize > 0 {
		q["size"] = filters.PageSize
	}
	return q
}

func (uc *productUseCase) LinkProductToStore(ctx context.Context, storeID, productID string) error {
	if err := uc.requireStore(ctx, storeID); err != nil {
		return err
	}

	p, err := uc.repo.FindByID(ctx, productID)
	if err != nil {
		return err
	}
	if p == nil {
		return apperrors.NotFound("product %s", productID)
	}

	if err := uc.repo.LinkToStore(ctx, storeID, productID); err != nil {
		return err
	}

	go uc.invalidateCatalogCache(context.Background(), storeID)
	return nil
}

// UpdateManagedProduct reconciles a manager's stock edit against the
// per-store model. Stock mutations are redirected to the store inventory
// row whenever the manager's store is not the product's home store; catalog
// fields pass through to the product row unchanged.
func (uc *productUseCase) UpdateManagedProduct(ctx context.Context, input *dto.UpdateManagedProductInput) (*dto.ManagedProductView, error) {
	patch := &input.Patch
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, apperrors.Validation("stock must not be negative")
	}
	if patch.MinStock != nil && *patch.MinStock < 0 {
		return nil, apperrors.Validation("minStock must not be negative")
	}

	if err := uc.requireStore(ctx, input.ManagerStoreID); err != nil {
		return nil, err
	}

	p, err := uc.repo.FindByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, apperrors.NotFound("product %s", input.ProductID)
	}

	isHomeStore := p.StoreID != nil && *p.StoreID == input.ManagerStoreID

	if isHomeStore {
		return uc.updateHomeProduct(ctx, p, patch)
	}
	return uc.updateSharedProduct(ctx, p, input.ManagerStoreID, patch)
}

// updateHomeProduct applies the patch directly to the product row; the
// scalar stock field is still authoritative for the home store.
func (uc *productUseCase) updateHomeProduct(ctx context.Context, p *model.Product, patch *dto.ManagedProductPatch) (*dto.ManagedProductView, error) {
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.MinStock != nil {
		p.MinStock = *patch.MinStock
	}
	applyCatalogFields(p, patch)
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	uc.afterProductWrite(p)

	return &dto.ManagedProductView{Product: *p, AvailableViaStoreInventory: false}, nil
}

// updateSharedProduct redirects the stock mutation to the store inventory
// row, creating it lazily when the product is reachable via the store's
// catalog but has no row yet.
func (uc *productUseCase) updateSharedProduct(ctx context.Context, p *model.Product, storeID string, patch *dto.ManagedProductPatch) (*dto.ManagedProductView, error) {
	existing, err := uc.invRepo.GetByStoreProduct(ctx, storeID, p.ID)
	if err != nil {
		return nil, err
	}

	quantity := patch.Stock
	minStock := patch.MinStock
	if existing == nil {
		linked, err := uc.repo.IsLinkedToStore(ctx, storeID, p.ID)
		if err != nil {
			return nil, err
		}
		if !linked {
			return nil, apperrors.Forbidden("product %s is not available to store %s", p.ID, storeID)
		}

		// Lazy creation seeds from the request, defaulting to zero; the
		// upsert underneath absorbs a concurrent first edit.
		if quantity == nil {
			quantity = intPtr(0)
		}
		if minStock == nil {
			minStock = intPtr(0)
		}
	}

	entry, err := uc.invUC.UpdateStoreInventory(ctx, &invdto.UpdateStoreInventoryInput{
		StoreID:   storeID,
		ProductID: p.ID,
		Quantity:  quantity,
		MinStock:  minStock,
	})
	if err != nil {
		return nil, err
	}

	if patch.HasCatalogFields() {
		// The allocation above moved pool units; refetch so the full row
		// update does not write back a stale stock value.
		p, err = uc.repo.FindByID(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, apperrors.NotFound("product %s", entry.ProductID)
		}
		applyCatalogFields(p, patch)
		p.UpdatedAt = time.Now()
		if err := uc.repo.Update(ctx, p); err != nil {
			return nil, err
		}
		uc.afterProductWrite(p)
	}

	// Callers observe a consistent stock value regardless of where it is
	// stored.
	view := &dto.ManagedProductView{Product: *p, AvailableViaStoreInventory: true}
	view.Stock = entry.Quantity
	view.MinStock = entry.MinStock
	return view, nil
}

func (uc *productUseCase) requireStore(ctx context.Context, storeID string) error {
	s, err := uc.stores.FindByID(ctx, storeID)
	if err != nil {
		return err
	}
	if s == nil {
		return apperrors.NotFound("store %s", storeID)
	}
	return nil
}

func (uc *productUseCase) afterProductWrite(p *model.Product) {
	go uc.syncToElastic(context.Background(), p)
	if p.StoreID != nil {
		go uc.invalidateCatalogCache(context.Background(), *p.StoreID)
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, p *model.Product) {
	if uc.es == nil {
		return
	}

	mapping := `{
		"mappings": {
			"properties": {
				"name": { "type": "text" },
				"description": { "type": "text" },
				"sku": { "type": "keyword" },
				"barcode": { "type": "keyword" },
				"price": { "type": "double" },
				"is_active": { "type": "boolean" },
				"created_at": { "type": "date" }
			}
		}
	}`
	_ = uc.es.CreateIndex(ctx, productIndexName, mapping)

	if err := uc.es.Index(ctx, productIndexName, p.ID, p); err != nil {
		uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
	}
}

func (uc *productUseCase) catalogCacheKey(filters *dto.CatalogFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("catalog:list:%s:%x", filters.StoreID, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateCatalogCache(ctx context.Context, storeID string) {
	if uc.cache == nil {
		return
	}
	pattern := fmt.Sprintf("catalog:list:%s:*", storeID)
	keys, err := uc.cache.Client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		uc.cache.Client.Del(ctx, keys...)
	}
}

func applyCatalogFields(p *model.Product, patch *dto.ManagedProductPatch) {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.ImageURL != nil {
		p.ImageURL = patch.ImageURL
	}
	if patch.IsActive != nil {
		p.IsActive = *patch.IsActive
	}
}

func intPtr(v int) *int { return &v }
