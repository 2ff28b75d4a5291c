package dto

import "github.com/Guimenn/mobiliai-inventory/internal/model"

// ManagedProductView is the product shape returned to managers. Stock always
// reflects the authoritative value post-write regardless of whether it lives
// on the product row or a store inventory row;
// AvailableViaStoreInventory records which path was taken.
type ManagedProductView struct {
	model.Product
	AvailableViaStoreInventory bool `json:"available_via_store_inventory"`
}

type CatalogFilters struct {
	StoreID     string
	SearchQuery string
	Page        int
	PageSize    int
}
