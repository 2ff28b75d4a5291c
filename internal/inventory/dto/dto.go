package dto

import "github.com/Guimenn/mobiliai-inventory/internal/model"

// StockInfo is the derived view of where a product's stock lives, computed
// fresh on every read.
type StockInfo struct {
	TotalStock               int `json:"total_stock"`
	TotalDistributed         int `json:"total_distributed"`
	DistributedInOtherStores int `json:"distributed_in_other_stores"`
	AvailableForThisStore    int `json:"available_for_this_store"`
}

type ProductSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Barcode  *string `json:"barcode"`
	Price    float64 `json:"price"`
	ImageURL *string `json:"image_url"`
}

// InventoryEntry is a store inventory row enriched with catalog fields and
// stock accounting. Clamped and Created describe what the write did; they
// are for metrics and tests, not part of the response body.
type InventoryEntry struct {
	model.StoreInventory
	Product   ProductSummary `json:"product"`
	StockInfo StockInfo      `json:"stock_info"`
	Clamped   bool           `json:"-"`
	Created   bool           `json:"-"`
}

// AvailableProduct is a catalog product not yet allocated to the requesting
// store. Products with a zero available pool are included; hiding them is a
// UI concern.
type AvailableProduct struct {
	model.Product
	AvailableStock   int `json:"available_stock"`
	DistributedStock int `json:"distributed_stock"`
}

// StoreInventoryRow is the repository scan target for entries joined with
// their product.
type StoreInventoryRow struct {
	model.StoreInventory
	ProductName      string  `db:"product_name"`
	ProductSKU       string  `db:"product_sku"`
	ProductBarcode   *string `db:"product_barcode"`
	ProductPrice     float64 `db:"product_price"`
	ProductImageURL  *string `db:"product_image_url"`
	ProductStock     int     `db:"product_stock"`
	TotalDistributed int     `db:"total_distributed"`
}

// AvailableProductRow is the repository scan target for unallocated catalog
// products.
type AvailableProductRow struct {
	model.Product
	DistributedStock int `db:"distributed_stock"`
}
