package model

// Product is a global catalog row. StoreID is the legacy "home store"; nil
// for shared catalog items with no single owner. Stock is the undistributed
// pool once any StoreInventory row exists for the product.
type Product struct {
	BaseModel
	StoreID     *string `db:"store_id" json:"store_id"`
	SKU         string  `db:"sku" json:"sku"`
	Barcode     *string `db:"barcode" json:"barcode"`
	Name        string  `db:"name" json:"name"`
	Description *string `db:"description" json:"description"`
	Price       float64 `db:"price" json:"price"`
	ImageURL    *string `db:"image_url" json:"image_url"`
	Stock       int     `db:"stock" json:"stock"`
	MinStock    int     `db:"min_stock" json:"min_stock"`
	IsActive    bool    `db:"is_active" json:"is_active"`
}

// StoreCatalogEntry links a global product into a store's catalog without
// allocating stock.
type StoreCatalogEntry struct {
	StoreID   string `db:"store_id" json:"store_id"`
	ProductID string `db:"product_id" json:"product_id"`
}
