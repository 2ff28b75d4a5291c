package dto

// UpdateStoreInventoryInput mutates one (store, product) allocation. Nil
// fields are left unchanged; on first edit missing quantity/minStock are
// seeded from the product's scalar stock/minStock.
type UpdateStoreInventoryInput struct {
	StoreID   string
	ProductID string
	Quantity  *int
	MinStock  *int
	MaxStock  *int
	Location  *string
	Notes     *string
}

// AddProductToStoreInput creates a first-time allocation; the row must not
// exist yet.
type AddProductToStoreInput struct {
	StoreID         string
	ProductID       string
	InitialQuantity int
	MinStock        int
}

type SaleItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
