package dto

type StoreFilters struct {
	SearchQuery string
	IsActive    *bool
	Page        int
	PageSize    int
}
