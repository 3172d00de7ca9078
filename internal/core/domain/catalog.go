package domain

import "time"

// CatalogItem is a reusable line-item description suggestion. It is
// decoupled from LineItem: the catalog is a suggestion list, not a
// normalized dimension table, so duplicate descriptions are permitted.
type CatalogItem struct {
	CatalogItemID int64     `json:"id" db:"catalog_item_id"`
	Description   string    `json:"description" db:"description"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
