package dto

import (
	"time"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
)

// SaveCatalogItemRequest defines the data for creating or updating a
// catalog description. Creation never dedupes: the catalog is a suggestion
// list and an identical description may be inserted twice.
type SaveCatalogItemRequest struct {
	Description string `json:"description" binding:"required,min=1,max=255"`
}

// CatalogItemResponse defines the data returned for a catalog item.
type CatalogItemResponse struct {
	CatalogItemID int64     `json:"id"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"createdAt"`
}

// ListCatalogItemsResponse is the envelope for catalog listings.
type ListCatalogItemsResponse struct {
	Data       []CatalogItemResponse `json:"data"`
	Pagination Pagination            `json:"pagination"`
}

// ToCatalogItemResponse converts a domain.CatalogItem to its response DTO.
func ToCatalogItemResponse(item *domain.CatalogItem) CatalogItemResponse {
	return CatalogItemResponse{
		CatalogItemID: item.CatalogItemID,
		Description:   item.Description,
		CreatedAt:     item.CreatedAt,
	}
}

// ToCatalogItemResponses converts a slice of catalog items for listings.
func ToCatalogItemResponses(items []domain.CatalogItem) []CatalogItemResponse {
	responses := make([]CatalogItemResponse, len(items))
	for i := range items {
		responses[i] = ToCatalogItemResponse(&items[i])
	}
	return responses
}
