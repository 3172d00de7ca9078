package services

import (
	"context"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
)

// CatalogSvcFacade defines the business operations on the line-item
// description catalog.
type CatalogSvcFacade interface {
	// CreateCatalogItem inserts unconditionally, duplicates included.
	CreateCatalogItem(ctx context.Context, req dto.SaveCatalogItemRequest) (*domain.CatalogItem, error)
	GetCatalogItemByID(ctx context.Context, catalogItemID int64) (*domain.CatalogItem, error)
	UpdateCatalogItem(ctx context.Context, catalogItemID int64, req dto.SaveCatalogItemRequest) (*domain.CatalogItem, error)
	DeleteCatalogItem(ctx context.Context, catalogItemID int64) error
	ListCatalogItems(ctx context.Context, params dto.ListParams) ([]domain.CatalogItem, int64, error)
}
