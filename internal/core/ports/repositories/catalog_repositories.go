package repositories

import (
	"context"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
)

// CatalogRepositoryFacade defines persistence operations for the reusable
// line-item description catalog.
type CatalogRepositoryFacade interface {
	// SaveCatalogItem inserts unconditionally; duplicate descriptions are
	// permitted.
	SaveCatalogItem(ctx context.Context, item *domain.CatalogItem) error

	// FindCatalogItemByID returns apperrors.ErrNotFound when no row exists.
	FindCatalogItemByID(ctx context.Context, catalogItemID int64) (*domain.CatalogItem, error)

	// UpdateCatalogItem overwrites the description.
	UpdateCatalogItem(ctx context.Context, item domain.CatalogItem) error

	// DeleteCatalogItem removes the row.
	DeleteCatalogItem(ctx context.Context, catalogItemID int64) error

	// ListCatalogItems returns a page filtered by case-insensitive
	// substring match on description, plus the total matching count.
	ListCatalogItems(ctx context.Context, search string, limit, offset int) ([]domain.CatalogItem, int64, error)
}
