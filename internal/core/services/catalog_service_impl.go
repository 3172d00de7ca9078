package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/mwaqasali/garage_invoice_app/internal/apperrors"
	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	portsrepo "github.com/mwaqasali/garage_invoice_app/internal/core/ports/repositories"
	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
	"github.com/mwaqasali/garage_invoice_app/internal/platform/cache"
)

// catalogServiceImpl implements the CatalogSvcFacade interface
type catalogServiceImpl struct {
	BaseService
	catalogRepo portsrepo.CatalogRepositoryFacade
	listCache   cache.ListCache
}

// CatalogServiceOption is a functional option for configuring the catalog
// service
type CatalogServiceOption func(*catalogServiceImpl)

// WithCatalogListCache adds a listing cache
func WithCatalogListCache(lc cache.ListCache) CatalogServiceOption {
	return func(s *catalogServiceImpl) {
		s.listCache = lc
	}
}

// NewCatalogService creates a new catalog service with the provided
// options
func NewCatalogService(repo portsrepo.CatalogRepositoryFacade, options ...CatalogServiceOption) portssvc.CatalogSvcFacade {
	svc := &catalogServiceImpl{
		catalogRepo: repo,
		listCache:   cache.Noop{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CatalogSvcFacade = (*catalogServiceImpl)(nil)

func validateCatalogRequest(req dto.SaveCatalogItemRequest) error {
	if strings.TrimSpace(req.Description) == "" {
		return apperrors.NewValidationError("description is required")
	}
	if len(req.Description) > 255 {
		return apperrors.NewValidationError("description must be at most 255 characters")
	}
	return nil
}

func (s *catalogServiceImpl) CreateCatalogItem(ctx context.Context, req dto.SaveCatalogItemRequest) (*domain.CatalogItem, error) {
	if err := validateCatalogRequest(req); err != nil {
		return nil, err
	}

	// No dedup check: the catalog is a suggestion list and "add new"
	// during document composition inserts unconditionally.
	item := domain.CatalogItem{
		Description: req.Description,
		CreatedAt:   time.Now(),
	}

	if err := s.catalogRepo.SaveCatalogItem(ctx, &item); err != nil {
		s.LogError(ctx, err, "Failed to save catalog item", slog.String("description", req.Description))
		return nil, err
	}

	s.listCache.Invalidate(ctx, cache.CatalogItems)

	s.LogInfo(ctx, "Catalog item created successfully", slog.Int64("catalog_item_id", item.CatalogItemID))
	return &item, nil
}

func (s *catalogServiceImpl) GetCatalogItemByID(ctx context.Context, catalogItemID int64) (*domain.CatalogItem, error) {
	item, err := s.catalogRepo.FindCatalogItemByID(ctx, catalogItemID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find catalog item by ID", slog.Int64("catalog_item_id", catalogItemID))
		}
		return nil, err
	}
	return item, nil
}

func (s *catalogServiceImpl) UpdateCatalogItem(ctx context.Context, catalogItemID int64, req dto.SaveCatalogItemRequest) (*domain.CatalogItem, error) {
	if err := validateCatalogRequest(req); err != nil {
		return nil, err
	}

	item, err := s.GetCatalogItemByID(ctx, catalogItemID)
	if err != nil {
		return nil, err
	}

	item.Description = req.Description
	if err := s.catalogRepo.UpdateCatalogItem(ctx, *item); err != nil {
		s.LogError(ctx, err, "Failed to update catalog item", slog.Int64("catalog_item_id", catalogItemID))
		return nil, err
	}

	s.listCache.Invalidate(ctx, cache.CatalogItems)

	s.LogInfo(ctx, "Catalog item updated successfully", slog.Int64("catalog_item_id", catalogItemID))
	return item, nil
}

func (s *catalogServiceImpl) DeleteCatalogItem(ctx context.Context, catalogItemID int64) error {
	if _, err := s.GetCatalogItemByID(ctx, catalogItemID); err != nil {
		return err
	}

	if err := s.catalogRepo.DeleteCatalogItem(ctx, catalogItemID); err != nil {
		s.LogError(ctx, err, "Failed to delete catalog item", slog.Int64("catalog_item_id", catalogItemID))
		return err
	}

	s.listCache.Invalidate(ctx, cache.CatalogItems)

	s.LogInfo(ctx, "Catalog item deleted successfully", slog.Int64("catalog_item_id", catalogItemID))
	return nil
}

// catalogListPayload is the cached shape of a catalog listing page.
type catalogListPayload struct {
	Items []domain.CatalogItem `json:"items"`
	Total int64                `json:"total"`
}

func (s *catalogServiceImpl) ListCatalogItems(ctx context.Context, params dto.ListParams) ([]domain.CatalogItem, int64, error) {
	key := cache.ListKey(params.Search, params.Page, params.Limit)

	var cached catalogListPayload
	ver, ok := s.listCache.Get(ctx, cache.CatalogItems, key, &cached)
	if ok {
		return cached.Items, cached.Total, nil
	}

	items, total, err := s.catalogRepo.ListCatalogItems(ctx, params.Search, params.Limit, params.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list catalog items", slog.String("search", params.Search))
		return nil, 0, err
	}
	if items == nil {
		items = []domain.CatalogItem{}
	}

	s.listCache.Set(ctx, cache.CatalogItems, key, ver, catalogListPayload{Items: items, Total: total})

	return items, total, nil
}
