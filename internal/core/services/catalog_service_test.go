package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mwaqasali/garage_invoice_app/internal/apperrors"
	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/core/services"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
	"github.com/mwaqasali/garage_invoice_app/internal/platform/cache"
)

// MockCatalogRepository is a mock type for the CatalogRepositoryFacade interface
type MockCatalogRepository struct {
	mock.Mock
}

func (m *MockCatalogRepository) SaveCatalogItem(ctx context.Context, item *domain.CatalogItem) error {
	args := m.Called(ctx, item)
	if args.Error(0) == nil {
		item.CatalogItemID = 1
	}
	return args.Error(0)
}

func (m *MockCatalogRepository) FindCatalogItemByID(ctx context.Context, catalogItemID int64) (*domain.CatalogItem, error) {
	args := m.Called(ctx, catalogItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}

func (m *MockCatalogRepository) UpdateCatalogItem(ctx context.Context, item domain.CatalogItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCatalogRepository) DeleteCatalogItem(ctx context.Context, catalogItemID int64) error {
	args := m.Called(ctx, catalogItemID)
	return args.Error(0)
}

func (m *MockCatalogRepository) ListCatalogItems(ctx context.Context, search string, limit, offset int) ([]domain.CatalogItem, int64, error) {
	args := m.Called(ctx, search, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.CatalogItem), args.Get(1).(int64), args.Error(2)
}

// --- Test Suite Setup ---

type CatalogServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCatalogRepository
	service  portssvc.CatalogSvcFacade
}

func (suite *CatalogServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCatalogRepository)
	suite.service = services.NewCatalogService(suite.mockRepo)
}

// --- Test Cases ---

func (suite *CatalogServiceTestSuite) TestCreateCatalogItem_Success() {
	ctx := context.Background()

	suite.mockRepo.On("SaveCatalogItem", ctx, mock.AnythingOfType("*domain.CatalogItem")).Return(nil).Once()

	item, err := suite.service.CreateCatalogItem(ctx, dto.SaveCatalogItemRequest{Description: "Oil change"})

	suite.Require().NoError(err)
	suite.Equal("Oil change", item.Description)
	suite.WithinDuration(time.Now(), item.CreatedAt, time.Second)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateCatalogItem_DuplicatesAllowed() {
	ctx := context.Background()

	// The catalog never dedupes: two identical descriptions become two rows.
	suite.mockRepo.On("SaveCatalogItem", ctx, mock.AnythingOfType("*domain.CatalogItem")).Return(nil).Twice()

	_, err := suite.service.CreateCatalogItem(ctx, dto.SaveCatalogItemRequest{Description: "Wheel alignment"})
	suite.Require().NoError(err)
	_, err = suite.service.CreateCatalogItem(ctx, dto.SaveCatalogItemRequest{Description: "Wheel alignment"})
	suite.Require().NoError(err)

	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestCreateCatalogItem_EmptyDescription() {
	ctx := context.Background()

	_, err := suite.service.CreateCatalogItem(ctx, dto.SaveCatalogItemRequest{Description: "  "})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCatalogItem", mock.Anything, mock.Anything)
}

func (suite *CatalogServiceTestSuite) TestUpdateCatalogItem_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCatalogItemByID", ctx, int64(99)).
		Return(nil, apperrors.NewNotFoundError("catalog item not found")).Once()

	_, err := suite.service.UpdateCatalogItem(ctx, 99, dto.SaveCatalogItemRequest{Description: "X"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *CatalogServiceTestSuite) TestDeleteCatalogItem_Success() {
	ctx := context.Background()
	existing := &domain.CatalogItem{CatalogItemID: 4, Description: "Brake pads"}

	suite.mockRepo.On("FindCatalogItemByID", ctx, int64(4)).Return(existing, nil).Once()
	suite.mockRepo.On("DeleteCatalogItem", ctx, int64(4)).Return(nil).Once()

	err := suite.service.DeleteCatalogItem(ctx, 4)

	suite.Require().NoError(err)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *CatalogServiceTestSuite) TestListCatalogItems_PassesSearchAndPaging() {
	ctx := context.Background()
	items := []domain.CatalogItem{{CatalogItemID: 1, Description: "Oil change"}}

	suite.mockRepo.On("ListCatalogItems", ctx, "oil", 10, 10).Return(items, int64(11), nil).Once()

	got, total, err := suite.service.ListCatalogItems(ctx, dto.ListParams{Page: 2, Limit: 10, Search: "oil"})

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Equal(int64(11), total)
	suite.mockRepo.AssertExpectations(suite.T())
}

// TestListCatalogItems_CachedSecondRead wires a real Redis-backed listing
// cache (miniredis) and checks that the repository is only hit once for
// repeated identical listings, and again after a mutation.
func (suite *CatalogServiceTestSuite) TestListCatalogItems_CachedSecondRead() {
	ctx := context.Background()
	mr := miniredis.RunT(suite.T())
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	listCache := cache.NewRedisListCache(client, time.Minute, nil)

	service := services.NewCatalogService(suite.mockRepo, services.WithCatalogListCache(listCache))

	items := []domain.CatalogItem{{CatalogItemID: 1, Description: "Oil change"}}
	suite.mockRepo.On("ListCatalogItems", ctx, "", 20, 0).Return(items, int64(1), nil).Twice()
	suite.mockRepo.On("SaveCatalogItem", ctx, mock.AnythingOfType("*domain.CatalogItem")).Return(nil).Once()

	params := dto.ListParams{Page: 1, Limit: 20}

	_, _, err := service.ListCatalogItems(ctx, params)
	suite.Require().NoError(err)

	// Second identical read is served from the cache.
	got, total, err := service.ListCatalogItems(ctx, params)
	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.Equal(int64(1), total)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "ListCatalogItems", 1)

	// A mutation invalidates, so the next read hits the repository again.
	_, err = service.CreateCatalogItem(ctx, dto.SaveCatalogItemRequest{Description: "Tuning"})
	suite.Require().NoError(err)

	_, _, err = service.ListCatalogItems(ctx, params)
	suite.Require().NoError(err)
	suite.mockRepo.AssertNumberOfCalls(suite.T(), "ListCatalogItems", 2)
}

func TestCatalogServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}
