package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mwaqasali/garage_invoice_app/internal/apperrors"
	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
	"github.com/mwaqasali/garage_invoice_app/internal/handlers"
	"github.com/mwaqasali/garage_invoice_app/internal/platform/config"
)

const testJWTSecret = "test-secret"

// --- Mock DocumentService ---

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.SaveDocumentRequest) (*domain.Document, error) {
	args := m.Called(ctx, docType, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) GetDocumentByID(ctx context.Context, documentID int64) (*domain.Document, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) UpdateDocument(ctx context.Context, documentID int64, req dto.SaveDocumentRequest) (*domain.Document, error) {
	args := m.Called(ctx, documentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}
func (m *MockDocumentService) DeleteDocument(ctx context.Context, documentID int64) error {
	args := m.Called(ctx, documentID)
	return args.Error(0)
}
func (m *MockDocumentService) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.Document), args.Get(1).(int64), args.Error(2)
}
func (m *MockDocumentService) ApproveEstimate(ctx context.Context, documentID int64, req dto.ApproveEstimateRequest) (*domain.Document, error) {
	args := m.Called(ctx, documentID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Document), args.Error(1)
}

var _ portssvc.DocumentSvcFacade = (*MockDocumentService)(nil)

// --- Mock CustomerService ---

type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.SaveCustomerRequest) (*domain.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID int64, req dto.SaveCustomerRequest) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID int64) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, params dto.ListParams) ([]domain.Customer, map[int64][]domain.DocumentSummary, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, nil, 0, args.Error(3)
	}
	return args.Get(0).([]domain.Customer), args.Get(1).(map[int64][]domain.DocumentSummary), args.Get(2).(int64), args.Error(3)
}
func (m *MockCustomerService) ResolveOrCreateCustomer(ctx context.Context, customerID *int64, snapshot dto.SaveCustomerRequest) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, snapshot)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock CatalogService ---

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) CreateCatalogItem(ctx context.Context, req dto.SaveCatalogItemRequest) (*domain.CatalogItem, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) GetCatalogItemByID(ctx context.Context, catalogItemID int64) (*domain.CatalogItem, error) {
	args := m.Called(ctx, catalogItemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) UpdateCatalogItem(ctx context.Context, catalogItemID int64, req dto.SaveCatalogItemRequest) (*domain.CatalogItem, error) {
	args := m.Called(ctx, catalogItemID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CatalogItem), args.Error(1)
}
func (m *MockCatalogService) DeleteCatalogItem(ctx context.Context, catalogItemID int64) error {
	args := m.Called(ctx, catalogItemID)
	return args.Error(0)
}
func (m *MockCatalogService) ListCatalogItems(ctx context.Context, params dto.ListParams) ([]domain.CatalogItem, int64, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]domain.CatalogItem), args.Get(1).(int64), args.Error(2)
}

var _ portssvc.CatalogSvcFacade = (*MockCatalogService)(nil)

// --- Test Suite Setup ---

type DocumentHandlerTestSuite struct {
	suite.Suite
	router          *gin.Engine
	mockDocumentSvc *MockDocumentService
}

func (suite *DocumentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockDocumentSvc = new(MockDocumentService)

	container := &portssvc.ServiceContainer{
		Customer: new(MockCustomerService),
		Document: suite.mockDocumentSvc,
		Catalog:  new(MockCatalogService),
	}
	cfg := &config.Config{JWTSecret: testJWTSecret}

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, container, cfg)
}

func (suite *DocumentHandlerTestSuite) authToken() string {
	claims := jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	suite.Require().NoError(err)
	return token
}

func (suite *DocumentHandlerTestSuite) doRequest(method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.authToken())
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *DocumentHandlerTestSuite) TestListInvoices_PaginationEnvelope() {
	docs := make([]domain.Document, 20)
	for i := range docs {
		docs[i] = domain.Document{DocumentID: int64(i + 1), Type: domain.Invoice, Name: fmt.Sprintf("Customer %d", i+1)}
	}

	suite.mockDocumentSvc.On("ListDocuments", mock.Anything, mock.MatchedBy(func(p dto.ListDocumentsParams) bool {
		return p.Type == domain.Invoice && p.Page == 1 && p.Limit == 20
	})).Return(docs, int64(45), nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/invoices", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ListDocumentsResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Len(resp.Data, 20)
	suite.Equal(int64(45), resp.Pagination.Total)
	suite.Equal(3, resp.Pagination.TotalPages)
	suite.mockDocumentSvc.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestListEstimates_ForcesEstimateType() {
	suite.mockDocumentSvc.On("ListDocuments", mock.Anything, mock.MatchedBy(func(p dto.ListDocumentsParams) bool {
		return p.Type == domain.Estimate
	})).Return([]domain.Document{}, int64(0), nil).Once()

	// A stray ?type=INVOICE on the estimates listing must not leak through.
	w := suite.doRequest(http.MethodGet, "/api/v1/estimates?type=INVOICE", nil)

	suite.Equal(http.StatusOK, w.Code)
	suite.mockDocumentSvc.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestGetInvoice_NotFoundBody() {
	suite.mockDocumentSvc.On("GetDocumentByID", mock.Anything, int64(999)).
		Return(nil, apperrors.NewNotFoundError("document not found")).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/invoices/999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error": "Invalid invoice"}`, w.Body.String())
}

func (suite *DocumentHandlerTestSuite) TestGetEstimate_NotFoundBody() {
	suite.mockDocumentSvc.On("GetDocumentByID", mock.Anything, int64(999)).
		Return(nil, apperrors.NewNotFoundError("document not found")).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/estimates/999", nil)

	suite.Equal(http.StatusNotFound, w.Code)
	suite.JSONEq(`{"error": "Invalid estimate"}`, w.Body.String())
}

func (suite *DocumentHandlerTestSuite) TestCreateInvoice_MissingItems() {
	body := map[string]any{"name": "Ahmed Khan"}

	w := suite.doRequest(http.MethodPost, "/api/v1/invoices", body)

	suite.Equal(http.StatusBadRequest, w.Code)
	var resp map[string]map[string]string
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Contains(resp["errors"], "items")
	suite.mockDocumentSvc.AssertNotCalled(suite.T(), "CreateDocument", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *DocumentHandlerTestSuite) TestApproveEstimate_ReturnsInvoice() {
	approved := &domain.Document{
		DocumentID:    7,
		CustomerID:    3,
		Type:          domain.Invoice,
		Name:          "Ahmed Khan",
		PaymentMethod: "Cash",
	}
	suite.mockDocumentSvc.On("ApproveEstimate", mock.Anything, int64(7), dto.ApproveEstimateRequest{PaymentMethod: "Cash"}).
		Return(approved, nil).Once()

	w := suite.doRequest(http.MethodPatch, "/api/v1/estimates/7/approve", dto.ApproveEstimateRequest{PaymentMethod: "Cash"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.DocumentResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(domain.Invoice, resp.Type)
	suite.Equal("Cash", resp.PaymentMethod)
	suite.mockDocumentSvc.AssertExpectations(suite.T())
}

func (suite *DocumentHandlerTestSuite) TestApproveEstimate_AlreadyInvoice() {
	suite.mockDocumentSvc.On("ApproveEstimate", mock.Anything, int64(8), mock.Anything).
		Return(nil, apperrors.NewInvalidStateError("document 8 is not an estimate")).Once()

	w := suite.doRequest(http.MethodPatch, "/api/v1/estimates/8/approve", dto.ApproveEstimateRequest{PaymentMethod: "Cash"})

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *DocumentHandlerTestSuite) TestRequestWithoutToken_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/invoices", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockDocumentSvc.AssertNotCalled(suite.T(), "ListDocuments", mock.Anything, mock.Anything)
}

func TestDocumentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(DocumentHandlerTestSuite))
}
