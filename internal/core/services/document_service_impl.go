package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mwaqasali/garage_invoice_app/internal/apperrors"
	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	portsrepo "github.com/mwaqasali/garage_invoice_app/internal/core/ports/repositories"
	portssvc "github.com/mwaqasali/garage_invoice_app/internal/core/ports/services"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
	"github.com/mwaqasali/garage_invoice_app/internal/platform/cache"
	"github.com/mwaqasali/garage_invoice_app/internal/utils/money"
)

// documentServiceImpl implements the DocumentSvcFacade interface
type documentServiceImpl struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
	customers    portssvc.CustomerResolverSvc
	listCache    cache.ListCache
}

// DocumentServiceOption is a functional option for configuring the
// document service
type DocumentServiceOption func(*documentServiceImpl)

// WithDocumentListCache adds a listing cache
func WithDocumentListCache(lc cache.ListCache) DocumentServiceOption {
	return func(s *documentServiceImpl) {
		s.listCache = lc
	}
}

// NewDocumentService creates a new document service. The customer resolver
// is required: every document save resolves or creates its customer first.
func NewDocumentService(repo portsrepo.DocumentRepositoryFacade, customers portssvc.CustomerResolverSvc, options ...DocumentServiceOption) portssvc.DocumentSvcFacade {
	svc := &documentServiceImpl{
		documentRepo: repo,
		customers:    customers,
		listCache:    cache.Noop{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DocumentSvcFacade = (*documentServiceImpl)(nil)

func validateDocumentRequest(req dto.SaveDocumentRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name is required")
	}
	if len(req.Name) > 255 {
		return apperrors.NewValidationError("name must be at most 255 characters")
	}
	if len(req.Items) == 0 {
		return apperrors.NewValidationError("at least one line item is required")
	}
	for i, item := range req.Items {
		if item.Description == "" || len(item.Description) > 255 {
			return apperrors.NewValidationError(fmt.Sprintf("item %d: description must be 1-255 characters", i+1))
		}
		if item.Qty < 1 {
			return apperrors.NewValidationError(fmt.Sprintf("item %d: qty must be at least 1", i+1))
		}
		if item.Rate.IsNegative() {
			return apperrors.NewValidationError(fmt.Sprintf("item %d: rate must not be negative", i+1))
		}
	}
	if req.Tax.IsNegative() {
		return apperrors.NewValidationError("tax percentage must not be negative")
	}
	if req.Discount.IsNegative() {
		return apperrors.NewValidationError("discount percentage must not be negative")
	}
	return nil
}

// normalizePayment enforces the payment-account invariant: the account is
// meaningful only for bank transfers, so any other method (Cash included)
// stores an empty account.
func normalizePayment(method, account string) (string, string) {
	if method != domain.PaymentMethodBankTransfer {
		return method, ""
	}
	return method, account
}

func (s *documentServiceImpl) customerSnapshot(req dto.SaveDocumentRequest) dto.SaveCustomerRequest {
	return dto.SaveCustomerRequest{
		Name:           req.Name,
		Contact:        req.Contact,
		Vehicle:        req.Vehicle,
		RegistrationNo: req.RegistrationNo,
	}
}

func (s *documentServiceImpl) CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.SaveDocumentRequest) (*domain.Document, error) {
	if err := validateDocumentRequest(req); err != nil {
		return nil, err
	}

	// The customer write must complete and yield an id before the
	// document write that references it.
	customer, err := s.customers.ResolveOrCreateCustomer(ctx, req.CustomerID, s.customerSnapshot(req))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("customer %d does not exist", *req.CustomerID))
		}
		return nil, err
	}

	items := dto.ToLineItems(req.Items)
	subtotal, total := money.Recompute(items, req.Tax, req.Discount)

	paymentMethod, paymentAccount := "", ""
	if docType == domain.Invoice {
		paymentMethod, paymentAccount = normalizePayment(req.PaymentMethod, req.PaymentAccount)
	}

	now := time.Now()
	doc := domain.Document{
		CustomerID:     customer.CustomerID,
		Type:           docType,
		Name:           req.Name,
		Contact:        req.Contact,
		Vehicle:        req.Vehicle,
		RegistrationNo: req.RegistrationNo,
		PaymentMethod:  paymentMethod,
		PaymentAccount: paymentAccount,
		Subtotal:       subtotal,
		Tax:            req.Tax,
		Discount:       req.Discount,
		Total:          total,
		Items:          items,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.documentRepo.SaveDocument(ctx, &doc); err != nil {
		s.LogError(ctx, err, "Failed to save document",
			slog.String("type", string(docType)),
			slog.Int64("customer_id", customer.CustomerID))
		return nil, err
	}

	// Customer listings embed document summaries, so both caches go.
	s.listCache.Invalidate(ctx, cache.Documents, cache.Customers)

	s.LogInfo(ctx, "Document created successfully",
		slog.Int64("document_id", doc.DocumentID),
		slog.String("type", string(docType)))
	return &doc, nil
}

func (s *documentServiceImpl) GetDocumentByID(ctx context.Context, documentID int64) (*domain.Document, error) {
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find document by ID", slog.Int64("document_id", documentID))
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentServiceImpl) UpdateDocument(ctx context.Context, documentID int64, req dto.SaveDocumentRequest) (*domain.Document, error) {
	if err := validateDocumentRequest(req); err != nil {
		return nil, err
	}

	existing, err := s.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customers.ResolveOrCreateCustomer(ctx, req.CustomerID, s.customerSnapshot(req))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewValidationError(fmt.Sprintf("customer %d does not exist", *req.CustomerID))
		}
		return nil, err
	}

	items := dto.ToLineItems(req.Items)
	subtotal, total := money.Recompute(items, req.Tax, req.Discount)

	paymentMethod, paymentAccount := "", ""
	if existing.Type == domain.Invoice {
		paymentMethod, paymentAccount = normalizePayment(req.PaymentMethod, req.PaymentAccount)
	}

	doc := domain.Document{
		DocumentID:     existing.DocumentID,
		CustomerID:     customer.CustomerID,
		Type:           existing.Type, // Update never changes the type
		Name:           req.Name,
		Contact:        req.Contact,
		Vehicle:        req.Vehicle,
		RegistrationNo: req.RegistrationNo,
		PaymentMethod:  paymentMethod,
		PaymentAccount: paymentAccount,
		Subtotal:       subtotal,
		Tax:            req.Tax,
		Discount:       req.Discount,
		Total:          total,
		Items:          items,
		Timestamps: domain.Timestamps{
			CreatedAt: existing.CreatedAt,
			UpdatedAt: time.Now(),
		},
	}

	if err := s.documentRepo.UpdateDocument(ctx, &doc); err != nil {
		s.LogError(ctx, err, "Failed to update document", slog.Int64("document_id", documentID))
		return nil, err
	}

	s.listCache.Invalidate(ctx, cache.Documents, cache.Customers)

	s.LogInfo(ctx, "Document updated successfully",
		slog.Int64("document_id", documentID),
		slog.Int("item_count", len(items)))
	return &doc, nil
}

func (s *documentServiceImpl) DeleteDocument(ctx context.Context, documentID int64) error {
	if _, err := s.GetDocumentByID(ctx, documentID); err != nil {
		return err
	}

	if err := s.documentRepo.DeleteDocument(ctx, documentID); err != nil {
		s.LogError(ctx, err, "Failed to delete document", slog.Int64("document_id", documentID))
		return err
	}

	s.listCache.Invalidate(ctx, cache.Documents, cache.Customers)

	s.LogInfo(ctx, "Document deleted successfully", slog.Int64("document_id", documentID))
	return nil
}

// documentListPayload is the cached shape of a document listing page.
type documentListPayload struct {
	Documents []domain.Document `json:"documents"`
	Total     int64             `json:"total"`
}

func (s *documentServiceImpl) ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, int64, error) {
	docType := params.Type
	if docType == "" {
		docType = domain.Invoice
	}
	key := cache.ListKey(params.Search, params.Page, params.Limit, string(docType))

	var cached documentListPayload
	ver, ok := s.listCache.Get(ctx, cache.Documents, key, &cached)
	if ok {
		return cached.Documents, cached.Total, nil
	}

	docs, total, err := s.documentRepo.ListDocuments(ctx, docType, params.Search, params.Limit, params.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list documents", slog.String("type", string(docType)))
		return nil, 0, err
	}
	if docs == nil {
		docs = []domain.Document{}
	}

	s.listCache.Set(ctx, cache.Documents, key, ver, documentListPayload{Documents: docs, Total: total})

	return docs, total, nil
}

func (s *documentServiceImpl) ApproveEstimate(ctx context.Context, documentID int64, req dto.ApproveEstimateRequest) (*domain.Document, error) {
	doc, err := s.GetDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Type != domain.Estimate {
		s.LogDebug(ctx, "Approval rejected: document is not an estimate",
			slog.Int64("document_id", documentID),
			slog.String("type", string(doc.Type)))
		return nil, apperrors.NewInvalidStateError(
			fmt.Sprintf("document %d is not an estimate", documentID))
	}

	paymentMethod, paymentAccount := normalizePayment(req.PaymentMethod, req.PaymentAccount)

	if err := s.documentRepo.UpdateDocumentApproval(ctx, documentID, paymentMethod, paymentAccount); err != nil {
		s.LogError(ctx, err, "Failed to approve estimate", slog.Int64("document_id", documentID))
		return nil, err
	}

	s.listCache.Invalidate(ctx, cache.Documents, cache.Customers)

	s.LogInfo(ctx, "Estimate approved",
		slog.Int64("document_id", documentID),
		slog.String("payment_method", paymentMethod))

	// Re-read so the returned document carries the DB-assigned updatedAt.
	return s.GetDocumentByID(ctx, documentID)
}
