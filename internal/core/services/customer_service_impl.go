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
)

// recentDocumentsPerCustomer caps how many document summaries are embedded
// per customer in listings.
const recentDocumentsPerCustomer = 10

// customerServiceImpl implements the CustomerSvcFacade interface
type customerServiceImpl struct {
	BaseService
	customerRepo portsrepo.CustomerRepositoryFacade
	listCache    cache.ListCache
}

// CustomerServiceOption is a functional option for configuring the
// customer service
type CustomerServiceOption func(*customerServiceImpl)

// WithCustomerListCache adds a listing cache
func WithCustomerListCache(lc cache.ListCache) CustomerServiceOption {
	return func(s *customerServiceImpl) {
		s.listCache = lc
	}
}

// NewCustomerService creates a new customer service with the provided
// options
func NewCustomerService(repo portsrepo.CustomerRepositoryFacade, options ...CustomerServiceOption) portssvc.CustomerSvcFacade {
	svc := &customerServiceImpl{
		customerRepo: repo,
		listCache:    cache.Noop{},
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.CustomerSvcFacade = (*customerServiceImpl)(nil)

func validateCustomerRequest(req dto.SaveCustomerRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("customer name is required")
	}
	if len(req.Name) > 255 {
		return apperrors.NewValidationError("customer name must be at most 255 characters")
	}
	return nil
}

func (s *customerServiceImpl) CreateCustomer(ctx context.Context, req dto.SaveCustomerRequest) (*domain.Customer, error) {
	if err := validateCustomerRequest(req); err != nil {
		return nil, err
	}

	now := time.Now()
	customer := domain.Customer{
		Name:           req.Name,
		Contact:        req.Contact,
		Vehicle:        req.Vehicle,
		RegistrationNo: req.RegistrationNo,
		Timestamps: domain.Timestamps{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.customerRepo.SaveCustomer(ctx, &customer); err != nil {
		s.LogError(ctx, err, "Failed to save customer", slog.String("name", req.Name))
		return nil, err
	}

	s.listCache.Invalidate(ctx, cache.Customers)

	s.LogInfo(ctx, "Customer created successfully", slog.Int64("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *customerServiceImpl) GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find customer by ID", slog.Int64("customer_id", customerID))
		}
		return nil, err
	}
	return customer, nil
}

func (s *customerServiceImpl) UpdateCustomer(ctx context.Context, customerID int64, req dto.SaveCustomerRequest) (*domain.Customer, error) {
	if err := validateCustomerRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.GetCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	// Full overwrite of the four scalar fields. Documents keep their
	// denormalized snapshot of the old values.
	customer.Name = req.Name
	customer.Contact = req.Contact
	customer.Vehicle = req.Vehicle
	customer.RegistrationNo = req.RegistrationNo
	customer.UpdatedAt = time.Now()

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		s.LogError(ctx, err, "Failed to update customer", slog.Int64("customer_id", customerID))
		return nil, err
	}

	s.listCache.Invalidate(ctx, cache.Customers)

	s.LogInfo(ctx, "Customer updated successfully", slog.Int64("customer_id", customerID))
	return customer, nil
}

func (s *customerServiceImpl) DeleteCustomer(ctx context.Context, customerID int64) error {
	if _, err := s.GetCustomerByID(ctx, customerID); err != nil {
		return err
	}

	count, err := s.customerRepo.CountDocumentsByCustomerID(ctx, customerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count documents for customer", slog.Int64("customer_id", customerID))
		return err
	}
	if count > 0 {
		s.LogDebug(ctx, "Customer deletion blocked by existing documents",
			slog.Int64("customer_id", customerID),
			slog.Int64("document_count", count))
		return apperrors.NewReferentialIntegrityError(
			fmt.Sprintf("customer has %d associated document(s) and cannot be deleted", count))
	}

	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		s.LogError(ctx, err, "Failed to delete customer", slog.Int64("customer_id", customerID))
		return err
	}

	s.listCache.Invalidate(ctx, cache.Customers)

	s.LogInfo(ctx, "Customer deleted successfully", slog.Int64("customer_id", customerID))
	return nil
}

// customerListPayload is the cached shape of a customer listing page.
type customerListPayload struct {
	Customers []domain.Customer                  `json:"customers"`
	Summaries map[int64][]domain.DocumentSummary `json:"summaries"`
	Total     int64                              `json:"total"`
}

func (s *customerServiceImpl) ListCustomers(ctx context.Context, params dto.ListParams) ([]domain.Customer, map[int64][]domain.DocumentSummary, int64, error) {
	key := cache.ListKey(params.Search, params.Page, params.Limit)

	var cached customerListPayload
	ver, ok := s.listCache.Get(ctx, cache.Customers, key, &cached)
	if ok {
		return cached.Customers, cached.Summaries, cached.Total, nil
	}

	customers, total, err := s.customerRepo.ListCustomers(ctx, params.Search, params.Limit, params.Offset())
	if err != nil {
		s.LogError(ctx, err, "Failed to list customers", slog.String("search", params.Search))
		return nil, nil, 0, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}

	ids := make([]int64, len(customers))
	for i, c := range customers {
		ids[i] = c.CustomerID
	}
	summaries, err := s.customerRepo.FindRecentDocumentSummaries(ctx, ids, recentDocumentsPerCustomer)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recent documents for customers")
		return nil, nil, 0, err
	}

	s.listCache.Set(ctx, cache.Customers, key, ver, customerListPayload{
		Customers: customers,
		Summaries: summaries,
		Total:     total,
	})

	return customers, summaries, total, nil
}

func (s *customerServiceImpl) ResolveOrCreateCustomer(ctx context.Context, customerID *int64, snapshot dto.SaveCustomerRequest) (*domain.Customer, error) {
	if customerID != nil {
		return s.GetCustomerByID(ctx, *customerID)
	}
	return s.CreateCustomer(ctx, snapshot)
}
