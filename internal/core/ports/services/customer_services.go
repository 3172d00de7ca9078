package services

import (
	"context"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
)

// CustomerSvcFacade defines the business operations on the customer
// directory.
type CustomerSvcFacade interface {
	CustomerResolverSvc

	CreateCustomer(ctx context.Context, req dto.SaveCustomerRequest) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID int64, req dto.SaveCustomerRequest) (*domain.Customer, error)

	// DeleteCustomer fails with apperrors.ErrReferentialIntegrity when the
	// customer still owns documents. There is no force-delete path.
	DeleteCustomer(ctx context.Context, customerID int64) error

	// ListCustomers returns a page of customers together with up to ten
	// most recently updated document summaries per customer.
	ListCustomers(ctx context.Context, params dto.ListParams) ([]domain.Customer, map[int64][]domain.DocumentSummary, int64, error)
}

// CustomerResolverSvc resolves the customer for a document save. It is the
// explicit half of the historical implicit customer-upsert-on-save: the
// document service calls it before persisting the document.
type CustomerResolverSvc interface {
	// ResolveOrCreateCustomer returns the existing customer when
	// customerID is non-nil, or creates a new one from the snapshot
	// fields and returns it.
	ResolveOrCreateCustomer(ctx context.Context, customerID *int64, snapshot dto.SaveCustomerRequest) (*domain.Customer, error)
}
