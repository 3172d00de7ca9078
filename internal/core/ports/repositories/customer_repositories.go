package repositories

import (
	"context"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
)

// CustomerRepositoryFacade defines persistence operations for customers.
type CustomerRepositoryFacade interface {
	// SaveCustomer inserts a new customer and fills the generated ID and
	// timestamps on the passed struct.
	SaveCustomer(ctx context.Context, customer *domain.Customer) error

	// FindCustomerByID returns apperrors.ErrNotFound when no row exists.
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)

	// UpdateCustomer overwrites the customer's scalar fields.
	UpdateCustomer(ctx context.Context, customer domain.Customer) error

	// DeleteCustomer removes the customer row. The referential guard
	// (no documents may reference the customer) is the service's job.
	DeleteCustomer(ctx context.Context, customerID int64) error

	// ListCustomers returns a page of customers ordered by most recently
	// updated first, plus the total matching count. A non-empty search is
	// a case-insensitive substring match OR-ed across name, contact,
	// vehicle and registration number.
	ListCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, int64, error)

	// CountDocumentsByCustomerID returns how many documents reference the
	// customer.
	CountDocumentsByCustomerID(ctx context.Context, customerID int64) (int64, error)

	// FindRecentDocumentSummaries returns up to perCustomer most recently
	// updated document summaries for each of the given customers.
	FindRecentDocumentSummaries(ctx context.Context, customerIDs []int64, perCustomer int) (map[int64][]domain.DocumentSummary, error)
}
