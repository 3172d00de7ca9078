package repositories

import (
	"context"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
)

// DocumentRepositoryFacade defines persistence operations for invoice and
// estimate documents together with their owned line items.
type DocumentRepositoryFacade interface {
	// SaveDocument inserts the document and all its items in one DB
	// transaction, filling generated IDs and timestamps on the passed
	// struct.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// FindDocumentByID returns the document with its items eagerly
	// loaded, or apperrors.ErrNotFound.
	FindDocumentByID(ctx context.Context, documentID int64) (*domain.Document, error)

	// UpdateDocument overwrites the document's scalar fields and replaces
	// the entire item set (delete-all then insert) in one DB transaction.
	// Fresh item IDs are filled on the passed struct.
	UpdateDocument(ctx context.Context, doc *domain.Document) error

	// UpdateDocumentApproval flips the document to INVOICE and records the
	// payment fields, bumping updated_at but never created_at.
	UpdateDocumentApproval(ctx context.Context, documentID int64, paymentMethod, paymentAccount string) error

	// DeleteDocument removes the items and then the document row in one
	// DB transaction.
	DeleteDocument(ctx context.Context, documentID int64) error

	// ListDocuments returns a page of documents of the given type ordered
	// by most recently updated first, plus the total matching count.
	// Items are not loaded for listings. A non-empty search matches
	// name, vehicle and registration number case-insensitively.
	ListDocuments(ctx context.Context, docType domain.DocumentType, search string, limit, offset int) ([]domain.Document, int64, error)
}
