package services

import (
	"context"

	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	"github.com/mwaqasali/garage_invoice_app/internal/dto"
)

// DocumentSvcFacade defines the business operations on invoice and
// estimate documents, including the one-way estimate approval workflow.
type DocumentSvcFacade interface {
	// CreateDocument validates the request, resolves or creates the
	// customer, recomputes all derived amounts and persists the document
	// with its items atomically.
	CreateDocument(ctx context.Context, docType domain.DocumentType, req dto.SaveDocumentRequest) (*domain.Document, error)

	GetDocumentByID(ctx context.Context, documentID int64) (*domain.Document, error)

	// UpdateDocument performs a full replace: scalar fields are
	// overwritten and the item set is deleted and recreated. It is never
	// a partial patch.
	UpdateDocument(ctx context.Context, documentID int64, req dto.SaveDocumentRequest) (*domain.Document, error)

	DeleteDocument(ctx context.Context, documentID int64) error

	ListDocuments(ctx context.Context, params dto.ListDocumentsParams) ([]domain.Document, int64, error)

	// ApproveEstimate converts an estimate into an invoice, recording the
	// payment method and account. Fails with apperrors.ErrNotFound for a
	// missing document and apperrors.ErrInvalidState when the document is
	// already an invoice. Items, totals, the customer link and createdAt
	// are carried over unchanged; there is no reverse transition.
	ApproveEstimate(ctx context.Context, documentID int64, req dto.ApproveEstimateRequest) (*domain.Document, error)
}
