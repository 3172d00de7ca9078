package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwaqasali/garage_invoice_app/internal/apperrors"
	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	portsrepo "github.com/mwaqasali/garage_invoice_app/internal/core/ports/repositories"
)

type PgxDocumentRepository struct {
	BaseRepository
}

// newPgxDocumentRepository creates a new repository for invoice and
// estimate documents with their line items.
func newPgxDocumentRepository(pool *pgxpool.Pool) portsrepo.DocumentRepositoryFacade {
	return &PgxDocumentRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.DocumentRepositoryFacade = (*PgxDocumentRepository)(nil)

const documentColumns = `document_id, customer_id, type, name, contact, vehicle, registration_no,
	payment_method, payment_account, subtotal, tax, discount, total, created_at, updated_at`

// insertItems inserts the document's line items within tx and fills the
// generated IDs back onto the slice.
func (r *PgxDocumentRepository) insertItems(ctx context.Context, tx pgx.Tx, documentID int64, items []domain.LineItem) error {
	query := `
		INSERT INTO line_items (document_id, description, qty, rate, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING line_item_id;
	`
	for i := range items {
		items[i].DocumentID = documentID
		err := tx.QueryRow(ctx, query,
			documentID,
			items[i].Description,
			items[i].Qty,
			items[i].Rate,
			items[i].Amount,
		).Scan(&items[i].LineItemID)
		if err != nil {
			return apperrors.NewAppError(500, "failed to insert line item", err)
		}
	}
	return nil
}

// SaveDocument inserts the document and all its items in one DB
// transaction.
func (r *PgxDocumentRepository) SaveDocument(ctx context.Context, doc *domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	query := `
		INSERT INTO documents (customer_id, type, name, contact, vehicle, registration_no,
			payment_method, payment_account, subtotal, tax, discount, total, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING document_id;
	`
	err = tx.QueryRow(ctx, query,
		doc.CustomerID,
		doc.Type,
		doc.Name,
		doc.Contact,
		doc.Vehicle,
		doc.RegistrationNo,
		doc.PaymentMethod,
		doc.PaymentAccount,
		doc.Subtotal,
		doc.Tax,
		doc.Discount,
		doc.Total,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.DocumentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert document", err)
	}

	if err := r.insertItems(ctx, tx, doc.DocumentID, doc.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) FindDocumentByID(ctx context.Context, documentID int64) (*domain.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE document_id = $1;`

	var doc domain.Document
	err := r.Pool.QueryRow(ctx, query, documentID).Scan(
		&doc.DocumentID,
		&doc.CustomerID,
		&doc.Type,
		&doc.Name,
		&doc.Contact,
		&doc.Vehicle,
		&doc.RegistrationNo,
		&doc.PaymentMethod,
		&doc.PaymentAccount,
		&doc.Subtotal,
		&doc.Tax,
		&doc.Discount,
		&doc.Total,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("document not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find document", err)
	}

	itemsQuery := `
		SELECT line_item_id, document_id, description, qty, rate, amount
		FROM line_items
		WHERE document_id = $1
		ORDER BY line_item_id;
	`
	rows, err := r.Pool.Query(ctx, itemsQuery, documentID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query line items", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.LineItem])
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to collect line item rows", err)
	}
	doc.Items = items

	return &doc, nil
}

// UpdateDocument overwrites the document's scalar fields and replaces the
// entire item set in one DB transaction. The item replacement is
// delete-all then insert, never an item-by-item patch.
func (r *PgxDocumentRepository) UpdateDocument(ctx context.Context, doc *domain.Document) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	query := `
		UPDATE documents
		SET customer_id = $2, type = $3, name = $4, contact = $5, vehicle = $6,
			registration_no = $7, payment_method = $8, payment_account = $9,
			subtotal = $10, tax = $11, discount = $12, total = $13, updated_at = $14
		WHERE document_id = $1;
	`
	tag, err := tx.Exec(ctx, query,
		doc.DocumentID,
		doc.CustomerID,
		doc.Type,
		doc.Name,
		doc.Contact,
		doc.Vehicle,
		doc.RegistrationNo,
		doc.PaymentMethod,
		doc.PaymentAccount,
		doc.Subtotal,
		doc.Tax,
		doc.Discount,
		doc.Total,
		doc.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update document", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document not found")
	}

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1;`, doc.DocumentID); err != nil {
		return apperrors.NewAppError(500, "failed to delete old line items", err)
	}
	if err := r.insertItems(ctx, tx, doc.DocumentID, doc.Items); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// UpdateDocumentApproval is guarded on the current type so a concurrent
// approval of the same estimate cannot apply twice: the second UPDATE
// matches zero rows.
func (r *PgxDocumentRepository) UpdateDocumentApproval(ctx context.Context, documentID int64, paymentMethod, paymentAccount string) error {
	query := `
		UPDATE documents
		SET type = $2, payment_method = $3, payment_account = $4, updated_at = NOW()
		WHERE document_id = $1 AND type = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, documentID, domain.Invoice, paymentMethod, paymentAccount, domain.Estimate)
	if err != nil {
		return apperrors.NewAppError(500, "failed to approve document", err)
	}
	if tag.RowsAffected() == 0 {
		// Distinguish a vanished document from one that is no longer an
		// estimate.
		var docType domain.DocumentType
		err := r.Pool.QueryRow(ctx, `SELECT type FROM documents WHERE document_id = $1;`, documentID).Scan(&docType)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("document not found")
		}
		if err != nil {
			return apperrors.NewAppError(500, "failed to check document state", err)
		}
		return apperrors.NewInvalidStateError(fmt.Sprintf("document %d is not an estimate", documentID))
	}
	return nil
}

// DeleteDocument removes the items and then the document row in one DB
// transaction.
func (r *PgxDocumentRepository) DeleteDocument(ctx context.Context, documentID int64) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = r.Rollback(ctx, tx)
	}()

	if _, err := tx.Exec(ctx, `DELETE FROM line_items WHERE document_id = $1;`, documentID); err != nil {
		return apperrors.NewAppError(500, "failed to delete line items", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM documents WHERE document_id = $1;`, documentID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete document", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("document not found")
	}

	return r.Commit(ctx, tx)
}

func (r *PgxDocumentRepository) ListDocuments(ctx context.Context, docType domain.DocumentType, search string, limit, offset int) ([]domain.Document, int64, error) {
	filter := `WHERE type = $3`
	args := []any{limit, offset, docType}
	if search != "" {
		filter += ` AND (name ILIKE $4 OR vehicle ILIKE $4 OR registration_no ILIKE $4)`
		args = append(args, likePattern(search))
	}

	query := `SELECT ` + documentColumns + ` FROM documents ` + filter + `
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query documents", err)
	}
	defer rows.Close()

	docs, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Document])
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to collect document rows", err)
	}

	countQuery := `SELECT COUNT(*) FROM documents WHERE type = $1`
	countArgs := []any{docType}
	if search != "" {
		countQuery += ` AND (name ILIKE $2 OR vehicle ILIKE $2 OR registration_no ILIKE $2)`
		countArgs = append(countArgs, likePattern(search))
	}
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count documents", err)
	}

	return docs, total, nil
}
