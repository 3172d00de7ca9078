package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mwaqasali/garage_invoice_app/internal/apperrors"
	"github.com/mwaqasali/garage_invoice_app/internal/core/domain"
	portsrepo "github.com/mwaqasali/garage_invoice_app/internal/core/ports/repositories"
)

type PgxCustomerRepository struct {
	BaseRepository
}

// newPgxCustomerRepository creates a new repository for customer data.
func newPgxCustomerRepository(pool *pgxpool.Pool) portsrepo.CustomerRepositoryFacade {
	return &PgxCustomerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CustomerRepositoryFacade = (*PgxCustomerRepository)(nil)

const customerColumns = `customer_id, name, contact, vehicle, registration_no, created_at, updated_at`

func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer *domain.Customer) error {
	query := `
		INSERT INTO customers (name, contact, vehicle, registration_no, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING customer_id;
	`
	err := r.Pool.QueryRow(ctx, query,
		customer.Name,
		customer.Contact,
		customer.Vehicle,
		customer.RegistrationNo,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Scan(&customer.CustomerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert customer", err)
	}
	return nil
}

func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1;`

	var customer domain.Customer
	err := r.Pool.QueryRow(ctx, query, customerID).Scan(
		&customer.CustomerID,
		&customer.Name,
		&customer.Contact,
		&customer.Vehicle,
		&customer.RegistrationNo,
		&customer.CreatedAt,
		&customer.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("customer not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find customer", err)
	}
	return &customer, nil
}

func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	query := `
		UPDATE customers
		SET name = $2, contact = $3, vehicle = $4, registration_no = $5, updated_at = $6
		WHERE customer_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		customer.CustomerID,
		customer.Name,
		customer.Contact,
		customer.Vehicle,
		customer.RegistrationNo,
		customer.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update customer", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer not found")
	}
	return nil
}

func (r *PgxCustomerRepository) DeleteCustomer(ctx context.Context, customerID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM customers WHERE customer_id = $1;`, customerID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete customer", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("customer not found")
	}
	return nil
}

func (r *PgxCustomerRepository) ListCustomers(ctx context.Context, search string, limit, offset int) ([]domain.Customer, int64, error) {
	filter := ``
	args := []any{limit, offset}
	if search != "" {
		filter = `WHERE name ILIKE $3 OR contact ILIKE $3 OR vehicle ILIKE $3 OR registration_no ILIKE $3`
		args = append(args, likePattern(search))
	}

	query := `SELECT ` + customerColumns + ` FROM customers ` + filter + `
		ORDER BY updated_at DESC
		LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query customers", err)
	}
	defer rows.Close()

	customers, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.Customer])
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to collect customer rows", err)
	}

	countQuery := `SELECT COUNT(*) FROM customers`
	countArgs := []any{}
	if search != "" {
		countQuery += ` WHERE name ILIKE $1 OR contact ILIKE $1 OR vehicle ILIKE $1 OR registration_no ILIKE $1`
		countArgs = append(countArgs, likePattern(search))
	}
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count customers", err)
	}

	return customers, total, nil
}

func (r *PgxCustomerRepository) CountDocumentsByCustomerID(ctx context.Context, customerID int64) (int64, error) {
	var count int64
	err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE customer_id = $1;`, customerID).Scan(&count)
	if err != nil {
		return 0, apperrors.NewAppError(500, "failed to count documents for customer", err)
	}
	return count, nil
}

func (r *PgxCustomerRepository) FindRecentDocumentSummaries(ctx context.Context, customerIDs []int64, perCustomer int) (map[int64][]domain.DocumentSummary, error) {
	summaries := make(map[int64][]domain.DocumentSummary, len(customerIDs))
	if len(customerIDs) == 0 {
		return summaries, nil
	}

	query := `
		SELECT customer_id, document_id, type, total, created_at
		FROM (
			SELECT d.customer_id, d.document_id, d.type, d.total, d.created_at,
			       ROW_NUMBER() OVER (PARTITION BY d.customer_id ORDER BY d.updated_at DESC) AS rn
			FROM documents d
			WHERE d.customer_id = ANY($1)
		) ranked
		WHERE rn <= $2;
	`
	rows, err := r.Pool.Query(ctx, query, customerIDs, perCustomer)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query recent documents", err)
	}
	defer rows.Close()

	for rows.Next() {
		var customerID int64
		var s domain.DocumentSummary
		if err := rows.Scan(&customerID, &s.DocumentID, &s.Type, &s.Total, &s.CreatedAt); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan recent document row", err)
		}
		summaries[customerID] = append(summaries[customerID], s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating recent document rows", err)
	}

	return summaries, nil
}
