package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/mwaqasali/garage_invoice_app/internal/core/ports/repositories"
)

// NewRepositoryProvider wires all pgx repositories onto one pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo: newPgxCustomerRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
		CatalogRepo:  newPgxCatalogRepository(dbPool),
	}
}
