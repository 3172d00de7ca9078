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

type PgxCatalogRepository struct {
	BaseRepository
}

// newPgxCatalogRepository creates a new repository for the line-item
// description catalog.
func newPgxCatalogRepository(pool *pgxpool.Pool) portsrepo.CatalogRepositoryFacade {
	return &PgxCatalogRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CatalogRepositoryFacade = (*PgxCatalogRepository)(nil)

func (r *PgxCatalogRepository) SaveCatalogItem(ctx context.Context, item *domain.CatalogItem) error {
	// No uniqueness constraint on description: duplicates are allowed.
	query := `
		INSERT INTO catalog_items (description, created_at)
		VALUES ($1, $2)
		RETURNING catalog_item_id;
	`
	err := r.Pool.QueryRow(ctx, query, item.Description, item.CreatedAt).Scan(&item.CatalogItemID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert catalog item", err)
	}
	return nil
}

func (r *PgxCatalogRepository) FindCatalogItemByID(ctx context.Context, catalogItemID int64) (*domain.CatalogItem, error) {
	query := `SELECT catalog_item_id, description, created_at FROM catalog_items WHERE catalog_item_id = $1;`

	var item domain.CatalogItem
	err := r.Pool.QueryRow(ctx, query, catalogItemID).Scan(
		&item.CatalogItemID,
		&item.Description,
		&item.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("catalog item not found")
		}
		return nil, apperrors.NewAppError(500, "failed to find catalog item", err)
	}
	return &item, nil
}

func (r *PgxCatalogRepository) UpdateCatalogItem(ctx context.Context, item domain.CatalogItem) error {
	tag, err := r.Pool.Exec(ctx, `UPDATE catalog_items SET description = $2 WHERE catalog_item_id = $1;`,
		item.CatalogItemID, item.Description)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update catalog item", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("catalog item not found")
	}
	return nil
}

func (r *PgxCatalogRepository) DeleteCatalogItem(ctx context.Context, catalogItemID int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM catalog_items WHERE catalog_item_id = $1;`, catalogItemID)
	if err != nil {
		return apperrors.NewAppError(500, "failed to delete catalog item", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("catalog item not found")
	}
	return nil
}

func (r *PgxCatalogRepository) ListCatalogItems(ctx context.Context, search string, limit, offset int) ([]domain.CatalogItem, int64, error) {
	filter := ``
	args := []any{limit, offset}
	if search != "" {
		filter = `WHERE description ILIKE $3`
		args = append(args, likePattern(search))
	}

	query := `SELECT catalog_item_id, description, created_at FROM catalog_items ` + filter + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;`
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to query catalog items", err)
	}
	defer rows.Close()

	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[domain.CatalogItem])
	if err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to collect catalog item rows", err)
	}

	countQuery := `SELECT COUNT(*) FROM catalog_items`
	countArgs := []any{}
	if search != "" {
		countQuery += ` WHERE description ILIKE $1`
		countArgs = append(countArgs, likePattern(search))
	}
	var total int64
	if err := r.Pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperrors.NewAppError(500, "failed to count catalog items", err)
	}

	return items, total, nil
}
