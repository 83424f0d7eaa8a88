package plans

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewCatalog creates a postgres-backed catalog when a pool is provided,
// otherwise the in-memory default set.
func NewCatalog(ctx context.Context, pool *pgxpool.Pool) (Catalog, error) {
	if pool == nil {
		return NewInMemoryCatalog(nil), nil
	}
	return NewPostgresCatalog(ctx, pool)
}
