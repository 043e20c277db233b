package shop

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGCredentialsProvider loads per-shop credentials from Postgres. The pool is
// constructor-injected; the provider does not own the table's lifecycle.
// Expected schema:
//
//	CREATE TABLE shopify_credentials (
//		id         uuid PRIMARY KEY,
//		shop_key   text UNIQUE NOT NULL,
//		domain     text NOT NULL,
//		api_key    text NOT NULL,
//		api_secret text NOT NULL,
//		scopes     text NOT NULL DEFAULT '',
//		created_at timestamptz NOT NULL DEFAULT now()
//	);
type PGCredentialsProvider struct {
	pool *pgxpool.Pool
}

// NewPGCredentialsProvider creates a Postgres-backed provider.
// Panics on a nil pool to enforce fail-fast initialization.
func NewPGCredentialsProvider(pool *pgxpool.Pool) *PGCredentialsProvider {
	if pool == nil {
		panic("shop: pg provider requires a pool")
	}
	return &PGCredentialsProvider{pool: pool}
}

// ByShop retrieves credentials by sanitized shop key.
func (p *PGCredentialsProvider) ByShop(ctx context.Context, shopKey string) (*Credentials, error) {
	const query = `
		SELECT id, shop_key, domain, api_key, api_secret, scopes, created_at
		FROM shopify_credentials
		WHERE shop_key = $1`

	var c Credentials
	err := p.pool.QueryRow(ctx, query, shopKey).Scan(
		&c.ID, &c.ShopKey, &c.Domain, &c.APIKey, &c.APISecret, &c.Scopes, &c.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrCredentialsNotFound
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}
