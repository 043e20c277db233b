package shop

import (
	"context"
	"errors"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/dmitrymomot/shopkit/pkg/shopname"
)

// envCredentials maps the per-shop environment variables. The sanitized shop
// key is prepended as a prefix at parse time, so a shop sanitized to
// "MY_STORE" reads MY_STORE_SHOPIFY_API_KEY and so on.
type envCredentials struct {
	APIKey    string `env:"SHOPIFY_API_KEY,required"`
	APISecret string `env:"SHOPIFY_API_SECRET,required"`
	Scopes    string `env:"SHOPIFY_SCOPES" envDefault:""`
}

// EnvCredentialsProvider reads per-shop credentials from environment
// variables keyed by the sanitized shop name. A .env file is loaded once on
// first use if present.
type EnvCredentialsProvider struct {
	dotenvOnce sync.Once
}

// NewEnvCredentialsProvider creates an environment-backed provider.
func NewEnvCredentialsProvider() *EnvCredentialsProvider {
	return &EnvCredentialsProvider{}
}

// ByShop parses the shop's environment variables into a Credentials record.
// Missing required variables map to ErrCredentialsNotFound: an unset key pair
// means the shop is simply not registered with this deployment.
func (p *EnvCredentialsProvider) ByShop(ctx context.Context, shopKey string) (*Credentials, error) {
	p.dotenvOnce.Do(func() {
		// The .env file is optional; ignore a missing one.
		_ = godotenv.Load()
	})

	var ec envCredentials
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: shopKey + "_"}); err != nil {
		return nil, errors.Join(ErrCredentialsNotFound, err)
	}

	return &Credentials{
		ID:        uuid.New(),
		ShopKey:   shopKey,
		Domain:    shopname.Domain(shopKey),
		APIKey:    ec.APIKey,
		APISecret: ec.APISecret,
		Scopes:    ec.Scopes,
	}, nil
}
