package shop

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Credentials is one shop's app registration: the API key/secret pair the
// per-shop application instance is constructed from.
type Credentials struct {
	ID        uuid.UUID `json:"id"`
	ShopKey   string    `json:"shop_key"`
	Domain    string    `json:"domain"`
	APIKey    string    `json:"api_key"`
	APISecret string    `json:"api_secret"`
	Scopes    string    `json:"scopes"`
	CreatedAt time.Time `json:"created_at"`
}

// CredentialsProvider loads per-shop credentials from a data source. It is
// the conventional input to a registry Factory; the registry itself never
// touches configuration.
type CredentialsProvider interface {
	// ByShop retrieves credentials by sanitized shop key.
	// Returns ErrCredentialsNotFound if the shop is not registered.
	ByShop(ctx context.Context, shopKey string) (*Credentials, error)
}
