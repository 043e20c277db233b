package shop

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
)

const (
	// DefaultShopDomainHeader is the header Shopify sets on webhook and app
	// proxy requests to identify the originating store.
	DefaultShopDomainHeader = "X-Shopify-Shop-Domain"

	// DefaultShopQueryParam is the query parameter carrying the shop domain
	// on embedded-app entry requests.
	DefaultShopQueryParam = "shop"
)

// Resolver extracts a shop domain from an HTTP request.
// Returns empty string if this channel yields nothing; a non-nil error aborts
// extraction for the request entirely (the shop stays unresolved).
type Resolver func(r *http.Request) (string, error)

// NewHeaderResolver extracts the shop domain from a dedicated header.
// Defaults to "X-Shopify-Shop-Domain" if headerName is empty. The value is
// used as-is apart from whitespace trimming.
func NewHeaderResolver(headerName string) Resolver {
	if headerName == "" {
		headerName = DefaultShopDomainHeader
	}

	return func(r *http.Request) (string, error) {
		return strings.TrimSpace(r.Header.Get(headerName)), nil
	}
}

// sessionTokenClaims is the single claim the resolver reads from a session
// token payload. The dest claim carries the shop's admin URL.
type sessionTokenClaims struct {
	Dest string `json:"dest"`
}

// NewSessionTokenResolver extracts the shop domain from the dest claim of a
// "Authorization: Bearer <token>" session token.
//
// The token's payload segment is decoded as base64url JSON without signature
// verification: the resolver only needs a routing hint to pick the tenant,
// and verification requires the per-shop secret that is known only after the
// tenant has been resolved. Actual authentication happens in the wrapped
// app's session-validation chain.
//
// A missing Authorization header yields no shop. A header that is not in
// "Bearer <token>" shape returns ErrMalformedAuthHeader, which aborts
// extraction for the request. Decode failures (bad base64, bad JSON, missing
// claim) are logged and yield no shop so later channels can still match.
func NewSessionTokenResolver(log *slog.Logger) Resolver {
	if log == nil {
		log = slog.Default()
	}

	return func(r *http.Request) (string, error) {
		header := r.Header.Get("Authorization")
		if header == "" {
			return "", nil
		}

		scheme, token, found := strings.Cut(header, " ")
		if !found || scheme != "Bearer" || strings.TrimSpace(token) == "" {
			return "", ErrMalformedAuthHeader
		}

		dest, err := shopFromSessionToken(strings.TrimSpace(token))
		if err != nil {
			log.WarnContext(r.Context(), "failed to read shop from session token", "error", err)
			return "", nil
		}

		return dest, nil
	}
}

// shopFromSessionToken decodes the payload segment of a JWT-shaped token and
// returns the dest claim with any https:// prefix stripped.
func shopFromSessionToken(token string) (string, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return "", fmt.Errorf("%w: expected 3 segments, got %d", ErrInvalidSessionToken, len(segments))
	}

	payload, err := base64.RawURLEncoding.DecodeString(segments[1])
	if err != nil {
		return "", fmt.Errorf("%w: payload is not base64url: %w", ErrInvalidSessionToken, err)
	}

	var claims sessionTokenClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return "", fmt.Errorf("%w: payload is not JSON: %w", ErrInvalidSessionToken, err)
	}

	if claims.Dest == "" {
		return "", fmt.Errorf("%w: missing dest claim", ErrInvalidSessionToken)
	}

	return strings.TrimPrefix(claims.Dest, "https://"), nil
}

// NewQueryResolver extracts the shop domain from a query parameter.
// Defaults to "shop" if param is empty. When the parameter is supplied
// multiple times only the first value is used.
func NewQueryResolver(param string) Resolver {
	if param == "" {
		param = DefaultShopQueryParam
	}

	return func(r *http.Request) (string, error) {
		values := r.URL.Query()[param]
		if len(values) == 0 {
			return "", nil
		}
		return strings.TrimSpace(values[0]), nil
	}
}

// NewCompositeResolver tries resolvers in order, returning the first
// non-empty result. Any resolver error aborts extraction immediately.
func NewCompositeResolver(resolvers ...Resolver) Resolver {
	return func(r *http.Request) (string, error) {
		for _, resolve := range resolvers {
			shop, err := resolve(r)
			if err != nil {
				return "", err
			}
			if shop != "" {
				return shop, nil
			}
		}
		return "", nil
	}
}

// NewShopResolver returns the default extraction chain: dedicated header,
// then session-token dest claim, then query parameter. The header wins
// because it is the most explicit client signal; the query parameter loses
// because it is the easiest channel to leave stale. The logger receives
// session-token decode failures; nil means slog.Default().
func NewShopResolver(log *slog.Logger) Resolver {
	return NewCompositeResolver(
		NewHeaderResolver(""),
		NewSessionTokenResolver(log),
		NewQueryResolver(""),
	)
}
