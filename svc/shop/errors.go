package shop

import "errors"

var (
	// ErrMalformedAuthHeader is returned when an Authorization header is
	// present but is not in "Bearer <token>" form. Extraction aborts for the
	// request rather than falling through to other channels.
	ErrMalformedAuthHeader = errors.New("malformed authorization header")

	// ErrInvalidSessionToken is returned when a bearer token cannot be
	// decoded or lacks the dest claim. Treated as "no shop from this
	// channel", not as a request failure.
	ErrInvalidSessionToken = errors.New("invalid session token")

	// ErrNoShopInContext is returned when a guarded route is reached without
	// a resolved shop app in the request context.
	ErrNoShopInContext = errors.New("no shop app in context")

	// ErrCredentialsNotFound is returned when a provider has no credentials
	// for the requested shop.
	ErrCredentialsNotFound = errors.New("shop credentials not found")
)
