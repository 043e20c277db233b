package shop

import (
	"errors"
	"log/slog"
	"net/http"
)

// ErrorHandler handles errors surfaced by the middleware and handler chains:
// factory construction failures and sub-handler errors.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// config holds middleware and handler-adapter configuration.
type config struct {
	log          *slog.Logger
	errorHandler ErrorHandler
	skipPaths    []string
}

// Option configures Middleware and Handle.
type Option func(*config)

// WithLogger sets the logger for extraction warnings and construction
// failures. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		if log != nil {
			c.log = log
		}
	}
}

// WithErrorHandler sets a custom error handler.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(c *config) {
		if handler != nil {
			c.errorHandler = handler
		}
	}
}

// WithSkipPaths sets path prefixes that bypass shop resolution entirely.
func WithSkipPaths(paths ...string) Option {
	return func(c *config) {
		c.skipPaths = append(c.skipPaths, paths...)
	}
}

func newConfig(opts ...Option) *config {
	cfg := &config{
		log:          slog.Default(),
		errorHandler: defaultErrorHandler,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func defaultErrorHandler(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, ErrNoShopInContext):
		http.Error(w, "Shop not resolved", http.StatusUnauthorized)
	case errors.Is(err, ErrCredentialsNotFound):
		http.Error(w, "Unknown shop", http.StatusNotFound)
	default:
		// Anything else surfacing here is a failed app construction or a
		// failed handler chain: the upstream dependency is at fault.
		http.Error(w, "Shop app unavailable", http.StatusBadGateway)
	}
}
