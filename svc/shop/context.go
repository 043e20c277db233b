package shop

import (
	"context"
	"log/slog"
)

// appContextKey prevents collisions with other packages using context values
type appContextKey struct{}

// keyContextKey holds the sanitized shop key alongside the app instance
type keyContextKey struct{}

// WithApp attaches a resolved per-shop application instance to the context.
func WithApp[T any](ctx context.Context, app T) context.Context {
	return context.WithValue(ctx, appContextKey{}, app)
}

// FromContext retrieves the per-shop application instance from the context.
// Returns the zero value and false if no app of type T is attached.
func FromContext[T any](ctx context.Context) (T, bool) {
	app, ok := ctx.Value(appContextKey{}).(T)
	return app, ok
}

// MustFromContext retrieves the per-shop application instance and panics if
// none is attached. Calling it before resolution has happened for the request
// is a programming-contract violation, not a recoverable runtime condition.
func MustFromContext[T any](ctx context.Context) T {
	app, ok := FromContext[T](ctx)
	if !ok {
		panic("shop: no app in context")
	}
	return app
}

// WithShopKey attaches the sanitized shop key to the context.
// Middleware does this automatically next to WithApp.
func WithShopKey(ctx context.Context, shopKey string) context.Context {
	return context.WithValue(ctx, keyContextKey{}, shopKey)
}

// ShopKeyFromContext retrieves the sanitized shop key from the context.
func ShopKeyFromContext(ctx context.Context) (string, bool) {
	key, ok := ctx.Value(keyContextKey{}).(string)
	return key, ok
}

// LoggerExtractor returns a function that enriches log records with the
// resolved shop key.
func LoggerExtractor() func(ctx context.Context) (slog.Attr, bool) {
	return func(ctx context.Context) (slog.Attr, bool) {
		if key, ok := ShopKeyFromContext(ctx); ok {
			return slog.String("shop", key), true
		}
		return slog.Attr{}, false
	}
}
