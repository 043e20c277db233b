package shop

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/shopkit/pkg/shopname"
)

// Middleware creates HTTP middleware that resolves the shop for each request
// and attaches its application instance to the request context.
//
// The flow is extract -> sanitize -> registry -> context. Per-request
// behavior:
//   - an app already present in the context means some earlier stage resolved
//     the tenant; the registry is not consulted again for this request;
//   - a resolver error (malformed Authorization header) is logged and the
//     request continues with no app attached — accessing the app later is
//     then a contract violation, not an HTTP error here;
//   - an unresolved shop likewise continues untenanted;
//   - a factory construction failure goes to the error handler.
func Middleware[T any](resolver Resolver, registry *Registry[T], opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, skip := range cfg.skipPaths {
				if strings.HasPrefix(r.URL.Path, skip) {
					next.ServeHTTP(w, r)
					return
				}
			}

			// Resolution happens at most once per request.
			if _, ok := FromContext[T](r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			identifier, err := resolver(r)
			if err != nil {
				cfg.log.WarnContext(r.Context(), "shop extraction aborted", "error", err)
				next.ServeHTTP(w, r)
				return
			}
			if identifier == "" {
				next.ServeHTTP(w, r)
				return
			}

			shopKey := shopname.Sanitize(identifier)

			app, err := registry.Resolve(shopKey)
			if err != nil {
				cfg.log.ErrorContext(r.Context(), "shop app construction failed",
					"shop", shopKey, "error", err)
				cfg.errorHandler(w, r, err)
				return
			}

			ctx := WithApp(r.Context(), app)
			ctx = WithShopKey(ctx, shopKey)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireShop creates middleware that rejects requests without a resolved
// app in the context. Use it on routes that cannot serve untenanted traffic.
func RequireShop[T any](errorHandler ErrorHandler) func(http.Handler) http.Handler {
	if errorHandler == nil {
		errorHandler = defaultErrorHandler
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext[T](r.Context()); !ok {
				errorHandler(w, r, ErrNoShopInContext)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
