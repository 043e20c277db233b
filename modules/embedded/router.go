// Package embedded provides a mountable router for the HTTP surface every
// Shopify embedded app shares: OAuth entry and callback paths plus a
// session-guarded API subtree. The actual auth and session semantics stay
// inside the per-shop application instance; the router only resolves the
// tenant and dispatches into the app's handler chains.
package embedded

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/shopkit/svc/shop"
)

// App is the capability surface the router needs from a per-shop application
// instance. Each method returns a handler chain owned by the wrapped SDK.
type App interface {
	// AuthBegin starts the OAuth flow (typically a redirect to Shopify).
	AuthBegin() shop.Handlers

	// AuthCallback completes the OAuth flow and persists the session.
	AuthCallback() shop.Handlers

	// EnsureSession validates the request's session, responding itself
	// (redirect or 401) when validation fails.
	EnsureSession() shop.Handlers
}

// RouterOptions configures the embedded-app router.
type RouterOptions struct {
	// Resolver overrides the default extraction chain (header, then
	// session-token claim, then query parameter).
	Resolver shop.Resolver

	// API is mounted under /api behind the session-validation chain.
	API http.Handler

	// Options are passed through to the shop middleware and handler
	// adapters (logger, error handler, skip paths).
	Options []shop.Option
}

// Router creates the embedded-app router on top of a shop registry.
//
//	r := chi.NewRouter()
//	r.Mount("/shopify", embedded.Router(registry, embedded.RouterOptions{
//		API: apiRouter,
//	}))
func Router[T App](registry *shop.Registry[T], opts RouterOptions) chi.Router {
	resolver := opts.Resolver
	if resolver == nil {
		resolver = shop.NewShopResolver(nil)
	}

	r := chi.NewRouter()
	r.Use(shop.Middleware(resolver, registry, opts.Options...))
	// Every route below dispatches into a per-shop app, so untenanted
	// requests (no header, no token, no shop parameter) are rejected here
	// rather than reaching a handler chain with no app to run.
	r.Use(shop.RequireShop[T](nil))

	r.Get("/auth", shop.Handle(func(app T) shop.Handlers {
		return app.AuthBegin()
	}, opts.Options...))
	r.Get("/auth/callback", shop.Handle(func(app T) shop.Handlers {
		return app.AuthCallback()
	}, opts.Options...))

	if opts.API != nil {
		r.Route("/api", func(api chi.Router) {
			// Session validation runs in front of every API handler; the
			// chain responding (redirect, 401) stops the request.
			api.Use(shop.Use(func(app T) shop.Handlers {
				return app.EnsureSession()
			}, opts.Options...))
			api.Mount("/", opts.API)
		})
	}

	return r
}
