// Package shop routes requests in a multi-tenant Shopify embedded-app backend
// to a per-shop application instance, so one deployed service can serve many
// independently registered Shopify apps (one API key/secret pair per store)
// behind a single URL.
//
// The package is a thin adapter: OAuth flows, webhook verification, session
// persistence and Shopify API semantics all belong to the wrapped per-shop
// application object. What lives here is the request-to-tenant plumbing:
//
//   - Resolver extracts a shop domain from the request (dedicated header,
//     session-token claim, or query parameter, in that order).
//   - The raw domain is normalized with shopname.Sanitize into a stable key.
//   - Registry memoizes an expensive per-shop application object so it is
//     constructed at most once per shop for the lifetime of the process.
//   - Middleware wires the three together and attaches the resolved app to
//     the request context; Handle and Handlers adapt the app's composable
//     handler chains to the router.
//
// # Usage
//
//	registry := shop.NewRegistry(func(shopKey string) (*myapp.App, error) {
//		creds, err := provider.ByShop(context.Background(), shopKey)
//		if err != nil {
//			return nil, err
//		}
//		return myapp.New(creds)
//	})
//
//	r := chi.NewRouter()
//	r.Use(shop.Middleware(shop.NewShopResolver(nil), registry))
//	r.Get("/auth", shop.Handle(func(app *myapp.App) shop.Handlers {
//		return app.AuthBegin()
//	}))
//
// # Credential sources
//
// The registry never reads configuration itself; the factory decides where
// per-shop API credentials come from. CredentialsProvider implementations are
// included for the conventional sources: environment variables keyed by the
// sanitized shop name, a Postgres table, and a Redis read-through cache that
// can front either.
package shop
