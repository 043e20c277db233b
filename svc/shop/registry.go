package shop

import "sync"

// Factory constructs the per-shop application instance for a sanitized shop
// key. It is supplied once at registry construction, not per call.
type Factory[T any] func(shopKey string) (T, error)

// Registry memoizes per-shop application instances keyed by sanitized shop
// name. Entries are created lazily on first request for a shop and live for
// the lifetime of the process: there is no eviction, TTL or refresh. Growth
// is bounded by the number of distinct shops ever seen, which is acceptable
// because each entry is a long-lived per-tenant object.
//
// Construct one Registry at startup and inject it into the request pipeline;
// it is safe for concurrent use.
type Registry[T any] struct {
	mu      sync.Mutex
	factory Factory[T]
	apps    map[string]T
}

// NewRegistry creates a registry around the given factory.
// Panics on a nil factory to enforce fail-fast initialization.
func NewRegistry[T any](factory Factory[T]) *Registry[T] {
	if factory == nil {
		panic("shop: registry requires a factory")
	}
	return &Registry[T]{
		factory: factory,
		apps:    make(map[string]T),
	}
}

// Resolve returns the application instance for shopKey, invoking the factory
// on first use and caching the result. The mutex is held across the factory
// call so each shop's instance is constructed at most once even under
// concurrent requests; first-time constructions therefore serialize, which is
// fine for a factory that only assembles an SDK client from credentials.
//
// A factory error propagates to the caller and nothing is cached: the next
// Resolve for the same shop retries construction from scratch.
func (reg *Registry[T]) Resolve(shopKey string) (T, error) {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	if app, ok := reg.apps[shopKey]; ok {
		return app, nil
	}

	app, err := reg.factory(shopKey)
	if err != nil {
		var zero T
		return zero, err
	}

	reg.apps[shopKey] = app
	return app, nil
}

// Len reports how many shops have an instance constructed so far.
func (reg *Registry[T]) Len() int {
	reg.mu.Lock()
	defer reg.mu.Unlock()
	return len(reg.apps)
}
