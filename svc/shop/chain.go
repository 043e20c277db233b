package shop

import "net/http"

// ChainHandler is one step of a composable handler chain. A returned error
// terminates the chain and goes to the configured ErrorHandler.
type ChainHandler func(w http.ResponseWriter, r *http.Request) error

// Handlers is what a per-shop application hands back for a route: either a
// single handler or an ordered sequence of composable ones (an auth-begin
// redirect is a single handler, a session-validation chain is a sequence).
// Modeling both as one value gives callers a uniform call shape.
type Handlers struct {
	chain []ChainHandler
}

// Single wraps one handler.
func Single(h ChainHandler) Handlers {
	return Handlers{chain: []ChainHandler{h}}
}

// Sequence wraps an ordered chain of handlers.
func Sequence(hs ...ChainHandler) Handlers {
	return Handlers{chain: hs}
}

// Serve executes the chain in order, short-circuiting as soon as either a
// sub-handler returns an error or an earlier sub-handler has already written
// a response. An already-written response is an implicit "stop processing"
// signal and is not an error.
//
// proceed reports whether the chain ran to completion without writing a
// response, i.e. whether the caller may continue handling the request.
func (h Handlers) Serve(w http.ResponseWriter, r *http.Request) (proceed bool, err error) {
	rec := &writeRecorder{ResponseWriter: w}
	for _, sub := range h.chain {
		if rec.written {
			return false, nil
		}
		if err := sub(rec, r); err != nil {
			return false, err
		}
	}
	return !rec.written, nil
}

// Handle adapts a per-shop application's handler chains to the router. The
// provide callback receives the app resolved by Middleware for the current
// request; calling the returned handler on an unresolved request panics via
// MustFromContext.
//
//	r.Get("/auth", shop.Handle(func(app *myapp.App) shop.Handlers {
//		return app.AuthBegin()
//	}))
func Handle[T any](provide func(app T) Handlers, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts...)

	return func(w http.ResponseWriter, r *http.Request) {
		app := MustFromContext[T](r.Context())
		if _, err := provide(app).Serve(w, r); err != nil {
			cfg.errorHandler(w, r, err)
		}
	}
}

// Use is the middleware form of Handle: the chain runs before next, and next
// is only reached when the chain completes without writing a response. A
// session-validation chain slots in front of an API subtree this way.
func Use[T any](provide func(app T) Handlers, opts ...Option) func(http.Handler) http.Handler {
	cfg := newConfig(opts...)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			app := MustFromContext[T](r.Context())
			proceed, err := provide(app).Serve(w, r)
			if err != nil {
				cfg.errorHandler(w, r, err)
				return
			}
			if !proceed {
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeRecorder tracks whether anything has been written to the response,
// which is what lets Serve treat "response already sent" as a stop signal.
type writeRecorder struct {
	http.ResponseWriter
	written bool
}

func (w *writeRecorder) WriteHeader(statusCode int) {
	w.written = true
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *writeRecorder) Write(b []byte) (int, error) {
	w.written = true
	return w.ResponseWriter.Write(b)
}

// Flush counts as a write: a sub-handler that streams its response must
// short-circuit the chain like one that buffers it.
func (w *writeRecorder) Flush() {
	w.written = true
	if f, ok := w.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Unwrap exposes the underlying writer to http.ResponseController.
func (w *writeRecorder) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
