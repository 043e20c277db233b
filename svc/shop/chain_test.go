package shop_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shopkit/svc/shop"
)

func TestHandlers_Serve(t *testing.T) {
	t.Parallel()

	t.Run("single handler runs", func(t *testing.T) {
		t.Parallel()

		chain := shop.Single(func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusAccepted)
			return nil
		})

		w := httptest.NewRecorder()
		proceed, err := chain.Serve(w, httptest.NewRequest("GET", "/", nil))

		require.NoError(t, err)
		assert.False(t, proceed, "a written response means the request is done")
		assert.Equal(t, http.StatusAccepted, w.Code)
	})

	t.Run("sequence runs in order", func(t *testing.T) {
		t.Parallel()

		var order []int
		chain := shop.Sequence(
			func(w http.ResponseWriter, r *http.Request) error {
				order = append(order, 1)
				return nil
			},
			func(w http.ResponseWriter, r *http.Request) error {
				order = append(order, 2)
				return nil
			},
		)

		proceed, err := chain.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		require.NoError(t, err)
		assert.True(t, proceed, "nothing written, caller may continue")
		assert.Equal(t, []int{1, 2}, order)
	})

	t.Run("short-circuits after a response is sent", func(t *testing.T) {
		t.Parallel()

		secondRan := false
		chain := shop.Sequence(
			func(w http.ResponseWriter, r *http.Request) error {
				http.Redirect(w, r, "https://example.com/auth", http.StatusFound)
				return nil
			},
			func(w http.ResponseWriter, r *http.Request) error {
				secondRan = true
				return nil
			},
		)

		w := httptest.NewRecorder()
		proceed, err := chain.Serve(w, httptest.NewRequest("GET", "/", nil))

		require.NoError(t, err, "an already-sent response is a stop signal, not an error")
		assert.False(t, proceed)
		assert.False(t, secondRan)
		assert.Equal(t, http.StatusFound, w.Code)
	})

	t.Run("short-circuits after a streamed flush", func(t *testing.T) {
		t.Parallel()

		secondRan := false
		chain := shop.Sequence(
			func(w http.ResponseWriter, r *http.Request) error {
				// Streaming handlers flush instead of buffering; that
				// still means the response is on the wire.
				return http.NewResponseController(w).Flush()
			},
			func(w http.ResponseWriter, r *http.Request) error {
				secondRan = true
				return nil
			},
		)

		w := httptest.NewRecorder()
		proceed, err := chain.Serve(w, httptest.NewRequest("GET", "/", nil))

		require.NoError(t, err)
		assert.False(t, proceed)
		assert.False(t, secondRan)
		assert.True(t, w.Flushed)
	})

	t.Run("short-circuits on error", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("session invalid")
		secondRan := false
		chain := shop.Sequence(
			func(w http.ResponseWriter, r *http.Request) error {
				return boom
			},
			func(w http.ResponseWriter, r *http.Request) error {
				secondRan = true
				return nil
			},
		)

		proceed, err := chain.Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))

		assert.ErrorIs(t, err, boom, "the error must reach the caller unchanged")
		assert.False(t, proceed)
		assert.False(t, secondRan)
	})

	t.Run("empty chain proceeds", func(t *testing.T) {
		t.Parallel()

		proceed, err := shop.Sequence().Serve(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
		require.NoError(t, err)
		assert.True(t, proceed)
	})
}

func TestHandle(t *testing.T) {
	t.Parallel()

	t.Run("dispatches into the resolved app", func(t *testing.T) {
		t.Parallel()

		app := &testApp{shopKey: "ACME"}
		handler := shop.Handle(func(got *testApp) shop.Handlers {
			assert.Same(t, app, got)
			return shop.Single(func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusOK)
				return nil
			})
		})

		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(shop.WithApp(req.Context(), app))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("panics on unresolved request", func(t *testing.T) {
		t.Parallel()

		handler := shop.Handle(func(app *testApp) shop.Handlers {
			return shop.Sequence()
		})

		assert.Panics(t, func() {
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
		})
	})

	t.Run("chain error goes to the error handler", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("chain failed")
		var handled error
		handler := shop.Handle(func(app *testApp) shop.Handlers {
			return shop.Single(func(w http.ResponseWriter, r *http.Request) error {
				return boom
			})
		}, shop.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
			handled = err
			w.WriteHeader(http.StatusInternalServerError)
		}))

		req := httptest.NewRequest("GET", "/", nil)
		req = req.WithContext(shop.WithApp(req.Context(), &testApp{shopKey: "ACME"}))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		assert.ErrorIs(t, handled, boom)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUse(t *testing.T) {
	t.Parallel()

	newGuardedHandler := func(chain shop.Handlers, next http.HandlerFunc, opts ...shop.Option) http.Handler {
		mw := shop.Use(func(app *testApp) shop.Handlers { return chain }, opts...)
		return mw(next)
	}

	withApp := func(r *http.Request) *http.Request {
		return r.WithContext(shop.WithApp(r.Context(), &testApp{shopKey: "ACME"}))
	}

	t.Run("clean chain falls through to next", func(t *testing.T) {
		t.Parallel()

		nextRan := false
		handler := newGuardedHandler(
			shop.Sequence(func(w http.ResponseWriter, r *http.Request) error { return nil }),
			func(w http.ResponseWriter, r *http.Request) { nextRan = true },
		)

		handler.ServeHTTP(httptest.NewRecorder(), withApp(httptest.NewRequest("GET", "/", nil)))
		assert.True(t, nextRan)
	})

	t.Run("responding chain stops the request", func(t *testing.T) {
		t.Parallel()

		handler := newGuardedHandler(
			shop.Single(func(w http.ResponseWriter, r *http.Request) error {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return nil
			}),
			func(w http.ResponseWriter, r *http.Request) { t.Fatal("next must not run") },
		)

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, withApp(httptest.NewRequest("GET", "/", nil)))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("chain error stops the request", func(t *testing.T) {
		t.Parallel()

		var handled error
		handler := newGuardedHandler(
			shop.Single(func(w http.ResponseWriter, r *http.Request) error {
				return errors.New("nope")
			}),
			func(w http.ResponseWriter, r *http.Request) { t.Fatal("next must not run") },
			shop.WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
				handled = err
			}),
		)

		handler.ServeHTTP(httptest.NewRecorder(), withApp(httptest.NewRequest("GET", "/", nil)))
		assert.Error(t, handled)
	})
}
