package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/praetor-app/praetor/pkg/httpx"
	"github.com/praetor-app/praetor/pkg/jwtx"
)

func newTestCodec(t *testing.T) *jwtx.Codec {
	t.Helper()
	codec, err := jwtx.NewCodec([]byte("test-secret-test-secret-test-secret"), "praetor-test", 15*time.Minute)
	require.NoError(t, err)
	return codec
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthnMiddleware(t *testing.T) {
	codec := newTestCodec(t)

	handler := httpx.Chain(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Identity should be injected.
			require.NotEmpty(t, httpx.AccountIDFromContext(r.Context()))
			require.NotEmpty(t, httpx.RoleFromContext(r.Context()))
			w.WriteHeader(http.StatusOK)
		}),
		httpx.AuthnMiddleware(codec),
	)

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "no token provided")
	})

	t.Run("non-bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "no token provided")
	})

	t.Run("garbage token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer not.a.jwt")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid token")
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := codec.Issue("01ARZ3NDEKTSV4RRFFQ69G5FAV", "member", time.Now().Add(-time.Hour))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Contains(t, rec.Body.String(), "invalid token")
	})

	t.Run("valid token passes", func(t *testing.T) {
		token, err := codec.Issue("01ARZ3NDEKTSV4RRFFQ69G5FAV", "member", time.Now())
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	codec := newTestCodec(t)

	adminOnly := httpx.Chain(okHandler(),
		httpx.AuthnMiddleware(codec),
		httpx.RequireRole("administrator"),
	)

	do := func(t *testing.T, h http.Handler, token string) *httptest.ResponseRecorder {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("administrator allowed", func(t *testing.T) {
		token, err := codec.Issue("01ARZ3NDEKTSV4RRFFQ69G5FAV", "administrator", time.Now())
		require.NoError(t, err)

		rec := do(t, adminOnly, token)
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("member forbidden", func(t *testing.T) {
		token, err := codec.Issue("01ARZ3NDEKTSV4RRFFQ69G5FAV", "member", time.Now())
		require.NoError(t, err)

		rec := do(t, adminOnly, token)
		require.Equal(t, http.StatusForbidden, rec.Code)
		require.Contains(t, rec.Body.String(), "forbidden")
	})

	t.Run("unauthenticated gets 401 not 403", func(t *testing.T) {
		rec := do(t, adminOnly, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("role gate without authn still 401", func(t *testing.T) {
		// RequireRole chained alone must never report a role mismatch for
		// requests that carry no identity at all.
		bare := httpx.Chain(okHandler(), httpx.RequireRole("administrator"))
		rec := do(t, bare, "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) httpx.Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := httpx.Chain(okHandler(), mark("outer"), mark("inner"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, []string{"outer", "inner"}, order)
}
