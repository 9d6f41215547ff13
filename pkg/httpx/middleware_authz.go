package httpx

import "net/http"

// RequireRole the caller must hold exactly the given role. Requests that never
// passed authentication get a 401; authenticated callers with a different role
// get a 403. Meant to be chained after AuthnMiddleware.
func RequireRole(required string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := RoleFromContext(r.Context())
			if have == "" {
				writeBearerError(w, "no token provided")
				return
			}
			if have != required {
				w.Header().Set("WWW-Authenticate", `Bearer error="insufficient_scope"`)
				WriteError(w, http.StatusForbidden, "forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
