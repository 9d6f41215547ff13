package httpx

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/praetor-app/praetor/pkg/jwtx"
	"github.com/praetor-app/praetor/pkg/slogx"
)

func AuthnMiddleware(codec *jwtx.Codec) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				writeBearerError(w, "no token provided")
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			ident, err := codec.Verify(raw, time.Now())
			if err != nil {
				writeBearerError(w, "invalid token")
				log.Warn("token verify failed", "err", err)
				return
			}

			// Inject into context for downstream handlers.
			ctx = contextWithIdentity(ctx, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func contextWithIdentity(ctx context.Context, ident jwtx.Identity) context.Context {
	ctx = context.WithValue(ctx, CtxKeyAccountID, ident.AccountID)
	ctx = context.WithValue(ctx, CtxKeyRole, ident.Role)
	return ctx
}

// RFC 6750-compliant error response for bearer auth, with a JSON body the
// client SDK can surface.
func writeBearerError(w http.ResponseWriter, desc string) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token", error_description="`+desc+`"`)
	WriteError(w, http.StatusUnauthorized, desc)
}
