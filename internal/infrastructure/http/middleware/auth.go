package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
)

// AccessGuard authenticates a bearer token and binds the identity to the
// request context. Each step is terminal at first failure: extract the
// token, verify it, load the identity, then reject sessions issued before
// the latest password change.
type AccessGuard struct {
	tokens     ports.TokenService
	identities ports.IdentityStore
}

func NewAccessGuard(tokens ports.TokenService, identities ports.IdentityStore) *AccessGuard {
	return &AccessGuard{tokens: tokens, identities: identities}
}

func (g *AccessGuard) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth := r.Header.Get("Authorization")
		if auth == "" || !strings.HasPrefix(auth, "Bearer ") {
			writeErr(w, http.StatusUnauthorized, "not logged in, please login to access")
			return
		}
		tokenString := strings.TrimPrefix(auth, "Bearer ")

		// Signature and expiry failures collapse to one outcome here;
		// the token service keeps the kinds distinct for its callers.
		idStr, issuedAt, err := g.tokens.Verify(tokenString)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			writeErr(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		identity, err := g.identities.FindByID(r.Context(), id)
		if err != nil {
			writeErr(w, http.StatusInternalServerError, "internal error")
			return
		}
		// The identity may have been deleted after the token was issued.
		if identity == nil {
			writeErr(w, http.StatusUnauthorized, "user no longer exists")
			return
		}
		if identity.ChangedPasswordAfter(issuedAt) {
			writeErr(w, http.StatusUnauthorized, "password was recently changed, please login again")
			return
		}

		ctx := WithIdentity(r.Context(), identity)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
