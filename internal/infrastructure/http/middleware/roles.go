package middleware

import (
	"net/http"

	"github.com/hyhong-code/tour-selling-api/internal/domain"
)

// RequireRoles allows the request through only when the bound identity's
// role is in the allow-set. It must run after AccessGuard.Authenticate.
func RequireRoles(roles ...domain.Role) func(http.Handler) http.Handler {
	allowed := make(map[domain.Role]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFromContext(r.Context())
			if identity == nil {
				writeErr(w, http.StatusUnauthorized, "not logged in, please login to access")
				return
			}
			if _, ok := allowed[identity.Role]; !ok {
				writeErr(w, http.StatusForbidden, "you do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
