package handlers

import (
	"net/http"

	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/middleware"
)

type UsersHandler struct{}

func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

// Me returns the identity the access guard bound to the request.
func (h *UsersHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, "not logged in, please login to access")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"identity": identityView(identity)},
	})
}
