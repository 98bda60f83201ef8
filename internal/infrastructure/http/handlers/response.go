package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hyhong-code/tour-selling-api/internal/domain"
	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
)

// writeJSON sends v with the given status code.
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeErr sends JSON { "status": "error", "message": message }.
func writeErr(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"status": "error", "message": message})
}

// writeDomainErr maps a sentinel error to its HTTP status. Anything outside
// the taxonomy is a 500 with a generic message so store and driver internals
// never leak to the client.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domerrors.ErrInvalidCredentials):
		writeErr(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domerrors.ErrUnauthenticated),
		errors.Is(err, domerrors.ErrTokenExpired),
		errors.Is(err, domerrors.ErrTokenInvalid):
		writeErr(w, http.StatusUnauthorized, "not logged in, please login to access")
	case errors.Is(err, domerrors.ErrForbidden):
		writeErr(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domerrors.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domerrors.ErrResetTokenInvalid):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domerrors.ErrEmailTaken):
		writeErr(w, http.StatusConflict, err.Error())
	case errors.Is(err, domerrors.ErrValidation):
		writeErr(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domerrors.ErrDeliveryFailed):
		writeErr(w, http.StatusInternalServerError, "error sending email, try again later")
	default:
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

// identityView is the redacted identity returned in responses. No password
// material ever appears here.
func identityView(i *domain.Identity) map[string]interface{} {
	return map[string]interface{}{
		"id":         i.ID.String(),
		"name":       i.Name,
		"email":      i.Email,
		"role":       string(i.Role),
		"created_at": i.CreatedAt,
	}
}
