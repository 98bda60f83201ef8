package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/middleware"
)

type ReviewsHandler struct {
	reviews  ports.ReviewStore
	tours    ports.TourStore
	validate *validator.Validate
	log      zerolog.Logger
}

func NewReviewsHandler(reviews ports.ReviewStore, tours ports.TourStore, log zerolog.Logger) *ReviewsHandler {
	return &ReviewsHandler{reviews: reviews, tours: tours, validate: validator.New(), log: log}
}

type reviewBody struct {
	Rating int    `json:"rating" validate:"required,min=1,max=5"`
	Review string `json:"review" validate:"required,max=2000"`
}

func (h *ReviewsHandler) ListByTour(w http.ResponseWriter, r *http.Request) {
	tourID, err := uuid.Parse(chi.URLParam(r, "tourID"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid tour id")
		return
	}
	reviews, err := h.reviews.ListByTour(r.Context(), tourID)
	if err != nil {
		h.log.Error().Err(err).Msg("list reviews failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": len(reviews),
		"data":    map[string]interface{}{"reviews": reviews},
	})
}

// Create binds the tour id from the URL and the author from the request
// context; neither is accepted from the body.
func (h *ReviewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, "not logged in, please login to access")
		return
	}
	tourID, err := uuid.Parse(chi.URLParam(r, "tourID"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid tour id")
		return
	}
	tour, err := h.tours.GetByID(r.Context(), tourID)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if tour == nil {
		writeErr(w, http.StatusNotFound, "no tour found with that id")
		return
	}
	var body reviewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	review := &domain.Review{
		ID:         uuid.New(),
		TourID:     tourID,
		IdentityID: identity.ID,
		Rating:     body.Rating,
		Body:       body.Review,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := h.reviews.Create(r.Context(), review); err != nil {
		h.log.Error().Err(err).Msg("create review failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"review": review},
	})
}

func (h *ReviewsHandler) Update(w http.ResponseWriter, r *http.Request) {
	review, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	var body reviewBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	review.Rating = body.Rating
	review.Body = body.Review
	review.UpdatedAt = time.Now()
	if err := h.reviews.Update(r.Context(), review); err != nil {
		h.log.Error().Err(err).Msg("update review failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"review": review},
	})
}

func (h *ReviewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	review, ok := h.loadOwned(w, r)
	if !ok {
		return
	}
	if err := h.reviews.Delete(r.Context(), review.ID); err != nil {
		h.log.Error().Err(err).Msg("delete review failed")
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// loadOwned fetches the review and enforces that the caller is its author or
// an admin. Writes the error response itself when the check fails.
func (h *ReviewsHandler) loadOwned(w http.ResponseWriter, r *http.Request) (*domain.Review, bool) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, "not logged in, please login to access")
		return nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid review id")
		return nil, false
	}
	review, err := h.reviews.GetByID(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return nil, false
	}
	if review == nil {
		writeErr(w, http.StatusNotFound, "no review found with that id")
		return nil, false
	}
	if review.IdentityID != identity.ID && identity.Role != domain.RoleAdmin {
		writeErr(w, http.StatusForbidden, "you do not have permission to perform this action")
		return nil, false
	}
	return review, true
}
