package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hyhong-code/tour-selling-api/internal/application/ports"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
)

// ToursHandler is thin data-access glue; the interesting work happens in the
// access guard and role middleware in front of it.
type ToursHandler struct {
	tours    ports.TourStore
	validate *validator.Validate
	log      zerolog.Logger
}

func NewToursHandler(tours ports.TourStore, log zerolog.Logger) *ToursHandler {
	return &ToursHandler{tours: tours, validate: validator.New(), log: log}
}

type tourBody struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Duration     int     `json:"duration" validate:"required,min=1"`
	MaxGroupSize int     `json:"maxGroupSize" validate:"required,min=1"`
	Difficulty   string  `json:"difficulty" validate:"required,oneof=easy medium difficult"`
	Price        float64 `json:"price" validate:"required,min=0"`
	Summary      string  `json:"summary" validate:"max=500"`
	Description  string  `json:"description" validate:"required"`
}

func (h *ToursHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 100
	offset := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 500 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	tours, err := h.tours.List(r.Context(), limit, offset)
	if err != nil {
		h.log.Error().Err(err).Msg("list tours failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"results": len(tours),
		"data":    map[string]interface{}{"tours": tours},
	})
}

func (h *ToursHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid tour id")
		return
	}
	tour, err := h.tours.GetByID(r.Context(), id)
	if err != nil {
		h.log.Error().Err(err).Msg("get tour failed")
		writeDomainErr(w, err)
		return
	}
	if tour == nil {
		writeErr(w, http.StatusNotFound, "no tour found with that id")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"tour": tour},
	})
}

func (h *ToursHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body tourBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	now := time.Now()
	tour := &domain.Tour{
		ID:           uuid.New(),
		Name:         body.Name,
		Slug:         domain.Slugify(body.Name),
		Duration:     body.Duration,
		MaxGroupSize: body.MaxGroupSize,
		Difficulty:   body.Difficulty,
		Price:        body.Price,
		Summary:      body.Summary,
		Description:  body.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := h.tours.Create(r.Context(), tour); err != nil {
		h.log.Error().Err(err).Msg("create tour failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"tour": tour},
	})
}

func (h *ToursHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid tour id")
		return
	}
	tour, err := h.tours.GetByID(r.Context(), id)
	if err != nil {
		writeDomainErr(w, err)
		return
	}
	if tour == nil {
		writeErr(w, http.StatusNotFound, "no tour found with that id")
		return
	}
	var body tourBody
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	tour.Name = body.Name
	tour.Slug = domain.Slugify(body.Name)
	tour.Duration = body.Duration
	tour.MaxGroupSize = body.MaxGroupSize
	tour.Difficulty = body.Difficulty
	tour.Price = body.Price
	tour.Summary = body.Summary
	tour.Description = body.Description
	tour.UpdatedAt = time.Now()
	if err := h.tours.Update(r.Context(), tour); err != nil {
		h.log.Error().Err(err).Msg("update tour failed")
		writeDomainErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "success",
		"data":   map[string]interface{}{"tour": tour},
	})
}

func (h *ToursHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeErr(w, http.StatusBadRequest, "invalid tour id")
		return
	}
	if err := h.tours.Delete(r.Context(), id); err != nil {
		h.log.Error().Err(err).Msg("delete tour failed")
		writeDomainErr(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
