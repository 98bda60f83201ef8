package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyhong-code/tour-selling-api/internal/application/auth"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	infraauth "github.com/hyhong-code/tour-selling-api/internal/infrastructure/auth"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/handlers"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/middleware"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/security"
)

// memStore backs the whole router fixture in memory.
type memStore struct {
	identities map[uuid.UUID]*domain.Identity
	tours      map[uuid.UUID]*domain.Tour
	reviews    map[uuid.UUID]*domain.Review
}

func newMemStore() *memStore {
	return &memStore{
		identities: make(map[uuid.UUID]*domain.Identity),
		tours:      make(map[uuid.UUID]*domain.Tour),
		reviews:    make(map[uuid.UUID]*domain.Review),
	}
}

func (s *memStore) Create(_ context.Context, i *domain.Identity) error {
	s.identities[i.ID] = i
	return nil
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, i := range s.identities {
		if i.Email == email {
			return i, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Identity, error) {
	return s.identities[id], nil
}

func (s *memStore) FindByResetHash(_ context.Context, hash string) (*domain.Identity, error) {
	for _, i := range s.identities {
		if i.ResetTokenHash != nil && *i.ResetTokenHash == hash &&
			i.ResetTokenExpiresAt != nil && i.ResetTokenExpiresAt.After(time.Now()) {
			return i, nil
		}
	}
	return nil, nil
}

func (s *memStore) Save(_ context.Context, i *domain.Identity) error {
	s.identities[i.ID] = i
	return nil
}

type memTours struct{ s *memStore }

func (m memTours) Create(_ context.Context, t *domain.Tour) error { m.s.tours[t.ID] = t; return nil }
func (m memTours) List(context.Context, int, int) ([]*domain.Tour, error) {
	out := make([]*domain.Tour, 0, len(m.s.tours))
	for _, t := range m.s.tours {
		out = append(out, t)
	}
	return out, nil
}
func (m memTours) GetByID(_ context.Context, id uuid.UUID) (*domain.Tour, error) {
	return m.s.tours[id], nil
}
func (m memTours) Update(_ context.Context, t *domain.Tour) error { m.s.tours[t.ID] = t; return nil }
func (m memTours) Delete(_ context.Context, id uuid.UUID) error   { delete(m.s.tours, id); return nil }

type memReviews struct{ s *memStore }

func (m memReviews) Create(_ context.Context, r *domain.Review) error {
	m.s.reviews[r.ID] = r
	return nil
}
func (m memReviews) ListByTour(_ context.Context, tourID uuid.UUID) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, r := range m.s.reviews {
		if r.TourID == tourID {
			out = append(out, r)
		}
	}
	return out, nil
}
func (m memReviews) GetByID(_ context.Context, id uuid.UUID) (*domain.Review, error) {
	return m.s.reviews[id], nil
}
func (m memReviews) Update(_ context.Context, r *domain.Review) error {
	m.s.reviews[r.ID] = r
	return nil
}
func (m memReviews) Delete(_ context.Context, id uuid.UUID) error {
	delete(m.s.reviews, id)
	return nil
}

type routerMailer struct{}

func (routerMailer) Send(context.Context, string, string, string, string) error { return nil }

func newTestRouter(t *testing.T, store *memStore) (http.Handler, *infraauth.TokenIssuer) {
	t.Helper()
	log := zerolog.Nop()
	hasher := security.NewBcryptHasher(4)
	tokens := infraauth.NewTokenIssuer([]byte("router-test-secret"), time.Hour)
	cookie := handlers.CookieConfig{Expires: time.Hour}

	authHandler := handlers.NewAuthHandler(
		auth.NewSignup(store, hasher, tokens),
		auth.NewLogin(store, hasher, tokens),
		auth.NewChangePassword(store, hasher, tokens),
		auth.NewForgotPassword(store, routerMailer{}, "no-reply@test", "https://test/reset", 10*time.Minute),
		auth.NewResetPassword(store, hasher, tokens),
		cookie, log,
	)

	router := NewRouter(RouterConfig{
		AuthHandler:    authHandler,
		UsersHandler:   handlers.NewUsersHandler(),
		ToursHandler:   handlers.NewToursHandler(memTours{store}, log),
		ReviewsHandler: handlers.NewReviewsHandler(memReviews{store}, memTours{store}, log),
		HealthHandler:  handlers.NewHealthHandler(nil),
		Guard:          middleware.NewAccessGuard(tokens, store),
		Log:            log,
	})
	return router, tokens
}

func get(router http.Handler, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Mounts(t *testing.T) {
	store := newMemStore()
	router, tokens := newTestRouter(t, store)

	hash, err := security.NewBcryptHasher(4).Hash("password123")
	require.NoError(t, err)
	user := &domain.Identity{
		ID:           uuid.New(),
		Name:         "Router User",
		Email:        "router@example.com",
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}
	store.identities[user.ID] = user
	token, err := tokens.Issue(user.ID.String())
	require.NoError(t, err)

	t.Run("health is public", func(t *testing.T) {
		rec := get(router, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("tour list is public", func(t *testing.T) {
		rec := get(router, "/api/v1/tours/", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("me requires auth", func(t *testing.T) {
		assert.Equal(t, http.StatusUnauthorized, get(router, "/api/v1/users/me", "").Code)
		assert.Equal(t, http.StatusOK, get(router, "/api/v1/users/me", token).Code)
	})

	t.Run("tour create requires staff role", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/tours/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("unknown route is 404", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(router, "/api/v1/nope", "").Code)
	})
}
