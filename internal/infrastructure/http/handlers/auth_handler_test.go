package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hyhong-code/tour-selling-api/internal/application/auth"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	domerrors "github.com/hyhong-code/tour-selling-api/internal/domain/errors"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/middleware"
)

// memIdentityStore is an in-memory ports.IdentityStore for handler tests.
type memIdentityStore struct {
	byID map[uuid.UUID]*domain.Identity
}

func newMemIdentityStore(identities ...*domain.Identity) *memIdentityStore {
	s := &memIdentityStore{byID: make(map[uuid.UUID]*domain.Identity)}
	for _, i := range identities {
		s.byID[i.ID] = i
	}
	return s
}

func (s *memIdentityStore) Create(_ context.Context, identity *domain.Identity) error {
	s.byID[identity.ID] = identity
	return nil
}

func (s *memIdentityStore) FindByEmail(_ context.Context, email string) (*domain.Identity, error) {
	for _, i := range s.byID {
		if i.Email == email {
			return i, nil
		}
	}
	return nil, nil
}

func (s *memIdentityStore) FindByID(_ context.Context, id uuid.UUID) (*domain.Identity, error) {
	return s.byID[id], nil
}

func (s *memIdentityStore) FindByResetHash(_ context.Context, hash string) (*domain.Identity, error) {
	for _, i := range s.byID {
		if i.ResetTokenHash != nil && *i.ResetTokenHash == hash &&
			i.ResetTokenExpiresAt != nil && i.ResetTokenExpiresAt.After(time.Now()) {
			return i, nil
		}
	}
	return nil, nil
}

func (s *memIdentityStore) Save(_ context.Context, identity *domain.Identity) error {
	s.byID[identity.ID] = identity
	return nil
}

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Verify(password, hash string) bool    { return hash == "hashed:"+password }

type staticTokens struct{}

func (staticTokens) Issue(identityID string) (string, error) { return "jwt-" + identityID, nil }
func (staticTokens) Verify(string) (string, time.Time, error) {
	return "", time.Time{}, domerrors.ErrTokenInvalid
}

type nopMailer struct{ err error }

func (m nopMailer) Send(context.Context, string, string, string, string) error { return m.err }

func newAuthRouter(store *memIdentityStore, mailer nopMailer) http.Handler {
	hasher := plainHasher{}
	tokens := staticTokens{}
	h := NewAuthHandler(
		auth.NewSignup(store, hasher, tokens),
		auth.NewLogin(store, hasher, tokens),
		auth.NewChangePassword(store, hasher, tokens),
		auth.NewForgotPassword(store, mailer, "no-reply@test", "https://test/reset", 10*time.Minute),
		auth.NewResetPassword(store, hasher, tokens),
		CookieConfig{Expires: time.Hour, Secure: false},
		zerolog.Nop(),
	)
	r := chi.NewRouter()
	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/forgot-password", h.ForgotPassword)
	r.Patch("/reset-password/{token}", h.ResetPassword)
	r.With(fakeAuthed(store)).Patch("/password", h.ChangePassword)
	return r
}

// fakeAuthed binds the single stored identity to the context, standing in
// for the access guard.
func fakeAuthed(store *memIdentityStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, i := range store.byID {
				r = r.WithContext(middleware.WithIdentity(r.Context(), i))
				break
			}
			next.ServeHTTP(w, r)
		})
	}
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func storedIdentity(email, password string) *domain.Identity {
	return &domain.Identity{
		ID:           uuid.New(),
		Name:         "Existing User",
		Email:        email,
		PasswordHash: "hashed:" + password,
		Role:         domain.RoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
}

func TestAuthHandler_Signup(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router := newAuthRouter(newMemIdentityStore(), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/signup",
			`{"name":"Alice","email":"Alice@Example.com","password":"longenough"}`)

		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.NotEmpty(t, body["token"])

		user := body["data"].(map[string]interface{})["identity"].(map[string]interface{})
		assert.Equal(t, "alice@example.com", user["email"])
		assert.Equal(t, "user", user["role"])
		assert.NotContains(t, user, "password")
		assert.NotContains(t, rec.Body.String(), "hashed:")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, "jwt", cookies[0].Name)
		assert.True(t, cookies[0].HttpOnly)
		assert.Equal(t, body["token"], cookies[0].Value)
	})

	t.Run("duplicate email", func(t *testing.T) {
		store := newMemIdentityStore(storedIdentity("alice@example.com", "pw"))
		router := newAuthRouter(store, nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/signup",
			`{"name":"Alice","email":"alice@example.com","password":"longenough"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "error", decodeBody(t, rec)["status"])
	})

	t.Run("short password rejected before the use case runs", func(t *testing.T) {
		router := newAuthRouter(newMemIdentityStore(), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/signup",
			`{"name":"Alice","email":"alice@example.com","password":"short"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		router := newAuthRouter(newMemIdentityStore(), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/signup", `{"name":`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		identity := storedIdentity("alice@example.com", "secret123")
		router := newAuthRouter(newMemIdentityStore(identity), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/login",
			`{"email":"alice@example.com","password":"secret123"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "jwt-"+identity.ID.String(), body["token"])
	})

	t.Run("wrong password", func(t *testing.T) {
		router := newAuthRouter(newMemIdentityStore(storedIdentity("alice@example.com", "secret123")), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/login",
			`{"email":"alice@example.com","password":"nope-nope"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "error", decodeBody(t, rec)["status"])
	})

	t.Run("unknown email gets the same status as wrong password", func(t *testing.T) {
		router := newAuthRouter(newMemIdentityStore(storedIdentity("alice@example.com", "secret123")), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/login",
			`{"email":"nobody@example.com","password":"secret123"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		router := newAuthRouter(newMemIdentityStore(), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/login", `{"email":"alice@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	t.Run("success issues a fresh token", func(t *testing.T) {
		identity := storedIdentity("alice@example.com", "oldpassword")
		router := newAuthRouter(newMemIdentityStore(identity), nopMailer{})
		rec := doJSON(t, router, http.MethodPatch, "/password",
			`{"currentPassword":"oldpassword","newPassword":"newpassword"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "hashed:newpassword", identity.PasswordHash)
		assert.NotNil(t, identity.PasswordChangedAt)
	})

	t.Run("wrong current password", func(t *testing.T) {
		identity := storedIdentity("alice@example.com", "oldpassword")
		router := newAuthRouter(newMemIdentityStore(identity), nopMailer{})
		rec := doJSON(t, router, http.MethodPatch, "/password",
			`{"currentPassword":"guessing","newPassword":"newpassword"}`)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "hashed:oldpassword", identity.PasswordHash)
	})
}

func TestAuthHandler_ForgotPassword(t *testing.T) {
	t.Run("known email", func(t *testing.T) {
		identity := storedIdentity("alice@example.com", "pw")
		router := newAuthRouter(newMemIdentityStore(identity), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/forgot-password",
			`{"email":"alice@example.com"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "token sent to email", body["message"])
		assert.NotContains(t, body, "token")
		assert.NotNil(t, identity.ResetTokenHash)
	})

	t.Run("unknown email", func(t *testing.T) {
		router := newAuthRouter(newMemIdentityStore(), nopMailer{})
		rec := doJSON(t, router, http.MethodPost, "/forgot-password",
			`{"email":"nobody@example.com"}`)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delivery failure", func(t *testing.T) {
		identity := storedIdentity("alice@example.com", "pw")
		router := newAuthRouter(newMemIdentityStore(identity), nopMailer{err: assert.AnError})
		rec := doJSON(t, router, http.MethodPost, "/forgot-password",
			`{"email":"alice@example.com"}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Nil(t, identity.ResetTokenHash)
	})
}

func TestAuthHandler_ResetPassword(t *testing.T) {
	t.Run("valid secret", func(t *testing.T) {
		identity := storedIdentity("alice@example.com", "forgotten")
		secret, hash, expiresAt, err := auth.GenerateResetSecret(10 * time.Minute)
		require.NoError(t, err)
		identity.SetResetToken(hash, expiresAt)
		router := newAuthRouter(newMemIdentityStore(identity), nopMailer{})

		rec := doJSON(t, router, http.MethodPatch, "/reset-password/"+secret,
			`{"password":"resetpassword"}`)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "success", decodeBody(t, rec)["status"])
		assert.Equal(t, "hashed:resetpassword", identity.PasswordHash)
		assert.Nil(t, identity.ResetTokenHash)
	})

	t.Run("invalid secret", func(t *testing.T) {
		router := newAuthRouter(newMemIdentityStore(), nopMailer{})
		rec := doJSON(t, router, http.MethodPatch, "/reset-password/bogus",
			`{"password":"resetpassword"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
