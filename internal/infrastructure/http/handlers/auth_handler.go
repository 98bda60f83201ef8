package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/hyhong-code/tour-selling-api/internal/application/auth"
	"github.com/hyhong-code/tour-selling-api/internal/domain"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/middleware"
)

// CookieConfig controls the cookie that mirrors the session token.
type CookieConfig struct {
	Expires time.Duration
	Secure  bool
}

type AuthHandler struct {
	signup         *auth.Signup
	login          *auth.Login
	changePassword *auth.ChangePassword
	forgotPassword *auth.ForgotPassword
	resetPassword  *auth.ResetPassword
	cookie         CookieConfig
	validate       *validator.Validate
	log            zerolog.Logger
}

func NewAuthHandler(signup *auth.Signup, login *auth.Login, changePassword *auth.ChangePassword, forgotPassword *auth.ForgotPassword, resetPassword *auth.ResetPassword, cookie CookieConfig, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		signup:         signup,
		login:          login,
		changePassword: changePassword,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
		cookie:         cookie,
		validate:       validator.New(),
		log:            log,
	}
}

// sendToken writes the success envelope and mirrors the token into an
// http-only cookie. The identity view is always redacted.
func (h *AuthHandler) sendToken(w http.ResponseWriter, code int, token string, identity *domain.Identity) {
	http.SetCookie(w, &http.Cookie{
		Name:     "jwt",
		Value:    token,
		Expires:  time.Now().Add(h.cookie.Expires),
		HttpOnly: true,
		Secure:   h.cookie.Secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
	})
	writeJSON(w, code, map[string]interface{}{
		"status": "success",
		"token":  token,
		"data":   map[string]interface{}{"identity": identityView(identity)},
	})
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Name     string `json:"name" validate:"required,max=100"`
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "invalid email or password length")
		return
	}
	result, err := h.signup.Execute(r.Context(), auth.SignupInput{
		Name:     body.Name,
		Email:    email,
		Password: password,
	})
	if err != nil {
		AuditLog(h.log, r, "auth.signup", "", false, err.Error())
		middleware.RecordAuthAttempt("signup", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "auth.signup", result.Identity.ID.String(), true, "")
	middleware.RecordAuthAttempt("signup", true)
	h.sendToken(w, http.StatusCreated, result.Token, result.Identity)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "email and password are required")
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	if email == "" || password == "" {
		writeErr(w, http.StatusBadRequest, "invalid email or password length")
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{Email: email, Password: password})
	if err != nil {
		AuditLog(h.log, r, "auth.login", "", false, err.Error())
		middleware.RecordAuthAttempt("login", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "auth.login", result.Identity.ID.String(), true, "")
	middleware.RecordAuthAttempt("login", true)
	h.sendToken(w, http.StatusOK, result.Token, result.Identity)
}

// ChangePassword requires the access guard to have run; the caller proves
// knowledge of the current password before the rotation.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		writeErr(w, http.StatusUnauthorized, "not logged in, please login to access")
		return
	}
	var body struct {
		CurrentPassword string `json:"currentPassword" validate:"required,max=128"`
		NewPassword     string `json:"newPassword" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.changePassword.Execute(r.Context(), auth.ChangePasswordInput{
		IdentityID:      identity.ID,
		CurrentPassword: body.CurrentPassword,
		NewPassword:     SanitizePassword(body.NewPassword),
	})
	if err != nil {
		AuditLog(h.log, r, "auth.change_password", identity.ID.String(), false, err.Error())
		middleware.RecordAuthAttempt("change_password", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "auth.change_password", identity.ID.String(), true, "")
	middleware.RecordAuthAttempt("change_password", true)
	h.sendToken(w, http.StatusOK, result.Token, result.Identity)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	if email == "" {
		writeErr(w, http.StatusBadRequest, "invalid email")
		return
	}
	if err := h.forgotPassword.Execute(r.Context(), auth.ForgotPasswordInput{Email: email}); err != nil {
		AuditLog(h.log, r, "auth.forgot_password", "", false, err.Error())
		middleware.RecordAuthAttempt("forgot_password", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "auth.forgot_password", "", true, "")
	middleware.RecordAuthAttempt("forgot_password", true)
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "success",
		"message": "token sent to email",
	})
}

// ResetPassword redeems the secret carried in the URL path, not a header.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	secret := chi.URLParam(r, "token")
	var body struct {
		Password string `json:"password" validate:"required,min=8,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	result, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		Secret:      secret,
		NewPassword: SanitizePassword(body.Password),
	})
	if err != nil {
		AuditLog(h.log, r, "auth.reset_password", "", false, err.Error())
		middleware.RecordAuthAttempt("reset_password", false)
		writeDomainErr(w, err)
		return
	}
	AuditLog(h.log, r, "auth.reset_password", result.Identity.ID.String(), true, "")
	middleware.RecordAuthAttempt("reset_password", true)
	h.sendToken(w, http.StatusOK, result.Token, result.Identity)
}
