package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimid "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/hyhong-code/tour-selling-api/internal/domain"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/handlers"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/middleware"
)

type RouterConfig struct {
	AuthHandler    *handlers.AuthHandler
	UsersHandler   *handlers.UsersHandler
	ToursHandler   *handlers.ToursHandler
	ReviewsHandler *handlers.ReviewsHandler
	HealthHandler  *handlers.HealthHandler
	Guard          *middleware.AccessGuard
	Log            zerolog.Logger
	Secure         func(http.Handler) http.Handler
	CORS           func(http.Handler) http.Handler
	IPRateLimit    func(http.Handler) http.Handler
	Metrics        bool // expose /metrics
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimid.RequestID)
	r.Use(chimid.RealIP)
	r.Use(loggerMiddleware(cfg.Log))
	r.Use(chimid.Recoverer)
	if cfg.Metrics {
		r.Use(middleware.PrometheusMiddleware)
	}
	if cfg.Secure != nil {
		r.Use(cfg.Secure)
	}
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}
	r.Use(chimid.AllowContentType("application/json"))
	if cfg.IPRateLimit != nil {
		r.Use(cfg.IPRateLimit)
	}

	if cfg.HealthHandler != nil {
		r.Get("/health", cfg.HealthHandler.ServeHTTP)
	}
	if cfg.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	authed := cfg.Guard.Authenticate
	staff := middleware.RequireRoles(domain.RoleAdmin, domain.RoleLeadGuide)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", cfg.AuthHandler.Signup)
			r.Post("/login", cfg.AuthHandler.Login)
			r.Post("/forgot-password", cfg.AuthHandler.ForgotPassword)
			// The reset secret travels in the path, never a header.
			r.Patch("/reset-password/{token}", cfg.AuthHandler.ResetPassword)
		})

		r.Route("/users", func(r chi.Router) {
			r.Use(authed)
			r.Get("/me", cfg.UsersHandler.Me)
			r.Patch("/me/password", cfg.AuthHandler.ChangePassword)
		})

		r.Route("/tours", func(r chi.Router) {
			r.Get("/", cfg.ToursHandler.List)
			r.Get("/{id}", cfg.ToursHandler.Get)
			r.Group(func(r chi.Router) {
				r.Use(authed, staff)
				r.Post("/", cfg.ToursHandler.Create)
				r.Patch("/{id}", cfg.ToursHandler.Update)
				r.Delete("/{id}", cfg.ToursHandler.Delete)
			})
			r.Route("/{tourID}/reviews", func(r chi.Router) {
				r.Get("/", cfg.ReviewsHandler.ListByTour)
				r.With(authed, middleware.RequireRoles(domain.RoleUser)).
					Post("/", cfg.ReviewsHandler.Create)
			})
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Use(authed)
			r.Patch("/{id}", cfg.ReviewsHandler.Update)
			r.Delete("/{id}", cfg.ReviewsHandler.Delete)
		})
	})

	return r
}

func loggerMiddleware(log zerolog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := chimid.GetReqID(r.Context())
			log.Info().
				Str("request_id", reqID).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("request")
			next.ServeHTTP(w, r)
		})
	}
}
