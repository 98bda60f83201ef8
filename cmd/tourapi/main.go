package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/hyhong-code/tour-selling-api/internal/application/auth"
	"github.com/hyhong-code/tour-selling-api/internal/config"
	infraauth "github.com/hyhong-code/tour-selling-api/internal/infrastructure/auth"
	httprouter "github.com/hyhong-code/tour-selling-api/internal/infrastructure/http"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/handlers"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/http/middleware"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/mail"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/persistence/postgres"
	"github.com/hyhong-code/tour-selling-api/internal/infrastructure/security"
)

func main() {
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("ping database")
	}

	identityRepo := postgres.NewIdentityRepository(pool)
	tourRepo := postgres.NewTourRepository(pool)
	reviewRepo := postgres.NewReviewRepository(pool)

	hasher := security.NewBcryptHasher(cfg.Bcrypt.Cost)
	tokens := infraauth.NewTokenIssuer([]byte(cfg.JWT.Secret), cfg.JWT.ExpiresIn)
	mailer := mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass)

	signupUC := auth.NewSignup(identityRepo, hasher, tokens)
	loginUC := auth.NewLogin(identityRepo, hasher, tokens)
	changePasswordUC := auth.NewChangePassword(identityRepo, hasher, tokens)
	forgotPasswordUC := auth.NewForgotPassword(identityRepo, mailer,
		cfg.PasswordReset.From, cfg.PasswordReset.BaseURL, cfg.PasswordReset.Window)
	resetPasswordUC := auth.NewResetPassword(identityRepo, hasher, tokens)

	guard := middleware.NewAccessGuard(tokens, identityRepo)
	secureMiddleware := middleware.NewSecure(middleware.SecureOptions(!cfg.IsProduction()))
	ipLimit, err := middleware.NewIPRateLimiter(cfg.RateLimit.RatePerIP)
	if err != nil {
		log.Fatal().Err(err).Msg("create IP rate limiter")
	}

	authHandler := handlers.NewAuthHandler(signupUC, loginUC, changePasswordUC, forgotPasswordUC, resetPasswordUC,
		handlers.CookieConfig{Expires: cfg.JWT.CookieExpires, Secure: cfg.IsProduction()}, log)
	usersHandler := handlers.NewUsersHandler()
	toursHandler := handlers.NewToursHandler(tourRepo, log)
	reviewsHandler := handlers.NewReviewsHandler(reviewRepo, tourRepo, log)
	healthHandler := handlers.NewHealthHandler(pool)

	router := httprouter.NewRouter(httprouter.RouterConfig{
		AuthHandler:    authHandler,
		UsersHandler:   usersHandler,
		ToursHandler:   toursHandler,
		ReviewsHandler: reviewsHandler,
		HealthHandler:  healthHandler,
		Guard:          guard,
		Log:            log,
		Secure:         secureMiddleware,
		CORS:           middleware.CORS(cfg.CORS.AllowedOrigins, nil, nil),
		IPRateLimit:    ipLimit,
		Metrics:        true,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Server.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	log.Info().Msg("server stopped")
}
