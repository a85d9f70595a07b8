package app

import (
	"fmt"
	"net/http"
	"pwreset/internal/app/deps"
	"pwreset/internal/app/services"
	forgotpassword "pwreset/internal/http/handlers/forgot_password"
	"pwreset/internal/http/handlers/ping"
	resetpassword "pwreset/internal/http/handlers/reset_password"
	verifytoken "pwreset/internal/http/handlers/verify_token"
	"pwreset/internal/http/middleware"
	"time"

	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler:           NewRouter(deps, s),
		Addr:              address,
		ReadTimeout:       5 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      deps.Config.OperationTimeout + 5*time.Second,
		IdleTimeout:       5 * time.Second,
	}
}

func NewRouter(deps *deps.Deps, s *services.Services) http.Handler {
	passwordResetRouter := chi.NewRouter()
	passwordResetRouter.Method(
		http.MethodPost,
		"/forgot-password",
		forgotpassword.New(s.SendPasswordResetToken, deps.Config.IsTestMode),
	)
	passwordResetRouter.Method(http.MethodPost, "/verify-token", verifytoken.New(s.VerifyPasswordResetToken))
	passwordResetRouter.Method(http.MethodPost, "/reset-password", resetpassword.New(s.ResetPassword))
	passwordResetRouter.Get("/ping", ping.Handler)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(chimiddleware.Recoverer)
	if deps.Config.SentryDsn != nil {
		router.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{forgotpassword.TestTokenHeader},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/api", passwordResetRouter)
	router.Mount("/", passwordResetRouter)

	return router
}
