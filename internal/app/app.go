package app

import (
	"fmt"
	"net/http"

	"accountd/internal/app/deps"
	"accountd/internal/app/services"
	loginwithemail "accountd/internal/http/handlers/log_in_with_email"
	"accountd/internal/http/handlers/register"
	resetpassword "accountd/internal/http/handlers/reset_password"
	sendpasswordresettoken "accountd/internal/http/handlers/send_password_reset_token"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

func InitHttpServer(deps *deps.Deps, s *services.Services) *http.Server {
	isTestMode := deps.Config.IsTestMode

	apiRouter := chi.NewRouter()
	apiRouter.Method(http.MethodPost, "/register", register.New(s.Register))
	apiRouter.Method(
		http.MethodPost,
		"/login",
		loginwithemail.New(s.LogInWithEmail, deps.Config.SessionTokenValidDuration, deps.Config.IsProduction),
	)
	apiRouter.Method(
		http.MethodPost,
		"/forgot-password",
		sendpasswordresettoken.New(s.SendPasswordResetToken, isTestMode),
	)
	apiRouter.Method(
		http.MethodPost,
		"/reset-password/{token}",
		resetpassword.New(s.ResetPassword),
	)

	router := chi.NewRouter()
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
	router.Mount("/api", apiRouter)

	address := fmt.Sprintf("0.0.0.0:%d", deps.Config.Port)

	return &http.Server{
		Handler: router,
		Addr:    address,
	}
}
