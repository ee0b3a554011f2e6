package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/xche909/Galactica/config"
	"github.com/xche909/Galactica/delivery"
	"github.com/xche909/Galactica/repository"
	"github.com/xche909/Galactica/service"
	"github.com/xche909/Galactica/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using system environment variables")
	}

	utils.InitLogger()

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := utils.RegisterCustomValidations(v); err != nil {
			log.Fatal().Err(err).Msg("failed to register custom validations")
		}
	}

	db, err := config.BootDB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to boot database")
	}

	jwtSecret := mustSecret("JWT_SECRET")
	jwtRefreshSecret := mustSecret("JWT_REFRESH_SECRET")

	accessManager := utils.NewAccessTokenManager(jwtSecret)
	refreshManager := utils.NewRefreshTokenManager(jwtRefreshSecret)

	accountRepo := repository.NewAccountRepository(db)
	authService := service.NewAuthService(accountRepo, accessManager, refreshManager)

	app := gin.New()
	config.InitMiddleware(app)
	delivery.NewAuthHandler(app, authService, accessManager)

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:           ":" + port,
		Handler:        app,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Warn().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}

// mustSecret reads a signing secret from the environment and refuses to start
// with a missing or weak one.
func mustSecret(key string) string {
	secret := os.Getenv(key)
	if secret == "" {
		log.Fatal().Msgf("%s not found in environment", key)
	}
	if len(secret) < 32 {
		log.Fatal().Msgf("%s must be at least 32 characters", key)
	}
	return secret
}
