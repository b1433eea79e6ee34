package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-candidate-backend/config"
	_ "go-candidate-backend/docs" // Important for Swagger
	v1 "go-candidate-backend/internal/delivery/http/v1"
	"go-candidate-backend/internal/extraction"
	"go-candidate-backend/internal/repository/postgres"
	"go-candidate-backend/internal/usecase"
	"go-candidate-backend/pkg/auth"
	"go-candidate-backend/pkg/database"
	"go-candidate-backend/pkg/email"
	"go-candidate-backend/pkg/hash"
	"go-candidate-backend/pkg/logger"
	"go-candidate-backend/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           Candidate Backend API
// @version         1.0
// @description     Candidate registration, verification and CV-to-profile extraction service.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting candidate backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; limiter falls back to in-memory)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, rate limiting falls back to in-memory", "error", err)
	}

	// 5. Setup Repositories
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	tokenRepo := postgres.NewTokenRepository(dbPool)

	// 6. Setup collaborators
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - verification and reset emails will fail")
	}

	hasher := hash.NewBcryptHasher(cfg.BcryptCost)

	tokenManager, err := auth.NewManager(cfg.JWTSecret, time.Duration(cfg.JWTExpirationMinutes)*time.Minute)
	if err != nil {
		logger.Log.Error("Failed to configure session tokens", "error", err)
		os.Exit(1)
	}

	extractor := extraction.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)

	// 7. Setup UseCases
	validate := validator.New()
	registrationUC := usecase.NewRegistrationUsecase(candidateRepo, tokenRepo, emailService, hasher, validate)
	authUC := usecase.NewAuthUsecase(candidateRepo, hasher, tokenManager)
	resetUC := usecase.NewPasswordResetUsecase(candidateRepo, tokenRepo, emailService, hasher)
	profileUC := usecase.NewProfileUsecase(candidateRepo, extractor)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		RegistrationUC: registrationUC,
		AuthUC:         authUC,
		ResetUC:        resetUC,
		ProfileUC:      profileUC,
		TokenManager:   tokenManager,
		Config:         cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
