package v1

import (
	"net/http"

	"go-candidate-backend/config"
	_ "go-candidate-backend/docs"
	"go-candidate-backend/internal/delivery/http/middleware"
	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/auth"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	RegistrationUC domain.RegistrationUsecase
	AuthUC         domain.AuthUsecase
	ResetUC        domain.PasswordResetUsecase
	ProfileUC      domain.ProfileUsecase
	TokenManager   *auth.Manager
	Config         *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimitConfig()))
	r.Use(middleware.ErrorHandler())

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	NewAuthHandler(v1, deps.RegistrationUC, deps.AuthUC, deps.ResetUC)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.TokenManager))
	{
		NewCandidateHandler(protected, deps.ProfileUC)
	}

	return r
}
