package v1

import (
	"net/http"

	"go-candidate-backend/internal/delivery/http/middleware"
	"go-candidate-backend/internal/delivery/http/response"
	"go-candidate-backend/internal/domain"
	"go-candidate-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	registrationUC domain.RegistrationUsecase
	authUC         domain.AuthUsecase
	resetUC        domain.PasswordResetUsecase
}

func NewAuthHandler(public *gin.RouterGroup, registrationUC domain.RegistrationUsecase, authUC domain.AuthUsecase, resetUC domain.PasswordResetUsecase) {
	handler := &AuthHandler{
		registrationUC: registrationUC,
		authUC:         authUC,
		resetUC:        resetUC,
	}

	auth := public.Group("/auth")
	{
		auth.POST("/register", handler.Register)
		auth.GET("/verify", handler.Verify)
		auth.GET("/resend-verification", handler.ResendVerification)
		auth.POST("/login", middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig()), handler.Login)
		auth.GET("/request-password-reset", handler.RequestPasswordReset)
		auth.GET("/reset-password", handler.CheckResetToken)
		auth.POST("/reset-password", handler.ResetPassword)
	}
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"firstName" binding:"required"`
	LastName    string `json:"lastName" binding:"required"`
	CallingCode string `json:"callingCode" binding:"required"`
	PhoneNumber string `json:"phoneNumber" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required,min=8"`
}

// Register godoc
// @Summary      Candidate Registration
// @Description  Register a new candidate. The account stays disabled until the emailed verification link is used.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        register  body      RegisterRequest  true  "Registration Details"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	candidate, err := h.registrationUC.Register(c.Request.Context(), domain.RegistrationInput{
		Email:       req.Email,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		CallingCode: req.CallingCode,
		PhoneNumber: req.PhoneNumber,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Registration successful, please check your email", candidate)
}

// Verify godoc
// @Summary      Confirm account
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Verification token"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/verify [get]
func (h *AuthHandler) Verify(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Error(apperror.BadRequest("Missing token"))
		return
	}

	if err := h.registrationUC.VerifyToken(c.Request.Context(), token); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Account is confirmed!", nil)
}

// ResendVerification godoc
// @Summary      Resend the verification email
// @Tags         auth
// @Produce      json
// @Param        email  query     string  true  "Account email"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /auth/resend-verification [get]
func (h *AuthHandler) ResendVerification(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.Error(apperror.BadRequest("Missing email"))
		return
	}

	if err := h.registrationUC.ResendVerification(c.Request.Context(), email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Verification email sent", nil)
}

// Login godoc
// @Summary      Candidate Login
// @Description  Exchange email and password for a session token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        login  body      LoginRequest  true  "Credentials"
// @Success      200  {object}  response.Response
// @Failure      401  {object}  response.Response
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	token, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password, c.ClientIP())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Login successful", gin.H{"token": token})
}

// RequestPasswordReset godoc
// @Summary      Request a password reset email
// @Description  Always reports success so the endpoint cannot be used to probe which emails exist.
// @Tags         auth
// @Produce      json
// @Param        email  query     string  true  "Account email"
// @Success      200  {object}  response.Response
// @Router       /auth/request-password-reset [get]
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.Error(apperror.BadRequest("Missing email"))
		return
	}

	if err := h.resetUC.RequestReset(c.Request.Context(), email); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "If the account exists, a reset email has been sent", nil)
}

// CheckResetToken godoc
// @Summary      Check a reset token
// @Description  Read-only validity check backing the reset form; the token is not consumed.
// @Tags         auth
// @Produce      json
// @Param        token  query     string  true  "Reset token"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/reset-password [get]
func (h *AuthHandler) CheckResetToken(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Error(apperror.BadRequest("Missing token"))
		return
	}

	if err := h.resetUC.VerifyResetToken(c.Request.Context(), token); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Token is valid", nil)
}

// ResetPassword godoc
// @Summary      Reset the password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  query     string                true  "Reset token"
// @Param        body   body      ResetPasswordRequest  true  "New password"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Error(apperror.BadRequest("Missing token"))
		return
	}

	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.resetUC.ResetPassword(c.Request.Context(), token, req.Password); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Password has been reset", nil)
}
