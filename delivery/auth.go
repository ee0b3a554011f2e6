package delivery

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/xche909/Galactica/domain"
	"github.com/xche909/Galactica/dto"
	"github.com/xche909/Galactica/middleware"
	"github.com/xche909/Galactica/utils"
)

type AuthHandler struct {
	authUC domain.AuthUseCase
}

func NewAuthHandler(r *gin.Engine, authUC domain.AuthUseCase, accessManager *utils.JWTManager) {
	handler := &AuthHandler{authUC: authUC}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	public := r.Group("/auth")
	{
		public.POST("/register/email", handler.RegisterWithEmail)
		public.POST("/register/device", handler.RegisterWithDevice)
		public.POST("/login", handler.Login)
		public.POST("/refresh-token", handler.RefreshToken)
	}

	protected := r.Group("/auth")
	protected.Use(middleware.AuthMiddleware(accessManager))
	{
		protected.GET("/me", handler.Me)
	}
}

func (h *AuthHandler) RegisterWithEmail(c *gin.Context) {
	var req dto.EmailRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	tokens, err := h.authUC.RegisterWithEmail(c.Request.Context(), dto.MapEmailRegistration(&req))
	if err != nil {
		respondError(c, "Email registration", err)
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

func (h *AuthHandler) RegisterWithDevice(c *gin.Context) {
	var req dto.DeviceRegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	tokens, err := h.authUC.RegisterWithDevice(c.Request.Context(), req.DeviceID)
	if err != nil {
		respondError(c, "Device registration", err)
		return
	}

	c.JSON(http.StatusCreated, tokens)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	tokens, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password, req.DeviceID)
	if err != nil {
		respondError(c, "Login", err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	tokens, err := h.authUC.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, "Refresh token", err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *AuthHandler) Me(c *gin.Context) {
	accountID := c.GetUint(middleware.ContextAccountID)
	if accountID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing account context"})
		return
	}

	account, err := h.authUC.Me(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, "Me", err)
		return
	}

	c.JSON(http.StatusOK, account)
}

func respondBindingError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": utils.TranslateValidationError(err)})
}

// respondError maps domain errors to their status code. Anything else is an
// unexpected failure: logged in full, reported as a generic 500.
func respondError(c *gin.Context, op string, err error) {
	var domErr *domain.Error
	if errors.As(err, &domErr) {
		c.JSON(domErr.Status, gin.H{"error": domErr.Message})
		return
	}

	log.Error().Err(err).Str("op", op).Msg("unhandled error")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}
