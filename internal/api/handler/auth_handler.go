package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/service"
	"reviewhub/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers the signup / token-exchange endpoints.
func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/signup", h.SignUp)
	router.POST("/token", h.ObtainToken)
}

// SignUp registers a user and emails a confirmation code
// POST /api/v1/auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req dto.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.authService.SignUp(c.Request.Context(), req.Username, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SignUpResponse{
		Username: user.Username,
		Email:    user.Email,
	})
}

// ObtainToken exchanges a confirmation code for a bearer token
// POST /api/v1/auth/token
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	token, err := h.authService.ObtainToken(c.Request.Context(), req.Username, req.ConfirmationCode)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{Token: token})
}
