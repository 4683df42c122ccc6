package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
	"reviewhub/pkg/response"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// RegisterRoutes registers user management routes. /me is the self
// sub-resource for any authenticated user; everything else is admin-only.
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/me", middleware.RequireAuthenticated(), h.GetMe)
	router.PATCH("/me", middleware.RequireAuthenticated(), h.UpdateMe)

	admin := router.Group("", middleware.RequireAdmin())
	{
		admin.GET("", h.List)
		admin.POST("", h.Create)
		admin.GET("/:username", h.Get)
		admin.PATCH("/:username", h.Update)
		admin.DELETE("/:username", h.Delete)
	}
}

// List returns users, optionally filtered by a username substring
// GET /api/v1/users?search=&page=&page_size=
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	users, err := h.userService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Create adds a user with an explicit role
// POST /api/v1/users
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromUser(user))
}

// Get retrieves a user by username
// GET /api/v1/users/:username
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

// Update partially updates a user, role included
// PATCH /api/v1/users/:username
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("username"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

// Delete removes a user
// DELETE /api/v1/users/:username
func (h *UserHandler) Delete(c *gin.Context) {
	if err := h.userService.Delete(c.Request.Context(), c.Param("username")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetMe returns the acting user's own profile
// GET /api/v1/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	user, err := h.userService.GetSelf(c.Request.Context(), middleware.CurrentIdentity(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}

// UpdateMe updates the acting user's own profile; the role field is ignored
// PATCH /api/v1/users/me
func (h *UserHandler) UpdateMe(c *gin.Context) {
	var req dto.UpdateSelfRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	user, err := h.userService.UpdateSelf(c.Request.Context(), middleware.CurrentIdentity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromUser(user))
}
