package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
	"reviewhub/pkg/response"
)

type CategoryHandler struct {
	categoryService service.CategoryService
}

func NewCategoryHandler(categoryService service.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// RegisterRoutes registers category routes: public read, admin write.
func (h *CategoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.POST("", middleware.RequireAdmin(), h.Create)
	router.DELETE("/:slug", middleware.RequireAdmin(), h.Delete)
}

// List returns categories, optionally filtered by a name substring
// GET /api/v1/categories?search=&page=&page_size=
func (h *CategoryHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	categories, err := h.categoryService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// Create adds a category
// POST /api/v1/categories
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	category, err := h.categoryService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, category)
}

// Delete removes a category; titles keep existing with a null category
// DELETE /api/v1/categories/:slug
func (h *CategoryHandler) Delete(c *gin.Context) {
	if err := h.categoryService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
