package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
	"reviewhub/pkg/response"
)

type GenreHandler struct {
	genreService service.GenreService
}

func NewGenreHandler(genreService service.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService}
}

// RegisterRoutes registers genre routes, same shape as categories.
func (h *GenreHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.POST("", middleware.RequireAdmin(), h.Create)
	router.DELETE("/:slug", middleware.RequireAdmin(), h.Delete)
}

// List returns genres, optionally filtered by a name substring
// GET /api/v1/genres?search=&page=&page_size=
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	genres, err := h.genreService.List(c.Request.Context(), c.Query("search"), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, genres)
}

// Create adds a genre
// POST /api/v1/genres
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	genre, err := h.genreService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, genre)
}

// Delete removes a genre and detaches it from titles
// DELETE /api/v1/genres/:slug
func (h *GenreHandler) Delete(c *gin.Context) {
	if err := h.genreService.Delete(c.Request.Context(), c.Param("slug")); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
