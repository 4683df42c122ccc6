package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/api/service"
	"reviewhub/pkg/response"
)

type TitleHandler struct {
	titleService service.TitleService
}

func NewTitleHandler(titleService service.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService}
}

// RegisterRoutes registers title routes: public read, admin write. Nested
// review/comment routes are registered by their own handlers on the same
// group.
func (h *TitleHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("", h.List)
	router.GET("/:title_id", h.Get)
	router.POST("", middleware.RequireAdmin(), h.Create)
	router.PATCH("/:title_id", middleware.RequireAdmin(), h.Update)
	router.DELETE("/:title_id", middleware.RequireAdmin(), h.Delete)
}

// List returns titles with their computed rating
// GET /api/v1/titles?name=&category=&genre=&year=&page=&page_size=
func (h *TitleHandler) List(c *gin.Context) {
	page, pageSize := parsePagination(c)

	filter := repository.TitleFilter{
		Name:         c.Query("name"),
		CategorySlug: c.Query("category"),
		GenreSlug:    c.Query("genre"),
	}
	if yearStr := c.Query("year"); yearStr != "" {
		year, err := strconv.Atoi(yearStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"year": []string{"must be an integer"}})
			return
		}
		filter.Year = &year
	}

	titles, err := h.titleService.List(c.Request.Context(), filter, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, titles)
}

// Get retrieves one title with its computed rating
// GET /api/v1/titles/:title_id
func (h *TitleHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return
	}

	title, err := h.titleService.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTitle(title))
}

// Create adds a title
// POST /api/v1/titles
func (h *TitleHandler) Create(c *gin.Context) {
	var req dto.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	title, err := h.titleService.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromTitle(title))
}

// Update partially updates a title
// PATCH /api/v1/titles/:title_id
func (h *TitleHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return
	}

	var req dto.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	title, err := h.titleService.Update(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromTitle(title))
}

// Delete removes a title; its reviews and their comments go with it
// DELETE /api/v1/titles/:title_id
func (h *TitleHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return
	}

	if err := h.titleService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
