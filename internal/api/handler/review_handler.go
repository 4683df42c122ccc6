package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
	"reviewhub/pkg/response"
)

type ReviewHandler struct {
	reviewService service.ReviewService
}

func NewReviewHandler(reviewService service.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// RegisterRoutes registers review routes nested under a title.
func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	reviews := router.Group("/:title_id/reviews")
	{
		reviews.GET("", h.List)
		reviews.GET("/:review_id", h.Get)
		reviews.POST("", middleware.RequireAuthenticated(), h.Create)
		reviews.PATCH("/:review_id", middleware.RequireAuthenticated(), h.Update)
		reviews.DELETE("/:review_id", middleware.RequireAuthenticated(), h.Delete)
	}
}

// List returns the reviews of a title
// GET /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) List(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return
	}
	page, pageSize := parsePagination(c)

	reviews, err := h.reviewService.List(c.Request.Context(), titleID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

// Get retrieves one review
// GET /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Get(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid review id"})
		return
	}

	review, err := h.reviewService.Get(c.Request.Context(), titleID, reviewID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

// Create adds the acting user's review of a title; one per user per title
// POST /api/v1/titles/:title_id/reviews
func (h *ReviewHandler) Create(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return
	}

	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	review, err := h.reviewService.Create(c.Request.Context(), titleID, middleware.CurrentIdentity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromReview(review))
}

// Update edits a review; owner, moderator or admin only
// PATCH /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Update(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid review id"})
		return
	}

	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	review, err := h.reviewService.Update(c.Request.Context(), titleID, reviewID, middleware.CurrentIdentity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromReview(review))
}

// Delete removes a review and its comments; owner, moderator or admin only
// DELETE /api/v1/titles/:title_id/reviews/:review_id
func (h *ReviewHandler) Delete(c *gin.Context) {
	titleID, ok := parseID(c, "title_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return
	}
	reviewID, ok := parseID(c, "review_id")
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid review id"})
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), titleID, reviewID, middleware.CurrentIdentity(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
