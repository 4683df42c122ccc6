package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"reviewhub/internal/api/dto"
	"reviewhub/internal/api/middleware"
	"reviewhub/internal/api/service"
	"reviewhub/pkg/response"
)

type CommentHandler struct {
	commentService service.CommentService
}

func NewCommentHandler(commentService service.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

// RegisterRoutes registers comment routes nested under a title's review.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	comments := router.Group("/:title_id/reviews/:review_id/comments")
	{
		comments.GET("", h.List)
		comments.GET("/:comment_id", h.Get)
		comments.POST("", middleware.RequireAuthenticated(), h.Create)
		comments.PATCH("/:comment_id", middleware.RequireAuthenticated(), h.Update)
		comments.DELETE("/:comment_id", middleware.RequireAuthenticated(), h.Delete)
	}
}

// parseCommentPath pulls the three path ids shared by every comment route.
func parseCommentPath(c *gin.Context, withComment bool) (titleID, reviewID, commentID int64, ok bool) {
	if titleID, ok = parseID(c, "title_id"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid title id"})
		return 0, 0, 0, false
	}
	if reviewID, ok = parseID(c, "review_id"); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid review id"})
		return 0, 0, 0, false
	}
	if withComment {
		if commentID, ok = parseID(c, "comment_id"); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid comment id"})
			return 0, 0, 0, false
		}
	}
	return titleID, reviewID, commentID, true
}

// List returns the comments of a review
// GET /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) List(c *gin.Context) {
	titleID, reviewID, _, ok := parseCommentPath(c, false)
	if !ok {
		return
	}
	page, pageSize := parsePagination(c)

	comments, err := h.commentService.List(c.Request.Context(), titleID, reviewID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}

// Get retrieves one comment
// GET /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	titleID, reviewID, commentID, ok := parseCommentPath(c, true)
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), titleID, reviewID, commentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComment(comment))
}

// Create adds the acting user's comment on a review
// POST /api/v1/titles/:title_id/reviews/:review_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	titleID, reviewID, _, ok := parseCommentPath(c, false)
	if !ok {
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), titleID, reviewID, middleware.CurrentIdentity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.FromComment(comment))
}

// Update edits a comment; owner, moderator or admin only
// PATCH /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	titleID, reviewID, commentID, ok := parseCommentPath(c, true)
	if !ok {
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), titleID, reviewID, commentID, middleware.CurrentIdentity(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.FromComment(comment))
}

// Delete removes a comment; owner, moderator or admin only
// DELETE /api/v1/titles/:title_id/reviews/:review_id/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	titleID, reviewID, commentID, ok := parseCommentPath(c, true)
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), titleID, reviewID, commentID, middleware.CurrentIdentity(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
