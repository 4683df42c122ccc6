package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

type CommentResponse struct {
	ID      int64     `json:"id"`
	Review  int64     `json:"review"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

func FromComment(c *models.Comment) CommentResponse {
	resp := CommentResponse{
		ID:      c.ID,
		Review:  c.ReviewID,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
	if c.Author != nil {
		resp.Author = c.Author.Username
	}
	return resp
}
