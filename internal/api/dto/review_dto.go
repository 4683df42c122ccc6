package dto

import (
	"time"

	"reviewhub/internal/api/models"
)

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type ReviewResponse struct {
	ID      int64     `json:"id"`
	Title   int64     `json:"title"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func FromReview(r *models.Review) ReviewResponse {
	resp := ReviewResponse{
		ID:      r.ID,
		Title:   r.TitleID,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
	if r.Author != nil {
		resp.Author = r.Author.Username
	}
	return resp
}
