package dto

import "reviewhub/internal/api/models"

type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,max=200"`
	Year        int      `json:"year" binding:"required"`
	Description string   `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,max=50,slug"`
	Genre       []string `json:"genre" binding:"omitempty,dive,max=50,slug"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,max=200"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category" binding:"omitempty,max=50,slug"`
	Genre       *[]string `json:"genre" binding:"omitempty,dive,max=50,slug"`
}

type TitleResponse struct {
	ID          int64            `json:"id"`
	Name        string           `json:"name"`
	Year        int              `json:"year"`
	Rating      *float64         `json:"rating"`
	Description string           `json:"description"`
	Genre       []models.Genre   `json:"genre"`
	Category    *models.Category `json:"category"`
}

func FromTitle(t *models.Title) TitleResponse {
	genres := t.Genres
	if genres == nil {
		genres = []models.Genre{}
	}
	return TitleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Year:        t.Year,
		Rating:      t.Rating,
		Description: t.Description,
		Genre:       genres,
		Category:    t.Category,
	}
}
