package models

type Title struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Year        int       `json:"year" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	CategoryID  *int64    `json:"-" gorm:"index"`
	Category    *Category `json:"category" gorm:"constraint:OnDelete:SET NULL;"`
	Genres      []Genre   `json:"genre" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`

	// Rating is the mean review score, computed by the repository at read
	// time. It is never persisted.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`
}

func (Title) TableName() string {
	return "titles"
}

// TitleGenre is the explicit join model behind the many2many association. It
// has its own id so fixture rows can be loaded verbatim.
type TitleGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID int64 `json:"title_id" gorm:"index;not null"`
	GenreID int64 `json:"genre_id" gorm:"index;not null"`
}

func (TitleGenre) TableName() string {
	return "title_genres"
}
