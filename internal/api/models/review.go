package models

import "time"

const (
	ScoreMin = 1
	ScoreMax = 10
)

// ValidScore reports whether a review score is inside the accepted range.
func ValidScore(score int) bool {
	return score >= ScoreMin && score <= ScoreMax
}

type Review struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	TitleID  int64     `json:"title" gorm:"not null;uniqueIndex:idx_reviews_title_author,priority:1"`
	AuthorID int64     `json:"-" gorm:"not null;uniqueIndex:idx_reviews_title_author,priority:2"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	Score    int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`

	// Associations
	Title  *Title `json:"-" gorm:"foreignKey:TitleID;constraint:OnDelete:CASCADE;"`
	Author *User  `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}
