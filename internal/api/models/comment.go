package models

import "time"

type Comment struct {
	ID       int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ReviewID int64     `json:"review" gorm:"not null;index"`
	AuthorID int64     `json:"-" gorm:"not null;index"`
	Text     string    `json:"text" gorm:"type:text;not null"`
	PubDate  time.Time `json:"pub_date" gorm:"autoCreateTime"`

	// Associations
	Review *Review `json:"-" gorm:"foreignKey:ReviewID;constraint:OnDelete:CASCADE;"`
	Author *User   `json:"-" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
}

func (Comment) TableName() string {
	return "comments"
}
