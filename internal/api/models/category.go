package models

import "regexp"

// slugRe matches the URL-safe identifier charset shared by categories and
// genres.
var slugRe = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)

// ValidSlug reports whether the slug matches the allowed charset.
func ValidSlug(slug string) bool {
	return slug != "" && len(slug) <= 50 && slugRe.MatchString(slug)
}

type Category struct {
	ID   int64  `json:"-" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"size:256;not null"`
	Slug string `json:"slug" gorm:"uniqueIndex;size:50;not null"`
}

func (Category) TableName() string {
	return "categories"
}
