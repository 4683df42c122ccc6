package dto

// CreateCategoryRequest doubles for genres: both are (name, slug) pairs with
// the same charset rule.
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=256"`
	Slug string `json:"slug" binding:"required,max=50,slug"`
}
