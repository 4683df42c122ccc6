package dto

import "reviewhub/internal/api/models"

type UserResponse struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

func FromUser(u *models.User) UserResponse {
	return UserResponse{
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Bio:       u.Bio,
		Role:      u.Role.String(),
	}
}

// CreateUserRequest: admin-side user creation; unlike signup, the role is
// settable.
type CreateUserRequest struct {
	Username  string `json:"username" binding:"required,max=150,username"`
	Email     string `json:"email" binding:"required,email,max=254"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Bio       string `json:"bio"`
	Role      string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateUserRequest: admin-side partial update; nil fields are left untouched.
type UpdateUserRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

// UpdateSelfRequest: /users/me partial update. A role field is accepted so
// clients sending it get no error, but it is never applied.
type UpdateSelfRequest struct {
	Username  *string `json:"username" binding:"omitempty,max=150,username"`
	Email     *string `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}
