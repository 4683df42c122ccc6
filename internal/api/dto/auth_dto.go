package dto

// Data Transfer Objects for the signup / token-exchange flow

// SignUpRequest: payload for user self-registration
type SignUpRequest struct {
	Username string `json:"username" binding:"required,max=150,username"`
	Email    string `json:"email" binding:"required,email,max=254"`
}

// SignUpResponse echoes the accepted identity; the confirmation code only
// travels by email.
type SignUpResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenRequest: exchange of a confirmation code for a bearer token
type TokenRequest struct {
	Username         string `json:"username" binding:"required,max=150"`
	ConfirmationCode string `json:"confirmation_code" binding:"required,max=150"`
}

type TokenResponse struct {
	Token string `json:"token"`
}
