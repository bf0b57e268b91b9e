package dto

// LoginRequest represents the login form payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserProfileResponse is the session context exposed to the client.
type UserProfileResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	Subclass   string `json:"subclass,omitempty"`
}

// LoginResponse carries the issued token and the user profile.
type LoginResponse struct {
	AccessToken string              `json:"accessToken"`
	ExpiresIn   int                 `json:"expiresIn"`
	User        UserProfileResponse `json:"user"`
}
