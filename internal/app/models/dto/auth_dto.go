package dto

// SignupRequest represents account registration data.
// Field rules are enforced by the auth service so every failure reads "Invalid input".
type SignupRequest struct {
	Username string `json:"username" example:"admin"`
	Email    string `json:"email" example:"admin@example.com"`
	Password string `json:"password" example:"supersecret"`
}

// LoginRequest represents login credentials
type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" example:"admin"`
	Password        string `json:"password" example:"supersecret"`
}

// AuthResult is returned by signup and login: the profile plus the issued token
type AuthResult struct {
	User      *UserResponse
	Token     string
	ExpiresIn int // seconds
}
