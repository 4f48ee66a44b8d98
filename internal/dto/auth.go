package dto

// ── auth requests ──

// SignupRequest student signup. The email must match the configured
// university pattern (student_email tag).
type SignupRequest struct {
	Email           string `json:"email"            binding:"required,student_email"`
	Password        string `json:"password"         binding:"required,max=72"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// LoginRequest student login
type LoginRequest struct {
	Email      string `json:"email"    binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"remember_me"`
}

// RefreshTokenRequest refresh token exchange
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
