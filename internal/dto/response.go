package dto

// TokenResponse token pair returned by signup, login and refresh.
type TokenResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	Student      StudentResponse `json:"student"`
}

// StudentResponse public student fields
type StudentResponse struct {
	ID    string `json:"id"`
	SapID string `json:"sap_id"`
	Email string `json:"email"`
}

// ProfileResponse GET /students/me
type ProfileResponse struct {
	StudentResponse
	CreatedAt    string           `json:"created_at"`
	Courses      []CourseResponse `json:"courses"`
	TotalCredits int              `json:"total_credits"`
	CreditCap    int              `json:"credit_cap"`
}
