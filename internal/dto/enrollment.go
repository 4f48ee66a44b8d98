package dto

// CourseResponse a catalog or enrolled course
type CourseResponse struct {
	Name        string `json:"name"`
	CreditHours int    `json:"credit_hours"`
	Instructor  string `json:"instructor"`
	Room        string `json:"room"`
}

// CatalogItem catalog course with the caller's selection state
type CatalogItem struct {
	CourseResponse
	Selected bool `json:"selected"`
}

// CatalogRequest GET /courses; selected lists course names already picked.
type CatalogRequest struct {
	Selected []string `form:"selected"`
}

// CatalogResponse GET /courses
type CatalogResponse struct {
	Courses      []CatalogItem `json:"courses"`
	TotalCredits int           `json:"total_credits"`
	CreditCap    int           `json:"credit_cap"`
}

// ToggleRequest POST /enrollments/toggle. The client sends its current
// selection and the course to flip; nothing is stored.
type ToggleRequest struct {
	Selected []string `json:"selected" binding:"omitempty,max=40,dive,required"`
	Course   string   `json:"course"   binding:"required"`
}

// EnrollmentResponse an enrollment set with its derived total
type EnrollmentResponse struct {
	Courses      []CourseResponse `json:"courses"`
	TotalCredits int              `json:"total_credits"`
	CreditCap    int              `json:"credit_cap"`
	Version      int              `json:"version,omitempty"`
}

// SaveEnrollmentRequest PUT /enrollments/me. Version is the value read
// with GET /enrollments/me.
type SaveEnrollmentRequest struct {
	Courses []string `json:"courses" binding:"max=40,dive,required"`
	Version int      `json:"version" binding:"required,min=1"`
}
