package repository

import "gorm.io/gorm"

// Repository aggregates every repository.
type Repository struct {
	Student    StudentRepository
	Enrollment EnrollmentRepository
}

// NewRepository builds the aggregate on one gorm handle.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Student:    NewStudentRepo(db),
		Enrollment: NewEnrollmentRepo(db),
	}
}
