package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Student maps to table students. Version guards the enrollment list.
type Student struct {
	StudentID    string `gorm:"type:uuid;primaryKey"                json:"student_id"`
	SapID        string `gorm:"type:varchar(20);not null;uniqueIndex:idx_students_sap_id,where:deleted_at IS NULL" json:"sap_id"`
	Email        string `gorm:"type:varchar(255);not null;uniqueIndex:idx_students_email,where:deleted_at IS NULL" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null"          json:"-"`
	VersionedModel

	Enrollments []EnrolledCourse `gorm:"foreignKey:StudentID;references:StudentID" json:"enrollments,omitempty"`
}

// TableName table name
func (Student) TableName() string { return "students" }

// BeforeCreate assigns a UUID when the caller did not.
func (s *Student) BeforeCreate(_ *gorm.DB) error {
	if s.StudentID == "" {
		s.StudentID = uuid.NewString()
	}
	return nil
}
