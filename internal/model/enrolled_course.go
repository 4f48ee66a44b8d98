package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EnrolledCourse maps to table enrolled_courses. One row per course in a
// student's enrollment; Position keeps the order courses were selected in,
// which is also the timetable generation order.
type EnrolledCourse struct {
	EnrolledCourseID string `gorm:"type:uuid;primaryKey"                  json:"enrolled_course_id"`
	StudentID        string `gorm:"type:uuid;not null;index"              json:"student_id"`
	Position         int    `gorm:"type:smallint;not null"                json:"position"`
	Name             string `gorm:"type:varchar(100);not null"            json:"name"`
	CreditHours      int    `gorm:"type:smallint;not null"                json:"credit_hours"`
	Instructor       string `gorm:"type:varchar(100);not null;default:''" json:"instructor"`
	Room             string `gorm:"type:varchar(50);not null;default:'TBD'" json:"room"`
	BaseModel
}

// TableName table name
func (EnrolledCourse) TableName() string { return "enrolled_courses" }

// BeforeCreate assigns a UUID when the caller did not.
func (e *EnrolledCourse) BeforeCreate(_ *gorm.DB) error {
	if e.EnrolledCourseID == "" {
		e.EnrolledCourseID = uuid.NewString()
	}
	return nil
}
