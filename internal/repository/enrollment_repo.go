package repository

import (
	"context"

	"gorm.io/gorm"

	"student-portal/internal/model"
	pkgerrors "student-portal/pkg/errors"
)

// EnrollmentRepository persisted enrollment sets
type EnrollmentRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]model.EnrolledCourse, error)
	// ReplaceByStudent swaps the whole set if the student's version still
	// equals expectedVersion, and returns the new version.
	ReplaceByStudent(ctx context.Context, studentID string, expectedVersion int, courses []model.EnrolledCourse) (int, error)
}

type enrollmentRepo struct {
	db *gorm.DB
}

// NewEnrollmentRepo creates an EnrollmentRepository.
func NewEnrollmentRepo(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepo{db: db}
}

func (r *enrollmentRepo) ListByStudent(ctx context.Context, studentID string) ([]model.EnrolledCourse, error) {
	var courses []model.EnrolledCourse
	err := r.db.WithContext(ctx).
		Where("student_id = ?", studentID).
		Order("position ASC").
		Find(&courses).Error
	return courses, err
}

func (r *enrollmentRepo) ReplaceByStudent(ctx context.Context, studentID string, expectedVersion int, courses []model.EnrolledCourse) (int, error) {
	newVersion := expectedVersion + 1
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Student{}).
			Where("student_id = ? AND version = ?", studentID, expectedVersion).
			Update("version", newVersion)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return pkgerrors.ErrOptimisticLock
		}

		// hard delete
		if err := tx.Where("student_id = ?", studentID).
			Delete(&model.EnrolledCourse{}).Error; err != nil {
			return err
		}

		for i := range courses {
			courses[i].StudentID = studentID
			courses[i].Position = i
		}
		if len(courses) > 0 {
			if err := tx.Create(&courses).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return newVersion, nil
}
