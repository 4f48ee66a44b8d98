package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-portal/internal/dto"
	"student-portal/internal/repository"
	"student-portal/internal/timetable"
)

var ErrStudentNotFound = errors.New("student not found")

// StudentService profile reads
type StudentService interface {
	GetProfile(ctx context.Context, studentID string) (*dto.ProfileResponse, error)
}

type studentService struct {
	rules  *rules
	repo   *repository.Repository
	logger *zap.Logger
}

// NewStudentService creates a StudentService.
func NewStudentService(r *rules, repo *repository.Repository, logger *zap.Logger) StudentService {
	return &studentService{rules: r, repo: repo, logger: logger}
}

func (s *studentService) GetProfile(ctx context.Context, studentID string) (*dto.ProfileResponse, error) {
	student, err := s.repo.Student.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("query student failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	courses, err := loadCourses(ctx, s.repo, studentID)
	if err != nil {
		s.logger.Error("query enrollment failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	return &dto.ProfileResponse{
		StudentResponse: toStudentResponse(student),
		CreatedAt:       student.CreatedAt.Format(time.RFC3339),
		Courses:         toCourseResponses(courses),
		TotalCredits:    timetable.TotalCredits(courses),
		CreditCap:       s.rules.selector.Cap(),
	}, nil
}
