package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-portal/internal/dto"
	"student-portal/internal/model"
	"student-portal/internal/repository"
	"student-portal/internal/timetable"
	"student-portal/pkg/metrics"
)

var (
	ErrUnknownCourse   = errors.New("course is not in the catalog")
	ErrDuplicateCourse = errors.New("course selected more than once")
)

const (
	toggleAdded    = "added"
	toggleRemoved  = "removed"
	toggleRejected = "rejected"
)

// EnrollmentService course selection under the credit hour cap
type EnrollmentService interface {
	// Catalog lists every offered course, flagging those in selected.
	Catalog(ctx context.Context, selected []string) (*dto.CatalogResponse, error)
	// Toggle flips one course in an unsaved selection; nothing is stored.
	Toggle(ctx context.Context, req *dto.ToggleRequest) (*dto.EnrollmentResponse, error)
	GetEnrollment(ctx context.Context, studentID string) (*dto.EnrollmentResponse, error)
	// Save replaces the stored selection if req.Version is current.
	Save(ctx context.Context, studentID string, req *dto.SaveEnrollmentRequest) (*dto.EnrollmentResponse, error)
}

type enrollmentService struct {
	rules   *rules
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewEnrollmentService creates an EnrollmentService.
func NewEnrollmentService(r *rules, repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) EnrollmentService {
	return &enrollmentService{rules: r, repo: repo, metrics: m, logger: logger}
}

func (s *enrollmentService) Catalog(_ context.Context, selected []string) (*dto.CatalogResponse, error) {
	set, err := s.buildSet(selected)
	if err != nil {
		return nil, err
	}

	items := make([]dto.CatalogItem, 0, len(timetable.Catalog))
	for _, c := range timetable.Catalog {
		items = append(items, dto.CatalogItem{
			CourseResponse: toCourseResponse(c),
			Selected:       timetable.Contains(set, c.Name),
		})
	}
	return &dto.CatalogResponse{
		Courses:      items,
		TotalCredits: timetable.TotalCredits(set),
		CreditCap:    s.rules.selector.Cap(),
	}, nil
}

func (s *enrollmentService) Toggle(_ context.Context, req *dto.ToggleRequest) (*dto.EnrollmentResponse, error) {
	set, err := s.buildSet(req.Selected)
	if err != nil {
		return nil, err
	}
	course, ok := timetable.LookupCourse(req.Course)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCourse, req.Course)
	}

	wasSelected := timetable.Contains(set, course.Name)
	next, err := s.rules.selector.Toggle(course, set)
	if err != nil {
		s.metrics.Toggle(toggleRejected)
		return nil, err
	}
	if wasSelected {
		s.metrics.Toggle(toggleRemoved)
	} else {
		s.metrics.Toggle(toggleAdded)
	}

	return s.toResponse(next, 0), nil
}

func (s *enrollmentService) GetEnrollment(ctx context.Context, studentID string) (*dto.EnrollmentResponse, error) {
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
	return s.toResponse(courses, student.Version), nil
}

func (s *enrollmentService) Save(ctx context.Context, studentID string, req *dto.SaveEnrollmentRequest) (*dto.EnrollmentResponse, error) {
	set, err := s.buildSet(req.Courses)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.Student.GetByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStudentNotFound
		}
		s.logger.Error("query student failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, err
	}

	rows := make([]model.EnrolledCourse, 0, len(set))
	for _, c := range set {
		rows = append(rows, model.EnrolledCourse{
			Name:        c.Name,
			CreditHours: c.CreditHours,
			Instructor:  c.Instructor,
			Room:        c.Room,
		})
	}

	version, err := s.repo.Enrollment.ReplaceByStudent(ctx, studentID, req.Version, rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("enrollment saved",
		zap.String("student_id", studentID),
		zap.Int("courses", len(set)),
		zap.Int("total_credits", timetable.TotalCredits(set)),
		zap.Int("version", version),
	)
	return s.toResponse(set, version), nil
}

// buildSet resolves names against the catalog and replays them as toggles
// from an empty set, so a client cannot smuggle in a set over the cap.
func (s *enrollmentService) buildSet(names []string) ([]timetable.Course, error) {
	set := []timetable.Course{}
	for _, name := range names {
		course, ok := timetable.LookupCourse(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownCourse, name)
		}
		if timetable.Contains(set, course.Name) {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateCourse, name)
		}
		next, err := s.rules.selector.Toggle(course, set)
		if err != nil {
			return nil, err
		}
		set = next
	}
	return set, nil
}

func (s *enrollmentService) toResponse(set []timetable.Course, version int) *dto.EnrollmentResponse {
	return &dto.EnrollmentResponse{
		Courses:      toCourseResponses(set),
		TotalCredits: timetable.TotalCredits(set),
		CreditCap:    s.rules.selector.Cap(),
		Version:      version,
	}
}

// loadCourses reads the stored enrollment in selection order.
func loadCourses(ctx context.Context, repo *repository.Repository, studentID string) ([]timetable.Course, error) {
	rows, err := repo.Enrollment.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	courses := make([]timetable.Course, 0, len(rows))
	for _, row := range rows {
		courses = append(courses, timetable.NormalizeCourse(timetable.CourseRecord{
			Name:        row.Name,
			CreditHours: row.CreditHours,
			Instructor:  row.Instructor,
			Room:        row.Room,
		}))
	}
	return courses, nil
}

func toCourseResponse(c timetable.Course) dto.CourseResponse {
	room := c.Room
	if room == "" {
		room = timetable.DefaultRoom
	}
	return dto.CourseResponse{
		Name:        c.Name,
		CreditHours: c.CreditHours,
		Instructor:  c.Instructor,
		Room:        room,
	}
}

func toCourseResponses(courses []timetable.Course) []dto.CourseResponse {
	out := make([]dto.CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, toCourseResponse(c))
	}
	return out
}
