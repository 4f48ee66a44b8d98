package service

import (
	"fmt"
	"regexp"
	"time"

	"go.uber.org/zap"

	"student-portal/config"
	"student-portal/internal/repository"
	"student-portal/internal/timetable"
	"student-portal/pkg/jwt"
	"student-portal/pkg/metrics"
)

// Service aggregates every service.
type Service struct {
	Auth       AuthService
	Student    StudentService
	Enrollment EnrollmentService
	Timetable  TimetableService
}

// rules is the parsed portal section of the config shared by services.
type rules struct {
	emailPattern *regexp.Regexp
	selector     *timetable.Selector
	generator    *timetable.Generator
	location     *time.Location
}

func newRules(cfg *config.PortalConfig) (*rules, error) {
	pattern, err := regexp.Compile(cfg.EmailPattern)
	if err != nil {
		return nil, fmt.Errorf("email pattern: %w", err)
	}
	grid, err := cfg.Grid()
	if err != nil {
		return nil, fmt.Errorf("grid: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, fmt.Errorf("timezone: %w", err)
	}
	return &rules{
		emailPattern: pattern,
		selector:     timetable.NewSelector(cfg.CreditCap),
		generator:    timetable.NewGenerator(grid),
		location:     loc,
	}, nil
}

// NewService builds the aggregate. blacklist and m may be nil.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	blacklist TokenBlacklist,
	m *metrics.Metrics,
	logger *zap.Logger,
) (*Service, error) {
	r, err := newRules(&cfg.Portal)
	if err != nil {
		return nil, err
	}
	return &Service{
		Auth:       NewAuthService(cfg, r, repo, jwtMgr, blacklist, logger),
		Student:    NewStudentService(r, repo, logger),
		Enrollment: NewEnrollmentService(r, repo, m, logger),
		Timetable:  NewTimetableService(r, repo, m, logger),
	}, nil
}
