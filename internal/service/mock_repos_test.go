package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"student-portal/config"
	"student-portal/internal/model"
	"student-portal/internal/repository"
	"student-portal/internal/timetable"
	pkgerrors "student-portal/pkg/errors"
	"student-portal/pkg/jwt"
)

// ── Mock StudentRepository ──

type mockStudentRepo struct {
	students  map[string]*model.Student // key: student_id
	createErr error
}

func newMockStudentRepo() *mockStudentRepo {
	return &mockStudentRepo{students: make(map[string]*model.Student)}
}

func (m *mockStudentRepo) Create(_ context.Context, student *model.Student) error {
	if m.createErr != nil {
		return m.createErr
	}
	if student.StudentID == "" {
		student.StudentID = "student-" + student.SapID
	}
	student.CreatedAt = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	m.students[student.StudentID] = student
	return nil
}

func (m *mockStudentRepo) GetByID(_ context.Context, id string) (*model.Student, error) {
	if s, ok := m.students[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) GetByEmail(_ context.Context, email string) (*model.Student, error) {
	for _, s := range m.students {
		if s.Email == email {
			return s, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockStudentRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := m.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return err == nil, err
}

// ── Mock EnrollmentRepository ──

type mockEnrollmentRepo struct {
	students *mockStudentRepo
	rows     map[string][]model.EnrolledCourse // key: student_id
}

func newMockEnrollmentRepo(students *mockStudentRepo) *mockEnrollmentRepo {
	return &mockEnrollmentRepo{students: students, rows: make(map[string][]model.EnrolledCourse)}
}

func (m *mockEnrollmentRepo) ListByStudent(_ context.Context, studentID string) ([]model.EnrolledCourse, error) {
	rows := append([]model.EnrolledCourse(nil), m.rows[studentID]...)
	sort.Slice(rows, func(i, j int) bool { return rows[i].Position < rows[j].Position })
	return rows, nil
}

func (m *mockEnrollmentRepo) ReplaceByStudent(_ context.Context, studentID string, expectedVersion int, courses []model.EnrolledCourse) (int, error) {
	s, ok := m.students.students[studentID]
	if !ok || s.Version != expectedVersion {
		return 0, pkgerrors.ErrOptimisticLock
	}
	s.Version++
	rows := make([]model.EnrolledCourse, len(courses))
	for i, c := range courses {
		c.StudentID = studentID
		c.Position = i
		rows[i] = c
	}
	m.rows[studentID] = rows
	return s.Version, nil
}

// ── Mock TokenBlacklist ──

type mockBlacklist struct {
	mu   sync.Mutex
	jtis map[string]time.Duration
}

func newMockBlacklist() *mockBlacklist {
	return &mockBlacklist{jtis: make(map[string]time.Duration)}
}

func (m *mockBlacklist) BlacklistToken(_ context.Context, jti string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.jtis[jti] = ttl
	return nil
}

func (m *mockBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jtis[jti]
	return ok, nil
}

// ── test helpers ──

func testConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
			MinPasswordLength:       6,
		},
		Portal: config.PortalConfig{
			EmailPattern: `^[0-9]+@students\.riphah\.edu\.pk$`,
			CreditCap:    timetable.DefaultCreditCap,
			Days:         timetable.DefaultDays,
			Slots:        timetable.DefaultSlots,
			Timezone:     "UTC",
		},
	}
}

type testEnv struct {
	svc         *Service
	students    *mockStudentRepo
	enrollments *mockEnrollmentRepo
	blacklist   *mockBlacklist
	jwtMgr      *jwt.Manager
}

func setupTestService() *testEnv {
	cfg := testConfig()
	students := newMockStudentRepo()
	enrollments := newMockEnrollmentRepo(students)
	repo := &repository.Repository{Student: students, Enrollment: enrollments}
	blacklist := newMockBlacklist()
	jwtMgr := jwt.NewManager(&cfg.Auth)

	svc, err := NewService(cfg, repo, jwtMgr, blacklist, nil, zap.NewNop())
	if err != nil {
		panic(err)
	}
	return &testEnv{
		svc:         svc,
		students:    students,
		enrollments: enrollments,
		blacklist:   blacklist,
		jwtMgr:      jwtMgr,
	}
}

// seedStudent stores a student with the given courses already enrolled.
func (e *testEnv) seedStudent(sapID string, courses ...string) *model.Student {
	s := &model.Student{
		StudentID:    "student-" + sapID,
		SapID:        sapID,
		Email:        sapID + "@students.riphah.edu.pk",
		PasswordHash: "unused",
	}
	s.Version = 1
	s.CreatedAt = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	e.students.students[s.StudentID] = s

	rows := make([]model.EnrolledCourse, 0, len(courses))
	for i, name := range courses {
		c, ok := timetable.LookupCourse(name)
		if !ok {
			panic("unknown course " + name)
		}
		rows = append(rows, model.EnrolledCourse{
			StudentID:   s.StudentID,
			Position:    i,
			Name:        c.Name,
			CreditHours: c.CreditHours,
			Instructor:  c.Instructor,
		})
	}
	e.enrollments.rows[s.StudentID] = rows
	return s
}
