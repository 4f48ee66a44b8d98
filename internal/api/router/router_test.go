package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"student-portal/config"
	"student-portal/internal/api/handler"
	"student-portal/internal/model"
	"student-portal/internal/repository"
	"student-portal/internal/service"
	"student-portal/internal/timetable"
	"student-portal/pkg/jwt"
	"student-portal/pkg/metrics"
	"student-portal/pkg/validation"
)

const emailPattern = `^[0-9]+@students\.riphah\.edu\.pk$`

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := db.AutoMigrate(&model.Student{}, &model.EnrolledCourse{}); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}

	cfg := &config.Config{
		Server: config.ServerConfig{Port: 8080, MaxBodyBytes: 1 << 20},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret-key-for-unit-testing-2026",
			AccessTokenTTL:          15 * time.Minute,
			RefreshTokenTTLDefault:  24 * time.Hour,
			RefreshTokenTTLRemember: 7 * 24 * time.Hour,
			MinPasswordLength:       6,
		},
		Portal: config.PortalConfig{
			EmailPattern: emailPattern,
			CreditCap:    timetable.DefaultCreditCap,
			Days:         timetable.DefaultDays,
			Slots:        timetable.DefaultSlots,
			Timezone:     "UTC",
		},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
	}
	if err := validation.Register(regexp.MustCompile(emailPattern)); err != nil {
		t.Fatalf("register validation: %v", err)
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	jwtMgr := jwt.NewManager(&cfg.Auth)
	svc, err := service.NewService(cfg, repository.NewRepository(db), jwtMgr, nil, m, zap.NewNop())
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}

	return Setup(cfg, handler.NewHandler(svc), Deps{JWT: jwtMgr, Metrics: m, Gatherer: reg}, zap.NewNop())
}

func do(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestRouter_EnrollmentToTimetable(t *testing.T) {
	r := newTestServer(t)

	w, _ := do(t, r, "GET", "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health: %d", w.Code)
	}

	// signup
	w, env := do(t, r, "POST", "/api/v1/auth/signup", "", map[string]string{
		"email":            "46291@students.riphah.edu.pk",
		"password":         "secret1",
		"confirm_password": "secret1",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup: %d %s", w.Code, w.Body.String())
	}
	var tokens struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(env.Data, &tokens); err != nil || tokens.AccessToken == "" {
		t.Fatalf("signup returned no access token: %v", err)
	}
	token := tokens.AccessToken

	// protected routes need the token
	if w, _ := do(t, r, "GET", "/api/v1/students/me", "", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", w.Code)
	}
	if w, _ := do(t, r, "GET", "/api/v1/students/me", token, nil); w.Code != http.StatusOK {
		t.Errorf("profile: %d", w.Code)
	}

	// current version
	w, env = do(t, r, "GET", "/api/v1/enrollments/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get enrollment: %d", w.Code)
	}
	var enrollment struct {
		Version int `json:"version"`
	}
	_ = json.Unmarshal(env.Data, &enrollment)
	if enrollment.Version != 1 {
		t.Fatalf("expected version 1, got %d", enrollment.Version)
	}

	// save
	w, env = do(t, r, "PUT", "/api/v1/enrollments/me", token, map[string]interface{}{
		"courses": []string{"Database Systems", "Linear Algebra"},
		"version": 1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("save: %d %s", w.Code, w.Body.String())
	}

	// a second save with the old version loses
	w, env = do(t, r, "PUT", "/api/v1/enrollments/me", token, map[string]interface{}{
		"courses": []string{"Computer Networks"},
		"version": 1,
	})
	if w.Code != http.StatusConflict || env.Code != 13004 {
		t.Errorf("expected stale save to conflict with 13004, got %d %d", w.Code, env.Code)
	}

	// week view
	w, env = do(t, r, "GET", "/api/v1/timetable/week", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("week: %d", w.Code)
	}
	var week struct {
		Days []struct {
			Day     string `json:"day"`
			Classes []struct {
				Name string `json:"name"`
				Time string `json:"time"`
			} `json:"classes"`
		} `json:"days"`
	}
	if err := json.Unmarshal(env.Data, &week); err != nil {
		t.Fatalf("decode week: %v", err)
	}
	mon := week.Days[0]
	if mon.Day != "Mon" || len(mon.Classes) != 2 {
		t.Fatalf("expected two Monday classes, got %+v", mon)
	}
	if mon.Classes[0].Name != "Database Systems" || mon.Classes[0].Time != "09:00 - 10:30" {
		t.Errorf("unexpected first class %+v", mon.Classes[0])
	}
	if mon.Classes[1].Name != "Linear Algebra" || mon.Classes[1].Time != "10:45 - 12:15" {
		t.Errorf("unexpected second class %+v", mon.Classes[1])
	}

	// weekend day view
	w, env = do(t, r, "GET", "/api/v1/timetable/day?date=2026-10-24", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("day: %d", w.Code)
	}
	if !strings.Contains(string(env.Data), service.NoClassesMessage) {
		t.Errorf("expected empty-day message, got %s", env.Data)
	}

	// metrics scrape
	w, _ = do(t, r, "GET", "/metrics", "", nil)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "portal_timetable_generations_total") {
		t.Errorf("metrics endpoint missing portal collectors: %d", w.Code)
	}
}

func TestRouter_ToggleOverCap(t *testing.T) {
	r := newTestServer(t)

	w, env := do(t, r, "POST", "/api/v1/enrollments/toggle", "", map[string]interface{}{
		"selected": []string{
			"Database Systems", "Object Oriented Programming", "Analysis of Algorithms",
			"Linear Algebra", "Probability & Statistics", "Islamic Studies",
		},
		"course": "Computer Networks",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d %s", w.Code, w.Body.String())
	}
	if env.Code != 13001 {
		t.Errorf("expected code 13001, got %d", env.Code)
	}
}
