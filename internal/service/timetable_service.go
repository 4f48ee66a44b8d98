package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"student-portal/internal/dto"
	"student-portal/internal/repository"
	"student-portal/internal/timetable"
	"student-portal/pkg/metrics"
)

var (
	ErrInvalidDate  = errors.New("date must be YYYY-MM-DD")
	ErrExportFailed = errors.New("failed to build export file")
)

// NoClassesMessage is shown for a date with nothing scheduled.
const NoClassesMessage = "No classes for this day."

const icsProductID = "-//student-portal//timetable//EN"

// TimetableService generated timetables for a student's saved enrollment
type TimetableService interface {
	GetWeek(ctx context.Context, studentID string) (*dto.WeekResponse, error)
	// GetDay projects the week onto date (YYYY-MM-DD, empty for today) and
	// marks the classes running at now.
	GetDay(ctx context.Context, studentID, date string, now time.Time) (*dto.DayResponse, error)
	// ExportICS renders one event per class for the week containing weekOf.
	ExportICS(ctx context.Context, studentID, weekOf string, now time.Time) ([]byte, string, error)
	// ExportXLSX renders the weekly grid as a spreadsheet.
	ExportXLSX(ctx context.Context, studentID string) ([]byte, string, error)
}

type timetableService struct {
	rules   *rules
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewTimetableService creates a TimetableService.
func NewTimetableService(r *rules, repo *repository.Repository, m *metrics.Metrics, logger *zap.Logger) TimetableService {
	return &timetableService{rules: r, repo: repo, metrics: m, logger: logger}
}

// generate loads the saved enrollment and places it on the grid.
func (s *timetableService) generate(ctx context.Context, studentID string) ([]timetable.ScheduledClass, int, error) {
	courses, err := loadCourses(ctx, s.repo, studentID)
	if err != nil {
		s.logger.Error("query enrollment failed", zap.String("student_id", studentID), zap.Error(err))
		return nil, 0, err
	}

	schedule := s.rules.generator.Generate(courses)
	overlaps := timetable.Overlaps(schedule)
	s.metrics.Generated(overlaps)
	if overlaps > 0 {
		s.logger.Warn("timetable wrapped around the grid",
			zap.String("student_id", studentID),
			zap.Int("courses", len(courses)),
			zap.Int("overlapping_cells", overlaps),
		)
	}
	return schedule, overlaps, nil
}

func (s *timetableService) GetWeek(ctx context.Context, studentID string) (*dto.WeekResponse, error) {
	schedule, overlaps, err := s.generate(ctx, studentID)
	if err != nil {
		return nil, err
	}

	grid := s.rules.generator.Grid()
	byDay := timetable.ByDay(schedule)

	days := make([]dto.DayColumn, 0, len(grid.Days))
	for _, d := range grid.Days {
		classes := make([]dto.ScheduledClassResponse, 0, len(byDay[d]))
		for _, c := range byDay[d] {
			classes = append(classes, toClassResponse(c, false))
		}
		days = append(days, dto.DayColumn{Day: timetable.DayName(d), Classes: classes})
	}

	slots := make([]string, 0, len(grid.Slots))
	for _, sl := range grid.Slots {
		slots = append(slots, sl.String())
	}

	return &dto.WeekResponse{Days: days, Slots: slots, Overlaps: overlaps}, nil
}

func (s *timetableService) GetDay(ctx context.Context, studentID, date string, now time.Time) (*dto.DayResponse, error) {
	selected, err := s.parseDate(date, now)
	if err != nil {
		return nil, err
	}

	schedule, _, err := s.generate(ctx, studentID)
	if err != nil {
		return nil, err
	}

	view := timetable.Project(schedule, selected, now)
	classes := make([]dto.ScheduledClassResponse, 0, len(view.Visible))
	for _, c := range view.Visible {
		classes = append(classes, toClassResponse(c, view.IsHighlighted(c.ID)))
	}

	resp := &dto.DayResponse{
		Date:    selected.Format(time.DateOnly),
		Day:     timetable.DayName(selected.Weekday()),
		Classes: classes,
	}
	if view.Empty() {
		resp.Message = NoClassesMessage
	}
	return resp, nil
}

func (s *timetableService) ExportICS(ctx context.Context, studentID, weekOf string, now time.Time) ([]byte, string, error) {
	anchor, err := s.parseDate(weekOf, now)
	if err != nil {
		return nil, "", err
	}

	schedule, _, err := s.generate(ctx, studentID)
	if err != nil {
		return nil, "", err
	}

	monday := weekStart(anchor)
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(icsProductID)

	for i, c := range schedule {
		day := monday.AddDate(0, 0, isoOffset(c.Day))
		// index keeps UIDs distinct when classes share a cell
		uid := fmt.Sprintf("%s-%s-%02d@student-portal", studentID, monday.Format("20060102"), i)

		event := cal.AddEvent(uid)
		event.SetDtStampTime(now)
		event.SetStartAt(c.Slot.Start.On(day))
		event.SetEndAt(c.Slot.End.On(day))
		event.SetSummary(c.Course.Name)
		event.SetLocation(c.Room)
		event.SetDescription(fmt.Sprintf("%s · %d credit hours", c.Course.Instructor, c.Course.CreditHours))
	}

	filename := fmt.Sprintf("timetable_%s.ics", monday.Format(time.DateOnly))
	return []byte(cal.Serialize()), filename, nil
}

// parseDate reads YYYY-MM-DD in the portal timezone; empty means the
// calendar day of now.
func (s *timetableService) parseDate(value string, now time.Time) (time.Time, error) {
	if value == "" {
		y, m, d := now.In(s.rules.location).Date()
		return time.Date(y, m, d, 0, 0, 0, 0, s.rules.location), nil
	}
	t, err := time.ParseInLocation(time.DateOnly, value, s.rules.location)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}

// isoOffset is the number of days from Monday to d.
func isoOffset(d time.Weekday) int {
	return (int(d) + 6) % 7
}

func weekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -isoOffset(t.Weekday()))
}

func toClassResponse(c timetable.ScheduledClass, current bool) dto.ScheduledClassResponse {
	return dto.ScheduledClassResponse{
		ID:          c.ID,
		Name:        c.Course.Name,
		Instructor:  c.Course.Instructor,
		CreditHours: c.Course.CreditHours,
		Room:        c.Room,
		Day:         c.DayName(),
		Time:        c.Slot.String(),
		DisplayTime: c.Slot.Display(),
		Current:     current,
	}
}
