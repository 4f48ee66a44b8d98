package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	ics "github.com/arran4/golang-ical"
)

// 2026-10-19 is a Monday.
var monday930 = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func TestGetWeek(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291", "Database Systems", "Linear Algebra")

	week, err := env.svc.Timetable.GetWeek(context.Background(), s.StudentID)
	if err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	if len(week.Days) != 5 || week.Days[0].Day != "Mon" || week.Days[4].Day != "Fri" {
		t.Fatalf("expected Mon..Fri columns, got %+v", week.Days)
	}
	if len(week.Slots) != 4 || week.Slots[0] != "09:00 - 10:30" {
		t.Errorf("unexpected slots %v", week.Slots)
	}
	if week.Overlaps != 0 {
		t.Errorf("expected no overlaps, got %d", week.Overlaps)
	}

	mon := week.Days[0].Classes
	if len(mon) != 2 {
		t.Fatalf("expected 2 classes on Monday, got %d", len(mon))
	}
	if mon[0].Name != "Database Systems" || mon[0].Time != "09:00 - 10:30" {
		t.Errorf("unexpected first class %+v", mon[0])
	}
	if mon[1].Name != "Linear Algebra" || mon[1].Time != "10:45 - 12:15" {
		t.Errorf("unexpected second class %+v", mon[1])
	}
	for _, d := range week.Days[1:] {
		if len(d.Classes) != 0 {
			t.Errorf("expected %s to be empty", d.Day)
		}
	}
}

func TestGetWeek_EmptyEnrollment(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291")

	week, err := env.svc.Timetable.GetWeek(context.Background(), s.StudentID)
	if err != nil {
		t.Fatalf("GetWeek: %v", err)
	}
	for _, d := range week.Days {
		if d.Classes == nil || len(d.Classes) != 0 {
			t.Errorf("expected empty non-nil list for %s", d.Day)
		}
	}
}

func TestGetDay_HighlightsCurrentClass(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291", "Database Systems", "Linear Algebra")

	day, err := env.svc.Timetable.GetDay(context.Background(), s.StudentID, "2026-10-19", monday930)
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	if day.Day != "Mon" || day.Date != "2026-10-19" {
		t.Errorf("unexpected day header %s %s", day.Day, day.Date)
	}
	if day.Message != "" {
		t.Errorf("expected no empty message, got %q", day.Message)
	}
	if len(day.Classes) != 2 {
		t.Fatalf("expected 2 classes, got %d", len(day.Classes))
	}
	if !day.Classes[0].Current || day.Classes[1].Current {
		t.Errorf("expected only Database Systems current, got %v %v", day.Classes[0].Current, day.Classes[1].Current)
	}
	if day.Classes[0].DisplayTime != "9:00 AM - 10:30 AM" {
		t.Errorf("unexpected display time %q", day.Classes[0].DisplayTime)
	}
	if day.Classes[1].DisplayTime != "10:45 AM - 12:15 PM" {
		t.Errorf("unexpected display time %q", day.Classes[1].DisplayTime)
	}
	if day.Classes[0].Room != "TBD" {
		t.Errorf("expected room TBD, got %q", day.Classes[0].Room)
	}
}

func TestGetDay_OtherDateNeverHighlights(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291", "Database Systems")

	// next Monday, same wall-clock time
	day, err := env.svc.Timetable.GetDay(context.Background(), s.StudentID, "2026-10-26", monday930)
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	if len(day.Classes) != 1 || day.Classes[0].Current {
		t.Errorf("expected one non-current class, got %+v", day.Classes)
	}
}

func TestGetDay_Weekend(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291", "Database Systems", "Linear Algebra")

	day, err := env.svc.Timetable.GetDay(context.Background(), s.StudentID, "2026-10-24", monday930)
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	if len(day.Classes) != 0 {
		t.Errorf("expected no classes on Saturday, got %d", len(day.Classes))
	}
	if day.Message != NoClassesMessage {
		t.Errorf("expected %q, got %q", NoClassesMessage, day.Message)
	}
}

func TestGetDay_DefaultsToToday(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291", "Database Systems")

	day, err := env.svc.Timetable.GetDay(context.Background(), s.StudentID, "", monday930)
	if err != nil {
		t.Fatalf("GetDay: %v", err)
	}
	if day.Date != "2026-10-19" {
		t.Errorf("expected today, got %s", day.Date)
	}
	if len(day.Classes) != 1 || !day.Classes[0].Current {
		t.Errorf("expected current Database Systems, got %+v", day.Classes)
	}
}

func TestGetDay_InvalidDate(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291")

	_, err := env.svc.Timetable.GetDay(context.Background(), s.StudentID, "19/10/2026", monday930)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestExportICS(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291", "Database Systems", "Linear Algebra", "Computer Networks",
		"Operating Systems", "Islamic Studies")

	data, filename, err := env.svc.Timetable.ExportICS(context.Background(), s.StudentID, "2026-10-21", monday930)
	if err != nil {
		t.Fatalf("ExportICS: %v", err)
	}
	if filename != "timetable_2026-10-19.ics" {
		t.Errorf("expected file named after the week's Monday, got %s", filename)
	}

	cal, err := ics.ParseCalendar(strings.NewReader(string(data)))
	if err != nil {
		t.Fatalf("export should parse as iCalendar: %v", err)
	}
	events := cal.Events()
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}

	first := events[0]
	if got := first.GetProperty(ics.ComponentPropertySummary).Value; got != "Database Systems" {
		t.Errorf("unexpected summary %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyDtStart).Value; got != "20261019T090000Z" {
		t.Errorf("unexpected DTSTART %q", got)
	}
	if got := first.GetProperty(ics.ComponentPropertyLocation).Value; got != "TBD" {
		t.Errorf("unexpected location %q", got)
	}

	// fifth course is the first slot on Tuesday
	if got := events[4].GetProperty(ics.ComponentPropertyDtStart).Value; got != "20261020T090000Z" {
		t.Errorf("unexpected Tuesday DTSTART %q", got)
	}
}

func TestExportICS_InvalidWeek(t *testing.T) {
	env := setupTestService()
	s := env.seedStudent("46291")

	_, _, err := env.svc.Timetable.ExportICS(context.Background(), s.StudentID, "next week", monday930)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestWeekStart(t *testing.T) {
	cases := map[string]string{
		"2026-10-19": "2026-10-19", // Monday
		"2026-10-23": "2026-10-19", // Friday
		"2026-10-25": "2026-10-19", // Sunday belongs to the week before
	}
	for in, want := range cases {
		d, _ := time.Parse(time.DateOnly, in)
		if got := weekStart(d).Format(time.DateOnly); got != want {
			t.Errorf("weekStart(%s) = %s, want %s", in, got, want)
		}
	}
}
