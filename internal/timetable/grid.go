package timetable

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidSlot    = errors.New("invalid time slot")
	ErrInvalidWeekday = errors.New("invalid weekday")
	ErrEmptyGrid      = errors.New("grid needs at least one day and one slot")
)

// DefaultDays and DefaultSlots describe the weekly grid used when no
// configuration overrides it.
var (
	DefaultDays  = []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
	DefaultSlots = []string{
		"09:00 - 10:30",
		"10:45 - 12:15",
		"13:30 - 15:00",
		"15:15 - 16:45",
	}
)

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// DayName returns the three letter name of d, e.g. "Mon".
func DayName(d time.Weekday) string {
	return d.String()[:3]
}

// ParseWeekday accepts three letter or full English day names.
func ParseWeekday(s string) (time.Weekday, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if len(key) > 3 {
		key = key[:3]
	}
	d, ok := weekdayNames[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWeekday, s)
	}
	return d, nil
}

// Clock is a wall-clock time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a 24-hour "HH:MM" string.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Clock{}, fmt.Errorf("%w: %q is not HH:MM", ErrInvalidSlot, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("%w: bad hour in %q", ErrInvalidSlot, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || len(mm) != 2 || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("%w: bad minute in %q", ErrInvalidSlot, s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// String formats c as "HH:MM".
func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

// Format12 formats c for display, e.g. "1:30 PM".
func (c Clock) Format12() string {
	suffix := "AM"
	if c.Hour >= 12 {
		suffix = "PM"
	}
	h := c.Hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, c.Minute, suffix)
}

func (c Clock) minutes() int { return c.Hour*60 + c.Minute }

// On attaches c to the calendar date of day, in day's location.
func (c Clock) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, c.Hour, c.Minute, 0, 0, day.Location())
}

// Slot is one daily time range of the grid, [Start, End).
type Slot struct {
	Start Clock
	End   Clock
}

// ParseSlot parses "HH:MM - HH:MM". The end must be after the start.
func ParseSlot(s string) (Slot, error) {
	startStr, endStr, ok := strings.Cut(s, "-")
	if !ok {
		return Slot{}, fmt.Errorf("%w: %q is not a range", ErrInvalidSlot, s)
	}
	start, err := ParseClock(startStr)
	if err != nil {
		return Slot{}, err
	}
	end, err := ParseClock(endStr)
	if err != nil {
		return Slot{}, err
	}
	if end.minutes() <= start.minutes() {
		return Slot{}, fmt.Errorf("%w: %q ends before it starts", ErrInvalidSlot, s)
	}
	return Slot{Start: start, End: end}, nil
}

// String returns the canonical 24-hour form, "09:00 - 10:30".
func (s Slot) String() string {
	return s.Start.String() + " - " + s.End.String()
}

// Display returns the 12-hour form, "9:00 AM - 10:30 AM".
func (s Slot) Display() string {
	return s.Start.Format12() + " - " + s.End.Format12()
}

// Contains reports whether t falls within the slot on the calendar date
// of day. The end boundary is exclusive.
func (s Slot) Contains(day, t time.Time) bool {
	start := s.Start.On(day)
	end := s.End.On(day)
	return !t.Before(start) && t.Before(end)
}

// MarshalText implements encoding.TextMarshaler.
func (s Slot) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Slot) UnmarshalText(b []byte) error {
	parsed, err := ParseSlot(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Grid is the fixed weekday × slot layout classes are placed on.
type Grid struct {
	Days  []time.Weekday
	Slots []Slot
}

// ParseGrid validates day names and slot strings. Callers are expected to
// run it once at startup and refuse to start on error.
func ParseGrid(days, slots []string) (Grid, error) {
	if len(days) == 0 || len(slots) == 0 {
		return Grid{}, ErrEmptyGrid
	}
	g := Grid{
		Days:  make([]time.Weekday, 0, len(days)),
		Slots: make([]Slot, 0, len(slots)),
	}
	for _, d := range days {
		wd, err := ParseWeekday(d)
		if err != nil {
			return Grid{}, err
		}
		g.Days = append(g.Days, wd)
	}
	for _, s := range slots {
		slot, err := ParseSlot(s)
		if err != nil {
			return Grid{}, err
		}
		g.Slots = append(g.Slots, slot)
	}
	return g, nil
}

// MustParseGrid is ParseGrid that panics on error.
func MustParseGrid(days, slots []string) Grid {
	g, err := ParseGrid(days, slots)
	if err != nil {
		panic(err)
	}
	return g
}

// DefaultGrid returns Mon–Fri with the four default slots.
func DefaultGrid() Grid {
	return MustParseGrid(DefaultDays, DefaultSlots)
}

// Cells is the number of distinct day/slot cells.
func (g Grid) Cells() int { return len(g.Days) * len(g.Slots) }
