package timetable

import "time"

// ScheduledClass is one placement of an enrolled course on the grid. It is
// derived data and is recomputed every time the enrollment changes.
type ScheduledClass struct {
	ID     string       `json:"id"`
	Course Course       `json:"course"`
	Day    time.Weekday `json:"day"`
	Slot   Slot         `json:"slot"`
	Room   string       `json:"room"`
}

// DayName returns the three letter day of the class.
func (c ScheduledClass) DayName() string { return DayName(c.Day) }

// Generator places courses on a grid round-robin.
type Generator struct {
	grid Grid
}

// NewGenerator returns a Generator over grid.
func NewGenerator(grid Grid) *Generator {
	return &Generator{grid: grid}
}

// Grid returns the grid used for placement.
func (g *Generator) Grid() Grid { return g.grid }

// Generate walks the grid slot by slot, then day by day, assigning one
// course per cell in enrollment order. Past the last cell it wraps to the
// first, so more courses than cells share cells. No conflict detection is
// done.
func (g *Generator) Generate(courses []Course) []ScheduledClass {
	if len(courses) == 0 || g.grid.Cells() == 0 {
		return []ScheduledClass{}
	}

	out := make([]ScheduledClass, 0, len(courses))
	dayIndex, slotIndex := 0, 0
	for _, c := range courses {
		room := c.Room
		if room == "" {
			room = DefaultRoom
		}
		out = append(out, ScheduledClass{
			ID:     c.Name,
			Course: c,
			Day:    g.grid.Days[dayIndex],
			Slot:   g.grid.Slots[slotIndex],
			Room:   room,
		})

		slotIndex++
		if slotIndex >= len(g.grid.Slots) {
			slotIndex = 0
			dayIndex++
			if dayIndex >= len(g.grid.Days) {
				dayIndex = 0
			}
		}
	}
	return out
}

// Overlaps counts the cells holding more than one class. It is non-zero
// only when the enrollment outgrew the grid.
func Overlaps(schedule []ScheduledClass) int {
	type cell struct {
		day  time.Weekday
		slot Slot
	}
	seen := make(map[cell]int, len(schedule))
	for _, c := range schedule {
		seen[cell{c.Day, c.Slot}]++
	}
	n := 0
	for _, count := range seen {
		if count > 1 {
			n++
		}
	}
	return n
}

// ByDay groups schedule by weekday keeping generation order within a day.
func ByDay(schedule []ScheduledClass) map[time.Weekday][]ScheduledClass {
	out := make(map[time.Weekday][]ScheduledClass)
	for _, c := range schedule {
		out[c.Day] = append(out[c.Day], c)
	}
	return out
}
