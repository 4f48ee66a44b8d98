package timetable

import "time"

// View is what the presentation layer renders for one selected date.
type View struct {
	Date        time.Time
	Visible     []ScheduledClass
	Highlighted map[string]bool
}

// Empty reports whether there are no classes on the selected date.
func (v View) Empty() bool { return len(v.Visible) == 0 }

// IsHighlighted reports whether the class with id is in progress.
func (v View) IsHighlighted(id string) bool { return v.Highlighted[id] }

// Project filters schedule to the weekday of selectedDate and marks the
// classes running at now. Highlighting only happens when selectedDate is
// the same calendar day as now; slot boundaries are taken on selectedDate
// in its location, start inclusive and end exclusive.
func Project(schedule []ScheduledClass, selectedDate, now time.Time) View {
	view := View{
		Date:        selectedDate,
		Visible:     []ScheduledClass{},
		Highlighted: map[string]bool{},
	}

	weekday := selectedDate.Weekday()
	for _, c := range schedule {
		if c.Day == weekday {
			view.Visible = append(view.Visible, c)
		}
	}
	if len(view.Visible) == 0 || !sameDay(selectedDate, now) {
		return view
	}

	nowLocal := now.In(selectedDate.Location())
	for _, c := range view.Visible {
		if c.Day != nowLocal.Weekday() {
			continue
		}
		if c.Slot.Contains(selectedDate, nowLocal) {
			view.Highlighted[c.ID] = true
		}
	}
	return view
}

func sameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
