package timetable

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func syntheticCourses(n int) []Course {
	out := make([]Course, n)
	for i := range out {
		out[i] = Course{Name: fmt.Sprintf("Course %02d", i+1), CreditHours: 1}
	}
	return out
}

func TestGenerate_Empty(t *testing.T) {
	gen := NewGenerator(DefaultGrid())
	got := gen.Generate(nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGenerate_RoundRobin(t *testing.T) {
	gen := NewGenerator(DefaultGrid())
	got := gen.Generate(syntheticCourses(6))
	require.Len(t, got, 6)

	want := []struct {
		day  time.Weekday
		slot string
	}{
		{time.Monday, "09:00 - 10:30"},
		{time.Monday, "10:45 - 12:15"},
		{time.Monday, "13:30 - 15:00"},
		{time.Monday, "15:15 - 16:45"},
		{time.Tuesday, "09:00 - 10:30"},
		{time.Tuesday, "10:45 - 12:15"},
	}
	for i, w := range want {
		assert.Equal(t, w.day, got[i].Day, got[i].ID)
		assert.Equal(t, w.slot, got[i].Slot.String(), got[i].ID)
		assert.Equal(t, DefaultRoom, got[i].Room)
	}
	assert.Zero(t, Overlaps(got))
}

func TestGenerate_KeepsRoom(t *testing.T) {
	gen := NewGenerator(DefaultGrid())
	got := gen.Generate([]Course{{Name: "Lab", CreditHours: 1, Room: "CS-Lab 2"}})
	require.Len(t, got, 1)
	assert.Equal(t, "CS-Lab 2", got[0].Room)
}

func TestGenerate_Deterministic(t *testing.T) {
	gen := NewGenerator(DefaultGrid())
	in := syntheticCourses(9)
	assert.Equal(t, gen.Generate(in), gen.Generate(in))
}

func TestGenerate_WrapsAfterLastCell(t *testing.T) {
	gen := NewGenerator(DefaultGrid())
	got := gen.Generate(syntheticCourses(21))
	require.Len(t, got, 21)

	last := got[19]
	assert.Equal(t, time.Friday, last.Day)
	assert.Equal(t, "15:15 - 16:45", last.Slot.String())

	assert.Equal(t, got[0].Day, got[20].Day)
	assert.Equal(t, got[0].Slot, got[20].Slot)
	assert.Equal(t, time.Monday, got[20].Day)
	assert.Equal(t, 1, Overlaps(got))
}

func TestByDay(t *testing.T) {
	gen := NewGenerator(DefaultGrid())
	days := ByDay(gen.Generate(syntheticCourses(5)))
	assert.Len(t, days[time.Monday], 4)
	assert.Len(t, days[time.Tuesday], 1)
	assert.Empty(t, days[time.Wednesday])
}
