package timetable

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCourse(t *testing.T, name string) Course {
	t.Helper()
	c, ok := LookupCourse(name)
	require.True(t, ok, "course %q missing from catalog", name)
	return c
}

func TestSelector_Toggle_AddAndRemove(t *testing.T) {
	sel := NewSelector(DefaultCreditCap)
	db := mustCourse(t, "Database Systems")
	la := mustCourse(t, "Linear Algebra")

	set, err := sel.Toggle(db, nil)
	require.NoError(t, err)
	set, err = sel.Toggle(la, set)
	require.NoError(t, err)

	assert.Equal(t, []Course{db, la}, set)
	assert.Equal(t, 7, TotalCredits(set))

	set, err = sel.Toggle(db, set)
	require.NoError(t, err)
	assert.Equal(t, []Course{la}, set)
	assert.False(t, Contains(set, db.Name))
}

func TestSelector_Toggle_RejectsOverCap(t *testing.T) {
	sel := NewSelector(DefaultCreditCap)

	var set []Course
	// 4 + 4 + 3*4 = 20
	for _, name := range []string{
		"Database Systems",
		"Object Oriented Programming",
		"Linear Algebra",
		"Operating Systems",
		"Computer Networks",
		"Assembly Language",
	} {
		var err error
		set, err = sel.Toggle(mustCourse(t, name), set)
		require.NoError(t, err)
	}
	require.Equal(t, 20, TotalCredits(set))

	before := append([]Course(nil), set...)
	got, err := sel.Toggle(mustCourse(t, "Islamic Studies"), set)
	assert.ErrorIs(t, err, ErrLimitExceeded)
	assert.Equal(t, before, got)
	assert.Equal(t, before, set)
}

func TestSelector_Toggle_RemoveIgnoresCap(t *testing.T) {
	sel := NewSelector(3)
	la := mustCourse(t, "Linear Algebra")

	set, err := sel.Toggle(la, nil)
	require.NoError(t, err)

	set, err = sel.Toggle(la, set)
	require.NoError(t, err)
	assert.Empty(t, set)
}

func TestSelector_Toggle_DoesNotMutateInput(t *testing.T) {
	sel := NewSelector(DefaultCreditCap)
	a := mustCourse(t, "Analysis of Algorithms")
	b := mustCourse(t, "Linear Algebra")
	c := mustCourse(t, "Computer Networks")

	set := []Course{a, b, c}
	_, err := sel.Toggle(b, set)
	require.NoError(t, err)
	assert.Equal(t, []Course{a, b, c}, set)
}

func TestSelector_Toggle_TwiceRestoresSet(t *testing.T) {
	sel := NewSelector(DefaultCreditCap)
	start := []Course{mustCourse(t, "Analysis of Algorithms"), mustCourse(t, "Linear Algebra")}

	for _, c := range Catalog {
		once, err := sel.Toggle(c, start)
		if err != nil {
			continue
		}
		twice, err := sel.Toggle(c, once)
		require.NoError(t, err)
		if Contains(start, c.Name) {
			// removing then re-adding moves the course to the end
			assert.ElementsMatch(t, start, twice, c.Name)
			continue
		}
		assert.Equal(t, start, twice, c.Name)
	}
}

func TestSelector_CapInvariant_RandomSequences(t *testing.T) {
	sel := NewSelector(DefaultCreditCap)
	rng := rand.New(rand.NewSource(42))

	for run := 0; run < 200; run++ {
		var set []Course
		for step := 0; step < 60; step++ {
			c := Catalog[rng.Intn(len(Catalog))]
			next, err := sel.Toggle(c, set)
			if err == nil {
				set = next
			}
			require.LessOrEqual(t, TotalCredits(set), DefaultCreditCap)
		}
		names := map[string]bool{}
		for _, c := range set {
			require.False(t, names[c.Name], "duplicate %s", c.Name)
			names[c.Name] = true
		}
	}
}

func TestNewSelector_NonPositiveCap(t *testing.T) {
	assert.Equal(t, DefaultCreditCap, NewSelector(0).Cap())
	assert.Equal(t, 12, NewSelector(12).Cap())
}

func TestNormalizeCourse(t *testing.T) {
	tests := []struct {
		name string
		rec  CourseRecord
		want Course
	}{
		{
			name: "prof key",
			rec:  CourseRecord{Name: "Linear Algebra", CreditHours: 3, Prof: "Dr. Rida"},
			want: Course{Name: "Linear Algebra", CreditHours: 3, Instructor: "Dr. Rida", Room: "TBD"},
		},
		{
			name: "professor key",
			rec:  CourseRecord{Name: "Linear Algebra", CreditHours: 3, Professor: "Dr. Rida", Room: "B-12"},
			want: Course{Name: "Linear Algebra", CreditHours: 3, Instructor: "Dr. Rida", Room: "B-12"},
		},
		{
			name: "instructor wins",
			rec:  CourseRecord{Name: " Linear Algebra ", CreditHours: 3, Instructor: "Dr. X", Prof: "Dr. Y"},
			want: Course{Name: "Linear Algebra", CreditHours: 3, Instructor: "Dr. X", Room: "TBD"},
		},
		{
			name: "nothing set",
			rec:  CourseRecord{Name: "Linear Algebra", CreditHours: 3, Room: "  "},
			want: Course{Name: "Linear Algebra", CreditHours: 3, Room: "TBD"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCourse(tt.rec))
		})
	}
}

func TestCatalog_UniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, c := range Catalog {
		assert.False(t, seen[c.Name], c.Name)
		assert.Positive(t, c.CreditHours, c.Name)
		seen[c.Name] = true
	}
	assert.Len(t, Catalog, 20)
}
