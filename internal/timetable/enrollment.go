package timetable

import (
	"errors"
	"fmt"
)

// DefaultCreditCap is the maximum total credit hours of one enrollment.
const DefaultCreditCap = 20

// ErrLimitExceeded is returned when adding a course would push the total
// credit hours above the cap. The set is left untouched.
var ErrLimitExceeded = errors.New("credit hour limit exceeded")

// Selector toggles courses in and out of an enrollment set.
type Selector struct {
	cap int
}

// NewSelector returns a Selector enforcing the given cap. A non-positive
// cap falls back to DefaultCreditCap.
func NewSelector(creditCap int) *Selector {
	if creditCap <= 0 {
		creditCap = DefaultCreditCap
	}
	return &Selector{cap: creditCap}
}

// Cap returns the credit hour limit.
func (s *Selector) Cap() int { return s.cap }

// Toggle removes course from set if present, otherwise appends it when the
// cap allows. The input slice is never modified; insertion order is kept.
func (s *Selector) Toggle(course Course, set []Course) ([]Course, error) {
	if idx := indexOf(set, course.Name); idx >= 0 {
		next := make([]Course, 0, len(set)-1)
		next = append(next, set[:idx]...)
		return append(next, set[idx+1:]...), nil
	}

	total := TotalCredits(set)
	if total+course.CreditHours > s.cap {
		return set, fmt.Errorf("%w: %d + %d > %d", ErrLimitExceeded, total, course.CreditHours, s.cap)
	}

	next := make([]Course, 0, len(set)+1)
	next = append(next, set...)
	return append(next, course), nil
}

// TotalCredits sums the credit hours of set.
func TotalCredits(set []Course) int {
	total := 0
	for _, c := range set {
		total += c.CreditHours
	}
	return total
}

// Contains reports whether a course named name is in set.
func Contains(set []Course, name string) bool {
	return indexOf(set, name) >= 0
}

func indexOf(set []Course, name string) int {
	for i, c := range set {
		if c.Name == name {
			return i
		}
	}
	return -1
}
