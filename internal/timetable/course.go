package timetable

import "strings"

// DefaultRoom is filled in for courses whose record carries no room.
const DefaultRoom = "TBD"

// Course is a catalog entry. Room is optional on input; see NormalizeCourse.
type Course struct {
	Name        string `json:"name"                 yaml:"name"`
	CreditHours int    `json:"credit_hours"         yaml:"credit_hours"`
	Instructor  string `json:"instructor"           yaml:"instructor"`
	Room        string `json:"room,omitempty"       yaml:"room,omitempty"`
}

// CourseRecord is the loosely shaped record read back from persistence.
// Older records name the instructor "prof" or "professor".
type CourseRecord struct {
	Name        string `json:"name"`
	CreditHours int    `json:"ch"`
	Instructor  string `json:"instructor,omitempty"`
	Prof        string `json:"prof,omitempty"`
	Professor   string `json:"professor,omitempty"`
	Room        string `json:"room,omitempty"`
}

// NormalizeCourse converts an ingested record into a Course. It is the only
// place where missing optional fields get their defaults.
func NormalizeCourse(rec CourseRecord) Course {
	instructor := firstNonEmpty(rec.Instructor, rec.Prof, rec.Professor)
	room := strings.TrimSpace(rec.Room)
	if room == "" {
		room = DefaultRoom
	}
	return Course{
		Name:        strings.TrimSpace(rec.Name),
		CreditHours: rec.CreditHours,
		Instructor:  instructor,
		Room:        room,
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// Catalog is the fixed list of courses offered for enrollment.
var Catalog = []Course{
	{Name: "Analysis of Algorithms", CreditHours: 3, Instructor: "Dr. Adeel", Room: DefaultRoom},
	{Name: "Database Systems", CreditHours: 4, Instructor: "Dr. Waqas", Room: DefaultRoom},
	{Name: "Linear Algebra", CreditHours: 3, Instructor: "Dr. Rida", Room: DefaultRoom},
	{Name: "Probability & Statistics", CreditHours: 3, Instructor: "Dr. Ali", Room: DefaultRoom},
	{Name: "Software Requirement Engineering", CreditHours: 3, Instructor: "Dr. Sara", Room: DefaultRoom},
	{Name: "Software Design & Architecture", CreditHours: 3, Instructor: "Dr. Hamza", Room: DefaultRoom},
	{Name: "Parallel & Distributed Computing", CreditHours: 3, Instructor: "Dr. Usman", Room: DefaultRoom},
	{Name: "HCI & Computer Graphics", CreditHours: 3, Instructor: "Dr. Nabeel", Room: DefaultRoom},
	{Name: "Mobile Application Development", CreditHours: 3, Instructor: "Dr. Amna", Room: DefaultRoom},
	{Name: "Introduction to Machine Learning", CreditHours: 3, Instructor: "Dr. Saad", Room: DefaultRoom},
	{Name: "Expository Writing", CreditHours: 3, Instructor: "Ma’am Aysha", Room: DefaultRoom},
	{Name: "Islamic Studies", CreditHours: 2, Instructor: "Ma’am Iqra", Room: DefaultRoom},
	{Name: "Basic Teachings of Quran", CreditHours: 2, Instructor: "Ma’am Hira", Room: DefaultRoom},
	{Name: "Digital Logic Design", CreditHours: 3, Instructor: "Dr. Sidra", Room: DefaultRoom},
	{Name: "Computer Organization", CreditHours: 3, Instructor: "Dr. Anum Aleem", Room: DefaultRoom},
	{Name: "Assembly Language", CreditHours: 3, Instructor: "Dr. Anum Aleem", Room: DefaultRoom},
	{Name: "Object Oriented Programming", CreditHours: 4, Instructor: "Dr. Amna", Room: DefaultRoom},
	{Name: "Operating Systems", CreditHours: 3, Instructor: "Dr. Anum Aleem", Room: DefaultRoom},
	{Name: "Data Communication", CreditHours: 3, Instructor: "Dr. Farhan", Room: DefaultRoom},
	{Name: "Computer Networks", CreditHours: 3, Instructor: "Dr. Aisha", Room: DefaultRoom},
}

// LookupCourse finds a catalog course by exact name.
func LookupCourse(name string) (Course, bool) {
	for _, c := range Catalog {
		if c.Name == name {
			return c, true
		}
	}
	return Course{}, false
}
