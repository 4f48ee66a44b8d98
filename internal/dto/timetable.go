package dto

// ScheduledClassResponse one class card
type ScheduledClassResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Instructor  string `json:"instructor"`
	CreditHours int    `json:"credit_hours"`
	Room        string `json:"room"`
	Day         string `json:"day"`
	Time        string `json:"time"`         // 24-hour, "13:30 - 15:00"
	DisplayTime string `json:"display_time"` // "1:30 PM - 3:00 PM"
	Current     bool   `json:"current"`
}

// DayRequest GET /timetable/day
type DayRequest struct {
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// DayResponse classes on one selected date
type DayResponse struct {
	Date    string                   `json:"date"`
	Day     string                   `json:"day"`
	Classes []ScheduledClassResponse `json:"classes"`
	Message string                   `json:"message,omitempty"`
}

// DayColumn classes of one weekday in the weekly grid
type DayColumn struct {
	Day     string                   `json:"day"`
	Classes []ScheduledClassResponse `json:"classes"`
}

// WeekResponse GET /timetable/week
type WeekResponse struct {
	Days     []DayColumn `json:"days"`
	Slots    []string    `json:"slots"`
	Overlaps int         `json:"overlaps"`
}

// ExportRequest GET /timetable/export.ics
type ExportRequest struct {
	WeekOf string `form:"week_of" binding:"omitempty,datetime=2006-01-02"`
}
