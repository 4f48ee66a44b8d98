package handler

import "student-portal/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Student    *StudentHandler
	Enrollment *EnrollmentHandler
	Timetable  *TimetableHandler
}

// NewHandler builds the aggregate.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Student:    NewStudentHandler(svc.Student),
		Enrollment: NewEnrollmentHandler(svc.Enrollment),
		Timetable:  NewTimetableHandler(svc.Timetable),
	}
}
