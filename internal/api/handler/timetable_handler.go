package handler

import (
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"student-portal/internal/dto"
	"student-portal/internal/service"
	"student-portal/pkg/response"
	"student-portal/pkg/validation"
)

const (
	contentTypeICS  = "text/calendar; charset=utf-8"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// TimetableHandler timetable views and exports
type TimetableHandler struct {
	svc service.TimetableService
	now func() time.Time
}

// NewTimetableHandler creates a TimetableHandler.
func NewTimetableHandler(svc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{svc: svc, now: time.Now}
}

// GetWeek
// GET /api/v1/timetable/week
func (h *TimetableHandler) GetWeek(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.svc.GetWeek(c.Request.Context(), studentID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetDay
// GET /api/v1/timetable/day?date=2026-10-19
func (h *TimetableHandler) GetDay(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.DayRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request", validation.Details(err))
		return
	}

	resp, err := h.svc.GetDay(c.Request.Context(), studentID, req.Date, h.now())
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	response.OK(c, resp)
}

// ExportICS downloads the week as an iCalendar file.
// GET /api/v1/timetable/export.ics?week_of=2026-10-19
func (h *TimetableHandler) ExportICS(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.ExportRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request", validation.Details(err))
		return
	}

	data, filename, err := h.svc.ExportICS(c.Request.Context(), studentID, req.WeekOf, h.now())
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	sendFile(c, filename, contentTypeICS, data)
}

// ExportXLSX downloads the week as a spreadsheet.
// GET /api/v1/timetable/export.xlsx
func (h *TimetableHandler) ExportXLSX(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	data, filename, err := h.svc.ExportXLSX(c.Request.Context(), studentID)
	if err != nil {
		handleTimetableError(c, err)
		return
	}
	sendFile(c, filename, contentTypeXLSX, data)
}

func sendFile(c *gin.Context, filename, contentType string, data []byte) {
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, contentType, data)
}

func handleTimetableError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidDate):
		response.BadRequest(c, 14001, "date must be YYYY-MM-DD")
	case errors.Is(err, service.ErrExportFailed):
		response.Error(c, http.StatusInternalServerError, 14002, "failed to build export file")
	default:
		response.InternalError(c)
	}
}
