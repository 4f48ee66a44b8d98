package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"student-portal/internal/dto"
	"student-portal/internal/service"
	"student-portal/internal/timetable"
	pkgerrors "student-portal/pkg/errors"
	"student-portal/pkg/response"
	"student-portal/pkg/validation"
)

// EnrollmentHandler catalog and enrollment endpoints
type EnrollmentHandler struct {
	enrollmentSvc service.EnrollmentService
}

// NewEnrollmentHandler creates an EnrollmentHandler.
func NewEnrollmentHandler(enrollmentSvc service.EnrollmentService) *EnrollmentHandler {
	return &EnrollmentHandler{enrollmentSvc: enrollmentSvc}
}

// Catalog lists the offered courses.
// GET /api/v1/courses?selected=A&selected=B
func (h *EnrollmentHandler) Catalog(c *gin.Context) {
	var req dto.CatalogRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request", validation.Details(err))
		return
	}

	resp, err := h.enrollmentSvc.Catalog(c.Request.Context(), req.Selected)
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}
	response.OK(c, resp)
}

// Toggle flips one course in the client's working selection.
// POST /api/v1/enrollments/toggle
func (h *EnrollmentHandler) Toggle(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request", validation.Details(err))
		return
	}

	resp, err := h.enrollmentSvc.Toggle(c.Request.Context(), &req)
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}
	response.OK(c, resp)
}

// GetMine returns the saved enrollment.
// GET /api/v1/enrollments/me
func (h *EnrollmentHandler) GetMine(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	resp, err := h.enrollmentSvc.GetEnrollment(c.Request.Context(), studentID)
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}
	response.OK(c, resp)
}

// SaveMine replaces the saved enrollment.
// PUT /api/v1/enrollments/me
func (h *EnrollmentHandler) SaveMine(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	var req dto.SaveEnrollmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request", validation.Details(err))
		return
	}

	resp, err := h.enrollmentSvc.Save(c.Request.Context(), studentID, &req)
	if err != nil {
		handleEnrollmentError(c, err)
		return
	}
	response.OK(c, resp)
}

func handleEnrollmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, timetable.ErrLimitExceeded):
		response.ErrorWithDetails(c, http.StatusConflict, 13001, "credit hour limit exceeded", err.Error())
	case errors.Is(err, service.ErrUnknownCourse):
		response.ErrorWithDetails(c, http.StatusBadRequest, 13002, "unknown course", err.Error())
	case errors.Is(err, service.ErrDuplicateCourse):
		response.ErrorWithDetails(c, http.StatusBadRequest, 13003, "duplicate course", err.Error())
	case errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 13004, "enrollment was changed elsewhere, reload and retry")
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12001, "student not found")
	default:
		response.InternalError(c)
	}
}
