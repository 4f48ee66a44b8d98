package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"student-portal/internal/service"
	"student-portal/pkg/response"
)

// StudentHandler profile endpoints
type StudentHandler struct {
	studentSvc service.StudentService
}

// NewStudentHandler creates a StudentHandler.
func NewStudentHandler(studentSvc service.StudentService) *StudentHandler {
	return &StudentHandler{studentSvc: studentSvc}
}

// GetProfile
// GET /api/v1/students/me
func (h *StudentHandler) GetProfile(c *gin.Context) {
	studentID, ok := MustGetStudentID(c)
	if !ok {
		return
	}

	profile, err := h.studentSvc.GetProfile(c.Request.Context(), studentID)
	if err != nil {
		handleStudentError(c, err)
		return
	}
	response.OK(c, profile)
}

func handleStudentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrStudentNotFound):
		response.NotFound(c, 12001, "student not found")
	default:
		response.InternalError(c)
	}
}
