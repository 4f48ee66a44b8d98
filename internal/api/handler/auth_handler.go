package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"student-portal/internal/dto"
	"student-portal/internal/service"
	"student-portal/pkg/response"
	"student-portal/pkg/validation"
)

// AuthHandler auth endpoints
type AuthHandler struct {
	authSvc service.AuthService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc}
}

// Signup creates an account.
// POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req dto.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if validation.IsStudentEmailFailure(err) {
			handleAuthError(c, service.ErrInvalidEmailFormat)
			return
		}
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request", validation.Details(err))
		return
	}

	result, err := h.authSvc.Signup(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.Created(c, result)
}

// Login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request", validation.Details(err))
		return
	}

	result, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

// Refresh exchanges a refresh token for a new pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, 10001, "invalid request", validation.Details(err))
		return
	}

	result, err := h.authSvc.Refresh(c.Request.Context(), &req)
	if err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, result)
}

// Logout revokes the access token used for this request.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if _, ok := MustGetStudentID(c); !ok {
		return
	}
	jti, exp := tokenMeta(c)
	if err := h.authSvc.Logout(c.Request.Context(), jti, exp); err != nil {
		handleAuthError(c, err)
		return
	}
	response.OK(c, nil)
}

func handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidEmailFormat):
		response.BadRequest(c, 11001, "use your university email, e.g. 12345@students.riphah.edu.pk")
	case errors.Is(err, service.ErrWeakPassword):
		response.BadRequest(c, 11002, "password is too short")
	case errors.Is(err, service.ErrPasswordMismatch):
		response.BadRequest(c, 11003, "passwords do not match")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11004, "email already in use")
	case errors.Is(err, service.ErrAccountNotFound):
		response.NotFound(c, 11005, "account not found")
	case errors.Is(err, service.ErrWrongPassword):
		response.Unauthorized(c, 11006, "wrong password")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Unauthorized(c, 11007, "refresh token is invalid or expired")
	default:
		response.InternalError(c)
	}
}
