package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"student-portal/pkg/response"
)

// Context keys set by middleware.JWTAuth.
const (
	CtxStudentID = "student_id"
	CtxSapID     = "sap_id"
	CtxTokenJTI  = "token_jti"
	CtxTokenExp  = "token_exp"
)

// MustGetStudentID returns the authenticated student's id. When the JWT
// middleware did not run it writes a 401 and returns false; callers
// return immediately.
func MustGetStudentID(c *gin.Context) (string, bool) {
	id := c.GetString(CtxStudentID)
	if id == "" {
		response.Unauthorized(c, 10002, "not authenticated")
		return "", false
	}
	return id, true
}

// tokenMeta returns the id and expiry of the access token on the request.
func tokenMeta(c *gin.Context) (string, time.Time) {
	return c.GetString(CtxTokenJTI), c.GetTime(CtxTokenExp)
}
