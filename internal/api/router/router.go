package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"student-portal/config"
	"student-portal/internal/api/handler"
	"student-portal/internal/api/middleware"
	"student-portal/pkg/jwt"
	"student-portal/pkg/metrics"
	"student-portal/pkg/redis"
)

// auth endpoints allow authRateLimit requests per IP per minute
const authRateLimit = 20

// Deps are the shared clients the router wires into middleware. Redis,
// Metrics and Gatherer may be nil.
type Deps struct {
	JWT      *jwt.Manager
	Redis    *redis.Client
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// Setup builds the gin engine.
func Setup(cfg *config.Config, h *handler.Handler, deps Deps, logger *zap.Logger) *gin.Engine {
	r := gin.New()

	var (
		checker middleware.TokenChecker
		limiter middleware.RateLimiter
	)
	if deps.Redis != nil {
		checker = deps.Redis
		limiter = deps.Redis
	}

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	if cfg.Server.MaxBodyBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.MaxBodyBytes))
	}
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if cfg.Metrics.Enabled && deps.Gatherer != nil {
		r.GET(cfg.Metrics.Path, gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(limiter, authRateLimit, time.Minute))
		{
			auth.POST("/signup", h.Auth.Signup)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// catalog and toggle are stateless and public
		v1.GET("/courses", h.Enrollment.Catalog)
		v1.POST("/enrollments/toggle", h.Enrollment.Toggle)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(deps.JWT, checker))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/students/me", h.Student.GetProfile)

			enrollments := authorized.Group("/enrollments")
			{
				enrollments.GET("/me", h.Enrollment.GetMine)
				enrollments.PUT("/me", h.Enrollment.SaveMine)
			}

			timetable := authorized.Group("/timetable")
			{
				timetable.GET("/week", h.Timetable.GetWeek)
				timetable.GET("/day", h.Timetable.GetDay)
				timetable.GET("/export.ics", h.Timetable.ExportICS)
				timetable.GET("/export.xlsx", h.Timetable.ExportXLSX)
			}
		}
	}

	return r
}
