package api

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"coursehub/internal/api/controllers"
	"coursehub/internal/config"
	"coursehub/internal/metrics"
	"coursehub/internal/models/request_models"
	"coursehub/pkg/middleware"
)

type RouterParams struct {
	fx.In

	Config     *config.Config
	Logger     zerolog.Logger
	Metrics    *metrics.Metrics
	Registry   *prometheus.Registry
	UserFinder middleware.UserFinder
	Limiter    *middleware.RateLimiter

	Accounts *controllers.AccountController
	Users    *controllers.UserController
	Courses  *controllers.CourseController
	Lessons  *controllers.LessonController
	Payments *controllers.PaymentController
	Health   *controllers.HealthController
}

func NewRouter(p RouterParams) *gin.Engine {
	request_models.RegisterBindingValidations()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(corsMiddleware(p.Config))
	r.Use(middleware.TraceIDMiddleware(p.Logger))
	r.Use(middleware.AccessLog(p.Metrics))

	r.GET("/healthz", p.Health.Healthz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(p.Registry, promhttp.HandlerOpts{Registry: p.Registry})))

	RegisterRoutes(r, p)
	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	auth := middleware.JWTAuthMiddleware([]byte(p.Config.JWTSecret), p.UserFinder)
	requireAuth := middleware.RequireAuth()

	accounts := r.Group("/accounts")
	accounts.POST("/register", p.Accounts.Register)
	accounts.POST("/login", p.Limiter.Limit("login", 5, time.Minute), p.Accounts.Login)

	api := r.Group("", auth)

	users := api.Group("/users", requireAuth)
	users.GET("", p.Users.ListUsers)
	users.GET("/:id", p.Users.GetUser)
	users.PATCH("/:id", p.Users.UpdateProfile)
	users.PATCH("/:id/role", p.Users.AssignRole)

	courses := api.Group("/courses")
	courses.GET("", p.Courses.ListCourses)
	courses.GET("/:id", p.Courses.GetCourse)
	courses.POST("", requireAuth, p.Courses.CreateCourse)
	courses.PUT("/:id", requireAuth, p.Courses.ReplaceCourse)
	courses.PATCH("/:id", requireAuth, p.Courses.PatchCourse)
	courses.DELETE("/:id", requireAuth, p.Courses.DeleteCourse)
	courses.POST("/:id/subscription", requireAuth, p.Courses.Subscribe)
	courses.DELETE("/:id/subscription", requireAuth, p.Courses.Unsubscribe)

	api.GET("/subscriptions", requireAuth, p.Courses.ListSubscriptions)

	lessons := api.Group("/lessons")
	lessons.GET("", p.Lessons.ListLessons)
	lessons.GET("/:id", p.Lessons.GetLesson)
	lessons.POST("", requireAuth, p.Lessons.CreateLesson)
	lessons.PUT("/:id", requireAuth, p.Lessons.ReplaceLesson)
	lessons.PATCH("/:id", requireAuth, p.Lessons.PatchLesson)
	lessons.DELETE("/:id", requireAuth, p.Lessons.DeleteLesson)

	payments := api.Group("/payments")
	payments.GET("", p.Payments.ListPayments)
	payments.GET("/:id", p.Payments.GetPayment)
	payments.POST("", requireAuth, p.Limiter.Limit("payments", p.Config.PaymentRateLimit, time.Minute), p.Payments.CreatePayment)
	payments.DELETE("/:id", requireAuth, p.Payments.DeletePayment)
}

func corsMiddleware(cfg *config.Config) gin.HandlerFunc {
	corsCfg := cors.DefaultConfig()
	origins := cfg.Origins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", middleware.TraceIDHeader}
	corsCfg.ExposeHeaders = []string{middleware.TraceIDHeader}
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions}
	return cors.New(corsCfg)
}
