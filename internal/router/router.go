package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/meddesk/frontdesk-api/internal/handler"
	patienthandler "github.com/meddesk/frontdesk-api/internal/handler/patient"
	"github.com/meddesk/frontdesk-api/internal/middleware"
	"github.com/meddesk/frontdesk-api/internal/model"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Config struct {
	RateLimit rate.Limit
	RateBurst int
	CORS      middleware.CORSConfig
}

type Router struct {
	engine        *gin.Engine
	auth          *middleware.AuthMiddleware
	authH         Handler
	patientH      *patienthandler.Handler
	doctorH       Handler
	availabilityH Handler
	appointmentH  Handler
	h             *handler.Handler
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH Handler,
	patientH *patienthandler.Handler,
	doctorH Handler,
	availabilityH Handler,
	appointmentH Handler,
	h *handler.Handler,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:        engine,
		auth:          auth,
		authH:         authH,
		patientH:      patientH,
		doctorH:       doctorH,
		availabilityH: availabilityH,
		appointmentH:  appointmentH,
		h:             h,
	}

	engine.Use(
		gin.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	engine.Use(middleware.CORS(config.CORS))

	if config.RateLimit > 0 {
		rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  config.RateLimit,
			Burst: config.RateBurst,
		})
		engine.Use(rateLimiter.RateLimit())
	}

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	r.setupHealthCheck(api)
	r.setupPublicRoutes(api)

	protected := api.Group("")
	protected.Use(r.auth.Authenticate())
	r.setupProtectedRoutes(protected)
}

func (r *Router) setupHealthCheck(rg *gin.RouterGroup) {
	health := rg.Group("/health")
	{
		health.GET("/live", r.h.LivenessCheck)
		health.GET("/ready", r.h.ReadinessCheck)
		health.GET("/metrics", r.h.MetricsHandler)
	}
}

// Public routes cover login, patient self-registration, and the doctor
// roster shown before anyone signs in.
func (r *Router) setupPublicRoutes(rg *gin.RouterGroup) {
	r.authH.RegisterRoutes(rg)
	r.patientH.RegisterPublicRoutes(rg)
	r.doctorH.RegisterRoutes(rg)
}

func (r *Router) setupProtectedRoutes(rg *gin.RouterGroup) {
	r.availabilityH.RegisterRoutes(rg)
	r.appointmentH.RegisterRoutes(rg)

	// Patient records management stays behind the admin desk.
	admin := rg.Group("")
	admin.Use(r.auth.RequireRole(string(model.RoleAdmin)))
	r.patientH.RegisterRoutes(admin)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
