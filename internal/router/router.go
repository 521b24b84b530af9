package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/healthtrack/records-api/internal/config"
	"github.com/healthtrack/records-api/internal/handler/health"
	"github.com/healthtrack/records-api/internal/middleware"
	"github.com/healthtrack/records-api/pkg/logger"
	"github.com/healthtrack/records-api/pkg/metrics"
)

// Handler is any entity handler that can register itself under the
// versioned API group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type Router struct {
	engine   *gin.Engine
	handlers []Handler
	healthH  *health.Handler
}

func NewRouter(
	cfg *config.Config,
	l *logger.Logger,
	m *metrics.Metrics,
	healthH *health.Handler,
	handlers ...Handler,
) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(
		middleware.RequestID(),
		middleware.Recovery(l),
		middleware.Logger(l, m),
		middleware.CORS(middleware.DefaultCORSConfig()),
	)

	if cfg.RateLimit.Enabled {
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		engine.Use(limiter.RateLimit())
	}

	return &Router{
		engine:   engine,
		handlers: handlers,
		healthH:  healthH,
	}
}

func (r *Router) Setup() {
	r.healthH.RegisterRoutes(r.engine)
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.engine.Group("/api/v1")
	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
