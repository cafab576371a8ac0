package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"prep-backend/internal/analyses"
	"prep-backend/internal/proof"
	"prep-backend/internal/services/health"
	"prep-backend/internal/shared/config"
	"prep-backend/internal/shared/metrics"
	"prep-backend/internal/shared/server/middleware"
	"prep-backend/internal/shared/server/respond"
)

const analyzeRateGroup = "ANALYZE"

// RouterDeps carries the handlers NewRouter mounts.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analyses.Handler
	ProofHandler    *proof.Handler
	Health          *health.Service
	Limiter         *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	analyzeLimit := middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			analyzeRateGroup: {Rate: deps.Config.AnalyzeRateLimitRPS, Burst: deps.Config.AnalyzeRateBurst},
		},
		DefaultGroup: analyzeRateGroup,
		Limiter:      deps.Limiter,
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			respond.OK(c, gin.H{"ok": true})
			return
		}
		status := deps.Health.Status(c.Request.Context())
		code := http.StatusOK
		if ok, _ := status["ok"].(bool); !ok {
			code = http.StatusServiceUnavailable
		}
		respond.JSON(c, code, status)
	})
	api.GET("/metrics", metrics.Handler())

	if deps.AnalysisHandler != nil {
		deps.AnalysisHandler.RegisterRoutes(api, analyzeLimit)
	}
	if deps.ProofHandler != nil {
		deps.ProofHandler.RegisterRoutes(api)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
