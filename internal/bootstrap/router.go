package bootstrap

import (
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httpapi "github.com/buildsense/energy-backend/internal/api/http"
	"github.com/buildsense/energy-backend/internal/api/http/middleware"
	"github.com/buildsense/energy-backend/internal/api/http/routes"
	"github.com/buildsense/energy-backend/internal/observability"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	CORSOrigins []string
	Logger      *zap.Logger
	Metrics     *observability.Metrics
	Gatherer    prometheus.Gatherer
	DBPing      httpapi.PingFunc
	RedisPing   httpapi.PingFunc
	V1          routes.V1Deps
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(corsConfig(dep.CORSOrigins)))
	r.Use(middleware.RequestIDMiddleware(dep.Logger, dep.Metrics))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DBPing, dep.RedisPing, nil)
	healthHandler.RegisterRoutes(r)

	if dep.Gatherer != nil {
		httpapi.RegisterMetrics(r, dep.Gatherer)
	}

	routes.RegisterV1(r, dep.V1)
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders: []string{"X-Request-Id", "Content-Disposition"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}
