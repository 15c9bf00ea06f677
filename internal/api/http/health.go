package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
)

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	DB        string    `json:"db"`
	Redis     string    `json:"redis"`
}

// PingFunc reports whether a dependency is reachable. A nil PingFunc marks the
// dependency as disabled.
type PingFunc func(ctx context.Context) error

type HealthHandler struct {
	serviceName string
	version     string
	db          PingFunc
	redis       PingFunc
	clock       clockwork.Clock
}

func NewHealthHandler(serviceName, version string, db, redis PingFunc, clock clockwork.Clock) *HealthHandler {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		db:          db,
		redis:       redis,
		clock:       clock,
	}
}

// HealthCheck always answers 200: the API keeps serving with the cache down,
// so dependency state is reported rather than enforced.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: h.clock.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
		DB:        probe(c.Request.Context(), h.db),
		Redis:     probe(c.Request.Context(), h.redis),
	})
}

func probe(ctx context.Context, ping PingFunc) string {
	if ping == nil {
		return "disabled"
	}
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}
