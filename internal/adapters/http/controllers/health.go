package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 2 * time.Second

const (
	healthOK       = "ok"
	healthDegraded = "degraded"
	healthDown     = "down"
)

type HealthResponse struct {
	Status   string            `json:"status" example:"ok"`
	Services map[string]string `json:"services" example:"mongodb:ok,redis:ok,rabbitmq:ok"`
	Time     time.Time         `json:"time"`
}

// HealthChecker checks one dependency. A failing optional dependency
// degrades the service without taking it out of rotation.
type HealthChecker struct {
	Name     string
	Optional bool
	Check    func(ctx context.Context) error
}

type HealthController struct {
	checkers []HealthChecker
}

func NewHealthController(checkers []HealthChecker) *HealthController {
	return &HealthController{checkers: checkers}
}

// Health godoc
// @Summary     Health check
// @Description Probes the product store, the cache and the broker. Only the store and broker are required.
// @Tags        health
// @Produce     json
// @Success     200 {object} HealthResponse
// @Failure     503 {object} HealthResponse
// @Router      /api/v1/health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	var (
		mu       sync.Mutex
		services = make(map[string]string, len(h.checkers))
		status   = healthOK
	)

	var g errgroup.Group
	for _, checker := range h.checkers {
		g.Go(func() error {
			err := checker.Check(ctx)

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				services[checker.Name] = healthOK
			case checker.Optional:
				services[checker.Name] = err.Error()
				if status == healthOK {
					status = healthDegraded
				}
			default:
				services[checker.Name] = err.Error()
				status = healthDown
			}
			return nil
		})
	}
	_ = g.Wait()

	code := http.StatusOK
	if status == healthDown {
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{
		Status:   status,
		Services: services,
		Time:     time.Now().UTC(),
	})
}
