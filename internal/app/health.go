package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 2 * time.Second

// Pinger is a dependency the health check probes
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthChecker struct {
	deps map[string]Pinger
}

func NewHealthChecker(infra Infrastructure) *HealthChecker {
	return newHealthChecker(map[string]Pinger{
		"postgres": infra.Postgres(),
		"redis":    infra.Redis(),
	})
}

func newHealthChecker(deps map[string]Pinger) *HealthChecker {
	return &HealthChecker{deps: deps}
}

// check pings every dependency concurrently and reports each result
func (h *HealthChecker) check(ctx context.Context) (map[string]string, error) {
	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps))
	for name := range h.deps {
		names = append(names, name)
	}
	errs := make([]error, len(names))

	var g errgroup.Group
	for idx, name := range names {
		g.Go(func() error {
			if err := h.deps[name].Ping(ctx); err != nil {
				errs[idx] = err
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	err := g.Wait()

	checks := make(map[string]string, len(names))
	for idx, name := range names {
		if errs[idx] != nil {
			checks[name] = "fail"
		} else {
			checks[name] = "pass"
		}
	}
	return checks, err
}

func (h *HealthChecker) Handler(c *gin.Context) {
	checks, err := h.check(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "fail",
			"checks": checks,
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "pass",
		"checks": checks,
	})
}
