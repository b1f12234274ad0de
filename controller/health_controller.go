package controller

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthCheck probes one backing service.
type HealthCheck func(ctx context.Context) error

type HealthController struct {
	checks map[string]HealthCheck
}

func NewHealthController(checks map[string]HealthCheck) *HealthController {
	if checks == nil {
		checks = map[string]HealthCheck{}
	}
	return &HealthController{checks: checks}
}

// RegisterRoutes sets up the health check endpoint under the /api group
func (ctrl *HealthController) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/health", ctrl.healthCheck)
	router.HEAD("/health", ctrl.healthCheck)
}

// healthCheck answers 200 when every configured backend responds, 503
// otherwise. HEAD gets the status only.
func (ctrl *HealthController) healthCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(ctrl.checks))
	for name := range ctrl.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	results := make(gin.H, len(names))
	for _, name := range names {
		if err := ctrl.checks[name](ctx); err != nil {
			results[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	if c.Request.Method == http.MethodHead {
		c.Status(status)
		return
	}
	c.JSON(status, gin.H{"status": http.StatusText(status), "checks": results})
}
