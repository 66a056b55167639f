package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status      string            `json:"status"`
	Components  map[string]string `json:"components"`
	Environment string            `json:"environment"`
}

func (h HandlerSet) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Family Tree API is running"})
}

// Health pings every configured component. A failing component degrades the
// status without failing the probe.
func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := "healthy"
	components := make(map[string]string, len(names))
	for _, name := range names {
		components[name] = "ok"
		if err := h.checks[name](ctx); err != nil {
			components[name] = "error"
			status = "degraded"
			h.log.Error().Err(err).Str("component", name).Msg("health check failed")
		}
	}

	environment := ""
	if h.cfg != nil {
		environment = h.cfg.Environment
	}

	c.JSON(http.StatusOK, healthResponse{
		Status:      status,
		Components:  components,
		Environment: environment,
	})
}
