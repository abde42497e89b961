package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/college-records/internal/config"
	"github.com/deppfellow/college-records/internal/middleware"
	"github.com/deppfellow/college-records/internal/server"
	"github.com/labstack/echo/v4"
)

// Probe checks one dependency.
type Probe func(ctx context.Context) error

var errNotConfigured = errors.New("not configured")

// HealthHandler serves GET /status for load balancers and uptime monitors.
type HealthHandler struct {
	Handler
	probes map[string]Probe
}

// NewHealthHandler probes the dependencies named in
// observability.health_checks.checks.
func NewHealthHandler(s *server.Server) *HealthHandler {
	probes := map[string]Probe{
		config.HealthCheckDatabase: func(ctx context.Context) error {
			if s.DB == nil {
				return errNotConfigured
			}
			return s.DB.Ping(ctx)
		},
	}

	// Redis is optional; it is probed only when connected.
	if s.Redis != nil {
		probes[config.HealthCheckRedis] = func(ctx context.Context) error {
			return s.Redis.Ping(ctx).Err()
		}
	}

	return NewHealthHandlerWithProbes(s, probes)
}

func NewHealthHandlerWithProbes(s *server.Server, probes map[string]Probe) *HealthHandler {
	return &HealthHandler{
		Handler: NewHandler(s),
		probes:  probes,
	}
}

type checkResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time,omitempty"`
	Error        string `json:"error,omitempty"`
}

type healthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]checkResult `json:"checks"`
}

// CheckHealth returns 200 when every required check passes and 503 when the
// database is unreachable. A failing Redis is reported but does not fail
// the endpoint.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()
	obs := h.server.Config.Observability

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := healthResponse{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]checkResult),
	}

	var names []string
	timeout := 5 * time.Second
	if obs != nil {
		timeout = obs.HealthCheckTimeout()
		if obs.HealthChecks.Enabled {
			names = obs.HealthChecks.Checks
		}
	} else {
		names = []string{config.HealthCheckDatabase, config.HealthCheckRedis}
	}

	healthy := true
	for _, name := range names {
		probe, ok := h.probes[name]
		if !ok {
			response.Checks[name] = checkResult{Status: "disabled"}
			continue
		}

		ctx, cancel := context.WithTimeout(c.Request().Context(), timeout)
		probeStart := time.Now()
		err := probe(ctx)
		elapsed := time.Since(probeStart)
		cancel()

		if err != nil {
			response.Checks[name] = checkResult{
				Status:       "unhealthy",
				ResponseTime: elapsed.String(),
				Error:        err.Error(),
			}
			if name == config.HealthCheckDatabase {
				healthy = false
			}

			logger.Error().
				Err(err).
				Str("check", name).
				Dur("response_time", elapsed).
				Msg("health check failed")

			h.recordFailure(name, elapsed, err)
			continue
		}

		response.Checks[name] = checkResult{
			Status:       "healthy",
			ResponseTime: elapsed.String(),
		}
		logger.Debug().
			Str("check", name).
			Dur("response_time", elapsed).
			Msg("health check passed")
	}

	if !healthy {
		response.Status = "unhealthy"
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("service unhealthy")
		return c.JSON(http.StatusServiceUnavailable, response)
	}

	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write JSON response: %w", err)
	}
	return nil
}

func (h *HealthHandler) recordFailure(check string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}
	app.RecordCustomEvent("HealthCheckError", map[string]any{
		"check_type":       check,
		"operation":        "health_check",
		"error_type":       check + "_unhealthy",
		"response_time_ms": elapsed.Milliseconds(),
		"error_message":    err.Error(),
	})
}
