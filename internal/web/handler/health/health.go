// Package health provides liveness and metrics endpoints.
package health

import (
	"sync/atomic"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/callboard/callboard/internal/config"
	"github.com/callboard/callboard/internal/web/handler"
)

const (
	// RouteCheckAlive is the liveness probe route.
	RouteCheckAlive = handler.RootPath + "checkalive"
	// RouteMetrics is the prometheus metrics route.
	RouteMetrics = handler.RootPath + "metrics"

	aliveBody = "OK"
	deadBody  = "shutting down"
)

// Service provides the health endpoints.
type Service struct {
	alive *atomic.Bool
}

// Handler is the exported instance.
var Handler = Service{}

// Init registers routes. The alive flag is flipped off during graceful
// shutdown so load balancers drain this instance.
func (s *Service) Init(app *fiber.App, cfg *config.Config, db *gorm.DB, alive *atomic.Bool) {
	if app == nil || cfg == nil || db == nil {
		log.Fatal().Msg(handler.ErrNilACDFatalLogMsg)
		return
	}

	s.alive = alive

	// Routes
	app.Get(RouteCheckAlive, s.CheckAlive)
	app.Get(RouteMetrics, adaptor.HTTPHandler(promhttp.Handler()))
}

// CheckAlive reports liveness, 503 while draining.
func (s *Service) CheckAlive(c *fiber.Ctx) error {
	if s.alive != nil && !s.alive.Load() {
		return c.Status(fiber.StatusServiceUnavailable).SendString(deadBody)
	}

	return c.SendString(aliveBody)
}
