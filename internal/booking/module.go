// Package booking provides the test drive booking module.
// This file wires the dispatch service and handler and registers the routes.
package booking

import (
	"showroom_backend/internal/booking/handler"
	"showroom_backend/internal/booking/service"
	"showroom_backend/internal/email"
	apphttp "showroom_backend/internal/http"
	"showroom_backend/platform/config"
	"showroom_backend/platform/httpkit"
	"showroom_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Module is the booking module implementing http.Module.
type Module struct {
	handler *handler.Handler
	limiter *httpkit.IPRateLimiter
}

// NewModule creates the booking module around the shared mail sender.
func NewModule(sender email.Sender, cfg config.BookingConfig, log *logger.Logger) *Module {
	m := &Module{
		handler: handler.New(service.New(sender, cfg, log)),
	}
	if perMinute := cfg.GetSendEmailRateLimit(); perMinute > 0 {
		m.limiter = httpkit.NewPerMinuteLimiter(perMinute, log)
	}
	return m
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "booking"
}

// RegisterRoutes mounts the public booking routes under /api.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	var sendMiddleware []gin.HandlerFunc
	if m.limiter != nil {
		sendMiddleware = append(sendMiddleware, m.limiter.RateLimit())
	}
	m.handler.RegisterRoutes(ctx.API, sendMiddleware...)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
