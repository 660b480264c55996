// Package handler serves the public booking endpoints: the send-email relay
// and the model list.
package handler

import (
	"context"
	"net/http"

	"showroom_backend/internal/booking/transport"
	"showroom_backend/platform/apperr"
	"showroom_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidRequest = "invalid request body"

	maxBodyBytes = 64 << 10
)

// Dispatcher sends the booking emails for one request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req transport.BookingRequest) error
}

// Handler serves the public test drive endpoints.
type Handler struct {
	svc Dispatcher
}

// New creates a booking handler.
func New(svc Dispatcher) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the booking routes. Extra middleware (e.g. a rate
// limiter) applies only to the send endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, sendMiddleware ...gin.HandlerFunc) {
	send := make([]gin.HandlerFunc, 0, len(sendMiddleware)+1)
	send = append(send, sendMiddleware...)
	rg.POST("/send-email", append(send, h.SendEmail)...)
	rg.GET("/test-drive/models", h.ListModels)
}

// SendEmail relays a booking as the showroom notification and the customer
// confirmation. Fields are not validated; missing ones render as empty text.
func (h *Handler) SendEmail(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	var req transport.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.HandleError(c, apperr.BadRequest(msgInvalidRequest).WithOp("booking.SendEmail"))
		return
	}

	if err := h.svc.Dispatch(c.Request.Context(), req); httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, httpkit.Result{Success: true})
}

// ListModels returns the selectable vehicle models in display order.
func (h *Handler) ListModels(c *gin.Context) {
	httpkit.OK(c, transport.ModelsResponse{
		Models:  transport.Models(),
		Default: transport.DefaultModel(),
	})
}
