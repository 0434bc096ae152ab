package web

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samin124/portfolio/internal/contact"
	"github.com/samin124/portfolio/internal/logger"
)

type ContactSubmitter interface {
	Submit(ctx context.Context, sub contact.Submission) error
}

type ContactHandler struct {
	relay   ContactSubmitter
	log     *logger.Logger
	metrics *Metrics
}

func NewContactHandler(relay ContactSubmitter, log *logger.Logger, m *Metrics) *ContactHandler {
	return &ContactHandler{relay: relay, log: log.With("handler", "contact"), metrics: m}
}

func (h *ContactHandler) PublicRoutes(g *gin.RouterGroup) {
	g.POST("/contact", h.Submit)
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		h.metrics.contact("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	err := h.relay.Submit(c.Request.Context(), sub)
	switch {
	case errors.Is(err, contact.ErrValidation):
		h.log.Warn("contact form rejected", "kind", "validation", "error", err)
		h.metrics.contact("invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
	case err != nil:
		h.log.Error("contact relay failed", "kind", "relay", "error", err)
		h.metrics.contact("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send email"})
	default:
		h.metrics.contact("sent")
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email sent successfully"})
	}
}
