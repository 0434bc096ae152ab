package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/samin124/portfolio/internal/analytics"
	"github.com/samin124/portfolio/internal/auth"
	"github.com/samin124/portfolio/internal/logger"
)

// Authenticator exchanges the admin credential pair for a token.
type Authenticator interface {
	Login(username, password string) (auth.Token, error)
}

// StatsSource reports visitor statistics.
type StatsSource interface {
	Stats(ctx context.Context) (*analytics.Stats, error)
}

type AdminHandler struct {
	auth    Authenticator
	stats   StatsSource
	log     *logger.Logger
	metrics *Metrics
}

// NewAdminHandler wires login and, when stats is non-nil, the visitor stats
// endpoint.
func NewAdminHandler(a Authenticator, stats StatsSource, log *logger.Logger, m *Metrics) *AdminHandler {
	return &AdminHandler{auth: a, stats: stats, log: log.With("handler", "admin"), metrics: m}
}

func (h *AdminHandler) PublicRoutes(g *gin.RouterGroup) {
	g.POST("/admin/login", h.Login)
}

func (h *AdminHandler) AdminRoutes(g *gin.RouterGroup) {
	if h.stats != nil {
		g.GET("/admin/stats", h.Stats)
	}
}

type loginReq struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	username := req.Username
	if username == "" {
		username = req.Email
	}
	tok, err := h.auth.Login(username, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		h.log.Warn("admin login failed", "kind", "auth", "request_id", c.GetString(requestIDKey))
		h.metrics.login("rejected")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if err != nil {
		h.log.Error("issue token", "error", err)
		h.metrics.login("error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
		return
	}
	h.log.Info("admin login succeeded", "request_id", c.GetString(requestIDKey))
	h.metrics.login("ok")
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   tok.Value,
		"expiry":  tok.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AdminHandler) Stats(c *gin.Context) {
	stats, err := h.stats.Stats(c.Request.Context())
	if err != nil {
		h.log.Error("load visitor stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
