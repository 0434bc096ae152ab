package web

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/samin124/portfolio/internal/logger"
	"github.com/samin124/portfolio/internal/portfolio"
	"github.com/samin124/portfolio/internal/store"
)

const maxSectionBody = 4 << 20

type PortfolioHandler struct {
	store   store.Store
	log     *logger.Logger
	metrics *Metrics
}

func NewPortfolioHandler(s store.Store, log *logger.Logger, m *Metrics) *PortfolioHandler {
	return &PortfolioHandler{store: s, log: log.With("handler", "portfolio"), metrics: m}
}

func (h *PortfolioHandler) PublicRoutes(g *gin.RouterGroup) {
	g.GET("/portfolio", h.Document)
	g.GET("/portfolio/:section", h.Section)
}

func (h *PortfolioHandler) AdminRoutes(g *gin.RouterGroup) {
	g.PUT("/portfolio/:section", h.ReplaceSection)
}

func (h *PortfolioHandler) Document(c *gin.Context) {
	doc, err := h.store.Load(c.Request.Context())
	if err != nil {
		h.log.Error("load portfolio", "kind", "store", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio data"})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *PortfolioHandler) Section(c *gin.Context) {
	section, err := portfolio.ParseSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}
	raw, err := h.store.Section(c.Request.Context(), section)
	switch {
	case errors.Is(err, store.ErrSectionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
	case err != nil:
		h.log.Error("load section", "kind", "store", "section", section, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load portfolio data"})
	default:
		c.JSON(http.StatusOK, raw)
	}
}

// ReplaceSection swaps the whole content of one section. The route sits
// behind RequireAdmin.
func (h *PortfolioHandler) ReplaceSection(c *gin.Context) {
	section, err := portfolio.ParseSection(c.Param("section"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Section not found"})
		return
	}
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxSectionBody))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}
	if err := portfolio.ValidateSection(section, body); err != nil {
		h.log.Warn("rejected section write", "kind", "validation", "section", section, "error", err)
		h.metrics.sectionWrite(string(section), "invalid")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	raw := json.RawMessage(body)
	if section.IsList() {
		if dups, err := portfolio.DuplicateIDs(raw); err == nil && len(dups) > 0 {
			h.log.Warn("section has duplicate ids", "section", section, "ids", dups)
		}
	}
	if err := h.store.ReplaceSection(c.Request.Context(), section, raw); err != nil {
		h.log.Error("save section", "kind", "store", "section", section, "error", err)
		h.metrics.sectionWrite(string(section), "error")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save portfolio data"})
		return
	}
	h.log.Info("section updated", "section", section, "by", c.GetString(adminSubjectKey))
	h.metrics.sectionWrite(string(section), "ok")
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Portfolio updated successfully"})
}
