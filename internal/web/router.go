// Package web exposes the portfolio over HTTP: the content API, admin login,
// the contact relay, visitor stats and the static site.
package web

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/samin124/portfolio/internal/logger"
	"github.com/samin124/portfolio/internal/store"
)

type Deps struct {
	Store    store.Store
	Auth     Authenticator
	Verifier TokenVerifier
	Contact  ContactSubmitter
	// Stats and Visits are optional; nil turns visitor analytics off.
	Stats   StatsSource
	Visits  VisitTracker
	Log     *logger.Logger
	Metrics *Metrics

	PublicDir   string
	DistDir     string
	Production  bool
	CORSOrigins []string
}

func NewRouter(d Deps) *gin.Engine {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	m := d.Metrics
	if m == nil {
		m = NewMetrics()
	}

	r := gin.New()
	r.Use(gin.Recovery(), RequestID(), RequestLogger(log), m.Middleware(), CORS(d.CORSOrigins))
	if d.Visits != nil {
		r.Use(TrackVisitors(d.Visits))
	}

	portfolioHdl := NewPortfolioHandler(d.Store, log, m)
	adminHdl := NewAdminHandler(d.Auth, d.Stats, log, m)
	contactHdl := NewContactHandler(d.Contact, log, m)

	api := r.Group("/api")
	portfolioHdl.PublicRoutes(api)
	adminHdl.PublicRoutes(api)
	contactHdl.PublicRoutes(api)

	protected := api.Group("", RequireAdmin(d.Verifier, log))
	portfolioHdl.AdminRoutes(protected)
	adminHdl.AdminRoutes(protected)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(m.Handler()))

	dirs := []string{d.PublicDir}
	spaIndex := ""
	if d.Production && d.DistDir != "" {
		dirs = append(dirs, d.DistDir)
		spaIndex = filepath.Join(d.DistDir, "index.html")
	}
	r.NoRoute(staticFiles(dirs, spaIndex))
	return r
}

// staticFiles serves files from dirs in order. When spaIndex is set, any
// other GET outside /api gets the single-page app shell.
func staticFiles(dirs []string, spaIndex string) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := c.Request.URL.Path
		get := c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead
		if !get || strings.HasPrefix(p, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
			return
		}
		for _, dir := range dirs {
			if name := lookupFile(dir, p); name != "" {
				c.File(name)
				return
			}
		}
		if spaIndex != "" {
			if _, err := os.Stat(spaIndex); err == nil {
				c.File(spaIndex)
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	}
}

func lookupFile(dir, urlPath string) string {
	if dir == "" {
		return ""
	}
	name := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+urlPath)))
	info, err := os.Stat(name)
	if err != nil {
		return ""
	}
	if info.IsDir() {
		name = filepath.Join(name, "index.html")
		if info, err = os.Stat(name); err != nil || info.IsDir() {
			return ""
		}
	}
	return name
}
