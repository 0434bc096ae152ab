package web

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns its own registry so several routers can live in one process.
type Metrics struct {
	registry    *prometheus.Registry
	duration    *prometheus.SummaryVec
	requests    *prometheus.CounterVec
	storeWrites *prometheus.CounterVec
	relays      *prometheus.CounterVec
	logins      *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	labels := []string{"method", "path", "status_code"}
	return &Metrics{
		registry: reg,
		duration: factory.NewSummaryVec(prometheus.SummaryOpts{
			Name: "http_request_duration_seconds",
			Help: "HTTP request duration in seconds",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.99: 0.001,
			},
		}, labels),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, labels),
		storeWrites: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_section_writes_total",
			Help: "Section writes by section and result",
		}, []string{"section", "result"}),
		relays: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_contact_messages_total",
			Help: "Contact form submissions by result",
		}, []string{"result"}),
		logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "portfolio_admin_logins_total",
			Help: "Admin login attempts by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			// static files and 404s share one label
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.duration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		m.requests.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) sectionWrite(section, result string) {
	m.storeWrites.WithLabelValues(section, result).Inc()
}

func (m *Metrics) contact(result string) {
	m.relays.WithLabelValues(result).Inc()
}

func (m *Metrics) login(result string) {
	m.logins.WithLabelValues(result).Inc()
}
