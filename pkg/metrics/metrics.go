package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores Prometheus del portal.
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Negocio
	UsersRegistered     prometheus.Counter
	LoginAttempts       *prometheus.CounterVec
	LinksIssued         prometheus.Counter
	ClicksTracked       prometheus.Counter
	ConversionsRecorded *prometheus.CounterVec
}

// New registra y devuelve las métricas de la aplicación.
func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total de peticiones HTTP",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "Latencia de las peticiones HTTP en segundos",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "users_registered_total",
			Help: "Total de afiliados registrados",
		}),
		LoginAttempts: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "login_attempts_total",
				Help: "Intentos de login por resultado",
			},
			[]string{"status"}, // success | failure
		),
		LinksIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "affiliate_links_issued_total",
			Help: "Total de enlaces de afiliado emitidos",
		}),
		ClicksTracked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "clicks_tracked_total",
			Help: "Total de clics registrados vía /links/track",
		}),
		ConversionsRecorded: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "conversions_recorded_total",
				Help: "Conversiones registradas por estado",
			},
			[]string{"status"},
		),
	}
}

// HTTPMiddleware instrumenta cada request con contador y latencia.
// Usa c.Route().Path para no explotar la cardinalidad con parámetros de ruta.
func (m *Metrics) HTTPMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		labels := []string{c.Method(), c.Route().Path, strconv.Itoa(status)}
		m.HTTPRequestsTotal.WithLabelValues(labels...).Inc()
		m.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
		return err
	}
}
