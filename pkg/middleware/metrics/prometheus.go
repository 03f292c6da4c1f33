// Package metrics records HTTP request metrics for echo.
//
// Metrics:
//   - http_request_duration_seconds{method,path,status} histogram
//   - http_requests_inflight gauge
//   - http_request_errors_total{method,path,status} counter (4xx/5xx)
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// unmatchedPath labels requests that matched no route.
const unmatchedPath = "unmatched"

type Prometheus struct {
	reqDuration *prometheus.HistogramVec
	reqInflight prometheus.Gauge
	reqErrors   *prometheus.CounterVec
	gatherer    prometheus.Gatherer

	Skipper middleware.Skipper
}

// New creates the collectors under the service namespace and registers them
// with reg. A nil reg means the default registry.
func New(service string, reg prometheus.Registerer) *Prometheus {
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	} else if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	pm := &Prometheus{
		reqDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: service,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		}, []string{"method", "path", "status"}),
		reqInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: service,
			Name:      "http_requests_inflight",
			Help:      "HTTP requests currently being served.",
		}),
		reqErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: service,
			Name:      "http_request_errors_total",
			Help:      "HTTP requests that finished with a 4xx or 5xx status.",
		}, []string{"method", "path", "status"}),
		gatherer: gatherer,
		Skipper:  middleware.DefaultSkipper,
	}

	reg.MustRegister(pm.reqDuration, pm.reqInflight, pm.reqErrors)
	return pm
}

func (pm *Prometheus) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if pm.Skipper(c) {
				return next(c)
			}

			start := time.Now()
			pm.reqInflight.Inc()
			defer pm.reqInflight.Dec()

			if err := next(c); err != nil {
				c.Error(err)
			}

			code := c.Response().Status
			status := strconv.Itoa(code)
			path := c.Path()
			if path == "" {
				path = unmatchedPath
			}
			method := c.Request().Method

			pm.reqDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
			if code >= http.StatusBadRequest {
				pm.reqErrors.WithLabelValues(method, path, status).Inc()
			}
			return nil
		}
	}
}

// Handler serves the registry the collectors were registered with.
func (pm *Prometheus) Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.HandlerFor(pm.gatherer, promhttp.HandlerOpts{}))
}
