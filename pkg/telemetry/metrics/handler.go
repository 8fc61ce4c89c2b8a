package metrics

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxConcurrentScrapes bounds parallel scrapes of the metrics endpoint. It is
// served outside the origin and bearer checks.
const maxConcurrentScrapes = 2

// Handler serves the collector's registry for Prometheus. The server mounts
// it at MetricsConfig.Path next to the health endpoints.
//
// Gather errors are logged and the remaining metrics are still served, so a
// single broken collector never hides the request and upstream series.
// Scrapes themselves are counted in promhttp_metric_handler_requests_total.
func (c *Collector) Handler() http.Handler {
	h := promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{
		EnableOpenMetrics:   true,
		MaxRequestsInFlight: maxConcurrentScrapes,
		ErrorHandling:       promhttp.ContinueOnError,
		ErrorLog:            scrapeErrorLog{},
	})
	return promhttp.InstrumentMetricHandler(c.registry, h)
}

// scrapeErrorLog adapts slog to promhttp.Logger.
type scrapeErrorLog struct{}

func (scrapeErrorLog) Println(v ...interface{}) {
	slog.Warn("metrics scrape error", "component", "metrics", "detail", v)
}
