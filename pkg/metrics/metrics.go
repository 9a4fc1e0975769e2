// Package metrics records outbound API calls as Prometheus metrics.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	rbhttp "github.com/milan604/restbase/pkg/http"
)

// Collector holds the client request metrics.
type Collector struct {
	reqCount   *prometheus.CounterVec
	reqDurHist *prometheus.HistogramVec
	errCount   *prometheus.CounterVec
	registry   *prometheus.Registry
}

// NewCollector creates the metrics on a private registry.
func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	reqCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_client_requests_total",
			Help: "Total number of outbound API requests that received a response",
		},
		[]string{"method", "status"},
	)
	reqDurHist := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_client_request_duration_seconds",
			Help:    "Histogram of outbound API request durations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	errCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_client_errors_total",
			Help: "Outbound API failures by error kind",
		},
		[]string{"method", "kind"},
	)

	reg.MustRegister(reqCount, reqDurHist, errCount)

	return &Collector{
		reqCount:   reqCount,
		reqDurHist: reqDurHist,
		errCount:   errCount,
		registry:   reg,
	}
}

// Registry exposes the collector's registry, e.g. for testutil or a custom gatherer.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler serves the collected metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ResponseHook returns a transport hook that records every outcome and
// passes it through unchanged.
func (c *Collector) ResponseHook() rbhttp.ResponseHook {
	return func(ctx context.Context, resp *rbhttp.Response, err error) (*rbhttp.Response, error) {
		c.observe(resp, err)
		return resp, err
	}
}

func (c *Collector) observe(resp *rbhttp.Response, err error) {
	method := methodOf(resp, err)
	if resp != nil {
		c.reqCount.WithLabelValues(method, strconv.Itoa(resp.Status)).Inc()
		c.reqDurHist.WithLabelValues(method).Observe(resp.Duration.Seconds())
	}
	if e, ok := rbhttp.AsError(err); ok {
		c.errCount.WithLabelValues(method, e.Kind.String()).Inc()
	}
}

func methodOf(resp *rbhttp.Response, err error) string {
	var req *rbhttp.Request
	if resp != nil {
		req = resp.Request
	} else if e, ok := rbhttp.AsError(err); ok {
		req = e.Request
	}
	if req == nil || req.Method == "" {
		return http.MethodGet
	}
	return strings.ToUpper(req.Method)
}
