// Package metrics exposes Prometheus collectors for RPC traffic and ledger activity.
package metrics

import (
	"context"
	"net/http"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "tripledger"

// Metrics owns a private registry so tests and servers never share collectors.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
	mutations   *prometheus.CounterVec
	trips       prometheus.Gauge
}

// New registers every collector on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "rpc",
			Name:      "duration_seconds",
			Help:      "RPC latency by procedure.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "mutations_total",
			Help:      "Ledger mutations by operation and result.",
		}, []string{"op", "result"}),
		trips: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ledger",
			Name:      "trips",
			Help:      "Number of trips currently held.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		m.mutations,
		m.trips,
	)
	return m
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Interceptor counts and times every unary RPC.
func (m *Metrics) Interceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			code := "ok"
			if err != nil {
				code = connect.CodeOf(err).String()
			}
			m.rpcRequests.WithLabelValues(procedure, code).Inc()
			m.rpcDuration.WithLabelValues(procedure).Observe(time.Since(start).Seconds())
			return resp, err
		}
	}
}

// Mutation records the outcome of one ledger mutation.
func (m *Metrics) Mutation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.mutations.WithLabelValues(op, result).Inc()
}

// Trips sets the trip gauge.
func (m *Metrics) Trips(n int) {
	m.trips.Set(float64(n))
}
