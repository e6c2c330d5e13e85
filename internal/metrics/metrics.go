// Package metrics exposes Prometheus metrics for RPC traffic and the Entity Store.
package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/groupadmin/internal/models"
	"github.com/mmynk/groupadmin/internal/storage"
)

const namespace = "groupadmin"

// Metrics holds the collectors registered for one server.
type Metrics struct {
	registry *prometheus.Registry

	rpcRequests *prometheus.CounterVec
	rpcDuration *prometheus.HistogramVec
}

// New creates a registry with Go runtime, process, RPC and store collectors.
func New(store storage.Store) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		rpcDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC latency by procedure, including simulated latency.",
			Buckets:   []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"procedure"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.rpcRequests,
		m.rpcDuration,
		newStoreCollector(store),
	)
	return m
}

// ObserveRPC records one finished call.
func (m *Metrics) ObserveRPC(procedure, code string, elapsed time.Duration) {
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// storeCollector reports entity counts read from the store at scrape time.
type storeCollector struct {
	store storage.Store

	users       *prometheus.Desc
	groups      *prometheus.Desc
	memberships *prometheus.Desc
}

func newStoreCollector(store storage.Store) *storeCollector {
	return &storeCollector{
		store:       store,
		users:       prometheus.NewDesc(namespace+"_users", "Users in the store.", nil, nil),
		groups:      prometheus.NewDesc(namespace+"_groups", "Groups in the store.", nil, nil),
		memberships: prometheus.NewDesc(namespace+"_group_members", "Total group memberships.", nil, nil),
	}
}

func (c *storeCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.users
	ch <- c.groups
	ch <- c.memberships
}

func (c *storeCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var (
		users  []models.User
		groups []models.Group
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = c.store.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		groups, err = c.store.ListGroups(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		slog.Warn("Metrics: failed to read store", "error", err)
		return
	}

	members := 0
	for _, g := range groups {
		members += len(g.Members)
	}

	ch <- prometheus.MustNewConstMetric(c.users, prometheus.GaugeValue, float64(len(users)))
	ch <- prometheus.MustNewConstMetric(c.groups, prometheus.GaugeValue, float64(len(groups)))
	ch <- prometheus.MustNewConstMetric(c.memberships, prometheus.GaugeValue, float64(members))
}
