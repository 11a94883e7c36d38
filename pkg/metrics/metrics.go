package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Метки стадий обнаружения конфликта расписания
const (
	StagePrecheck   = "precheck"
	StageCommit     = "commit"
	StageConstraint = "constraint"
)

// Metrics набор метрик сервиса
type Metrics struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// Database
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	DBWaitDurationTotal prometheus.Gauge

	// Domain
	BookingsCreatedTotal      *prometheus.CounterVec
	SchedulingConflictsTotal  *prometheus.CounterVec
	PricingCoverageMissTotal  *prometheus.CounterVec
	RuleSnapshotReloadsTotal  *prometheus.CounterVec
	ConfigIntegrityViolations *prometheus.CounterVec
}

// New создает и регистрирует метрики в собственном реестре
func New(serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections", Help: "Open connections", ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections", Help: "Connections in use", ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections", Help: "Idle connections", ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count", Help: "Total number of connections waited for", ConstLabels: constLabels,
		}),
		DBWaitDurationTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_duration_seconds_total", Help: "Total time blocked waiting for a connection", ConstLabels: constLabels,
		}),
		BookingsCreatedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Bookings committed, by channel",
			ConstLabels: constLabels,
		}, []string{"channel"}),
		SchedulingConflictsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "scheduling_conflicts_total",
			Help:        "Rejected bookings due to cleaner conflicts, by detection stage",
			ConstLabels: constLabels,
		}, []string{"stage"}),
		PricingCoverageMissTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "pricing_coverage_misses_total",
			Help:        "Price resolutions without an applicable rule, by channel",
			ConstLabels: constLabels,
		}, []string{"channel"}),
		RuleSnapshotReloadsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "rule_snapshot_reloads_total",
			Help:        "Configuration snapshot reloads, by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		ConfigIntegrityViolations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "config_integrity_violations_total",
			Help:        "Rejected configuration writes, by entity",
			ConstLabels: constLabels,
		}, []string{"entity"}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBWaitDurationTotal,
		m.BookingsCreatedTotal,
		m.SchedulingConflictsTotal,
		m.PricingCoverageMissTotal,
		m.RuleSnapshotReloadsTotal,
		m.ConfigIntegrityViolations,
	)

	return m
}

// Handler возвращает HTTP handler для endpoint'а /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry возвращает реестр метрик
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
