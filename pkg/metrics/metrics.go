package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	SlotOperationsTotal *prometheus.CounterVec
	WatchSubscriptions  *prometheus.GaugeVec
}

// New регистрирует метрики в глобальном registry prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry регистрирует метрики в указанном registry (используется в тестах)
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "method", "route", "status"}),

		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),

		DBQueryDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),

		DBOpenConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections to the database",
		}, []string{"service"}),

		DBInUseConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}, []string{"service"}),

		DBIdleConnections: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}, []string{"service"}),

		DBWaitCount: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}, []string{"service"}),

		SlotOperationsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_operations_total",
			Help:        "Slot inventory operations by result",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"operation", "result"}),

		WatchSubscriptions: f.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "slot_watch_subscriptions",
			Help:        "Number of active live slot subscriptions",
			ConstLabels: prometheus.Labels{"service": serviceName},
		}, []string{"transport"}),
	}
}

// ObserveSlotOperation учитывает результат операции над слотами
// Безопасно вызывать на nil (метрики выключены)
func (m *Metrics) ObserveSlotOperation(operation string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "error"
	}
	m.SlotOperationsTotal.WithLabelValues(operation, result).Inc()
}

// SubscriptionOpened увеличивает счетчик активных подписок
func (m *Metrics) SubscriptionOpened(transport string) {
	if m == nil {
		return
	}
	m.WatchSubscriptions.WithLabelValues(transport).Inc()
}

// SubscriptionClosed уменьшает счетчик активных подписок
func (m *Metrics) SubscriptionClosed(transport string) {
	if m == nil {
		return
	}
	m.WatchSubscriptions.WithLabelValues(transport).Dec()
}
