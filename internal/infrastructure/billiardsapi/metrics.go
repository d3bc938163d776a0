package billiardsapi

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const resultOK = "ok"

// Metrics counts client traffic. A nil registerer yields working but unregistered collectors.
type Metrics struct {
	requests  *prometheus.CounterVec
	failovers prometheus.Counter
	probes    *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "billiards_api_requests_total",
			Help: "Account API requests by method and outcome category",
		}, []string{"method", "category"}),
		failovers: factory.NewCounter(prometheus.CounterOpts{
			Name: "billiards_api_failovers_total",
			Help: "Requests retried against the next base URL after a network failure",
		}),
		probes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "billiards_api_probes_total",
			Help: "Endpoint reachability probes by result",
		}, []string{"result"}),
	}
}

func (m *Metrics) observeRequest(method string, category Category) {
	label := string(category)
	if category == "" {
		label = resultOK
	}
	m.requests.WithLabelValues(method, label).Inc()
}

func (m *Metrics) observeFailover() {
	m.failovers.Inc()
}

func (m *Metrics) observeProbe(ok bool) {
	result := "fail"
	if ok {
		result = resultOK
	}
	m.probes.WithLabelValues(result).Inc()
}
