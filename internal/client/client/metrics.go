package client

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels of tripmate_http_requests_total.
const (
	OutcomeSuccess = "success"
	OutcomeNetwork = "network"
	OutcomeTimeout = "timeout"
	OutcomeServer  = "server"
	OutcomeClient  = "client"
)

// Metrics counts request attempts, retries and final outcomes per method.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	Attempts *prometheus.CounterVec
	Retries  *prometheus.CounterVec
	Requests *prometheus.CounterVec
}

// NewMetrics creates the counters and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripmate_http_attempts_total",
			Help: "HTTP attempts sent, including retries.",
		}, []string{"method"}),
		Retries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripmate_http_retries_total",
			Help: "HTTP retries after a transient failure.",
		}, []string{"method"}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tripmate_http_requests_total",
			Help: "Logical HTTP calls by final outcome.",
		}, []string{"method", "outcome"}),
	}
	reg.MustRegister(m.Attempts, m.Retries, m.Requests)
	return m
}

func (m *Metrics) attempt(method string) {
	if m != nil {
		m.Attempts.WithLabelValues(method).Inc()
	}
}

func (m *Metrics) retry(method string) {
	if m != nil {
		m.Retries.WithLabelValues(method).Inc()
	}
}

func (m *Metrics) done(method string, err error) {
	if m != nil {
		m.Requests.WithLabelValues(method, outcomeOf(err)).Inc()
	}
}

func outcomeOf(err error) string {
	apiErr, ok := err.(*APIError)
	switch {
	case err == nil:
		return OutcomeSuccess
	case !ok:
		return OutcomeNetwork
	case apiErr.Kind == ErrTimeout:
		return OutcomeTimeout
	case apiErr.Kind == ErrServer:
		return OutcomeServer
	case apiErr.Kind == ErrClient:
		return OutcomeClient
	default:
		return OutcomeNetwork
	}
}
