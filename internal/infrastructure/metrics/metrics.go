// Package metrics exposes Prometheus counters for the waitlist service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "waitlist"

// Recorder owns the service's collectors and the registry they live in.
type Recorder struct {
	registry      *prometheus.Registry
	subscriptions *prometheus.CounterVec
	notifications *prometheus.CounterVec
	consensus     *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	r := &Recorder{
		registry: reg,
		subscriptions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "subscriptions_total",
			Help:      "Subscribe requests by outcome.",
		}, []string{"outcome"}),
		notifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Confirmation and announcement deliveries by channel and outcome.",
		}, []string{"channel", "outcome"}),
		consensus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "consensus_evaluations_total",
			Help:      "Consensus score evaluations by status.",
		}, []string{"status"}),
	}
	reg.MustRegister(r.subscriptions, r.notifications, r.consensus)
	return r
}

func (r *Recorder) Subscription(outcome string) {
	r.subscriptions.WithLabelValues(outcome).Inc()
}

func (r *Recorder) Notification(channel, outcome string) {
	r.notifications.WithLabelValues(channel, outcome).Inc()
}

func (r *Recorder) Consensus(status string) {
	r.consensus.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
