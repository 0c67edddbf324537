package consolemail

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts notification outcomes. A nil *Metrics records nothing.
type Metrics struct {
	emailsSent     *prometheus.CounterVec
	emailFailures  *prometheus.CounterVec
	renderDuration *prometheus.HistogramVec
}

// NewMetrics creates the notification metrics and registers them with reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		emailsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "consolemail",
			Name:      "emails_sent_total",
			Help:      "Number of notification emails handed to the sender.",
		}, []string{"template"}),
		emailFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "consolemail",
			Name:      "email_failures_total",
			Help:      "Number of notification emails that could not be sent, by stage.",
		}, []string{"template", "reason"}),
		renderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "consolemail",
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering notification emails.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"template"}),
	}
}

func (m *Metrics) sent(template string) {
	if m == nil {
		return
	}
	m.emailsSent.WithLabelValues(template).Inc()
}

func (m *Metrics) failure(template, reason string) {
	if m == nil {
		return
	}
	m.emailFailures.WithLabelValues(template, reason).Inc()
}

func (m *Metrics) observeRender(template string, d time.Duration) {
	if m == nil {
		return
	}
	m.renderDuration.WithLabelValues(template).Observe(d.Seconds())
}
