package observability

import (
	"context"
	"errors"

	"github.com/aretw0/opennormal/pkg/domain"
	"github.com/aretw0/opennormal/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the admission and relay collectors.
type Metrics struct {
	Admissions    *prometheus.CounterVec
	Relays        *prometheus.CounterVec
	RelayDuration prometheus.Histogram
	InFlight      prometheus.Gauge
}

// NewMetrics creates the collectors and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Admissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opennormal_admissions_total",
				Help: "Candidate URLs evaluated by the admission gate",
			},
			[]string{"trigger", "verdict", "reason"},
		),
		Relays: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "opennormal_relays_total",
				Help: "Native messaging requests by result",
			},
			[]string{"result"},
		),
		RelayDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "opennormal_relay_duration_seconds",
				Help:    "Time from request to native host response",
				Buckets: prometheus.DefBuckets,
			},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "opennormal_relays_in_flight",
				Help: "Native messaging requests awaiting a response",
			},
		),
	}
}

// Hooks returns lifecycle hooks feeding the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnAdmission: func(_ context.Context, e *domain.AdmissionEvent) {
			verdict := "accepted"
			if !e.Accepted {
				verdict = "rejected"
			}
			m.Admissions.WithLabelValues(string(e.Trigger), verdict, string(e.Reason)).Inc()
		},
		OnRelay: func(context.Context, *domain.RelayEvent) {
			m.InFlight.Inc()
		},
		OnRelayReturn: func(_ context.Context, e *domain.RelayEvent) {
			m.InFlight.Dec()
			m.RelayDuration.Observe(e.Duration.Seconds())
			m.Relays.WithLabelValues(ResultLabel(e.Err)).Inc()
		},
	}
}

// ResultLabel classifies a relay error for metric labels.
func ResultLabel(err error) string {
	switch {
	case err == nil:
		return "succeeded"
	case errors.Is(err, ports.ErrHostNotFound):
		return "host_not_found"
	case errors.Is(err, ports.ErrForbidden):
		return "forbidden"
	case errors.Is(err, ports.ErrHostExited):
		return "host_exited"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	}
	return "channel_error"
}
