// Package metrics exposes Prometheus instruments for the safety core.
//
// A nil *Metrics is valid and records nothing, so services and tests can skip
// instrumentation without branching.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"guardian/internal/domain"
)

const namespace = "guardian"

// Metrics groups all instruments.
type Metrics struct {
	sosTriggers       *prometheus.CounterVec
	intentsLaunched   *prometheus.CounterVec
	fallDetections    prometheus.Counter
	screamDetections  prometheus.Counter
	heartbeatReadings *prometheus.CounterVec
	sessionEnabled    prometheus.Gauge
	monitorActive     *prometheus.GaugeVec
}

// New registers the instruments with reg.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		sosTriggers: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sos_triggers_total",
			Help:      "SOS triggers by source and outcome.",
		}, []string{"source", "outcome"}),
		intentsLaunched: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "intents_launched_total",
			Help:      "Outbound intents handed to the launcher, by kind and result.",
		}, []string{"kind", "result"}),
		fallDetections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fall_detections_total",
			Help:      "Free-fall detections that raised an alert.",
		}),
		screamDetections: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scream_detections_total",
			Help:      "Scream classifications that raised an alert.",
		}),
		heartbeatReadings: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "heartbeat_readings_total",
			Help:      "Completed heartbeat readings by source.",
		}, []string{"source"}),
		sessionEnabled: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "session_enabled",
			Help:      "1 while safety monitoring is on.",
		}),
		monitorActive: f.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "monitor_active",
			Help:      "1 while a monitor is active.",
		}, []string{"monitor"}),
	}
}

// SOS counts one trigger.
func (m *Metrics) SOS(source domain.TriggerSource, outcome domain.DispatchOutcome) {
	if m == nil {
		return
	}
	m.sosTriggers.WithLabelValues(string(source), string(outcome)).Inc()
}

// Intent counts one launched intent.
func (m *Metrics) Intent(kind domain.IntentKind, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.intentsLaunched.WithLabelValues(string(kind), result).Inc()
}

// FallDetected counts one fall alert.
func (m *Metrics) FallDetected() {
	if m == nil {
		return
	}
	m.fallDetections.Inc()
}

// ScreamDetected counts one scream alert.
func (m *Metrics) ScreamDetected() {
	if m == nil {
		return
	}
	m.screamDetections.Inc()
}

// HeartbeatReading counts one completed reading.
func (m *Metrics) HeartbeatReading(source domain.ReadingSource) {
	if m == nil {
		return
	}
	m.heartbeatReadings.WithLabelValues(string(source)).Inc()
}

// SessionEnabled records the session toggle.
func (m *Metrics) SessionEnabled(on bool) {
	if m == nil {
		return
	}
	m.sessionEnabled.Set(boolFloat(on))
}

// MonitorActive records whether a monitor is running.
func (m *Metrics) MonitorActive(name domain.MonitorName, on bool) {
	if m == nil {
		return
	}
	m.monitorActive.WithLabelValues(string(name)).Set(boolFloat(on))
}

func boolFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
