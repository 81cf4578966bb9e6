// Package metrics exposes frame and interaction counters for Prometheus
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/orrery/engine"
)

const namespace = "orrery"

// Collector owns a private registry so tests and multiple instances never collide
type Collector struct {
	registry      *prometheus.Registry
	framesTotal   prometheus.Counter
	frameDuration prometheus.Histogram
	eventToggles  *prometheus.CounterVec
	activeEvent   *prometheus.GaugeVec
	commandsTotal *prometheus.CounterVec
}

// NewCollector creates and registers all metrics
func NewCollector() *Collector {
	m := &Collector{
		registry: prometheus.NewRegistry(),
		framesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_total",
			Help:      "Rendered frames",
		}),
		frameDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_seconds",
			Help:      "Time spent updating and drawing one frame",
			Buckets:   []float64{0.001, 0.002, 0.004, 0.008, 0.016, 0.033, 0.066, 0.1},
		}),
		eventToggles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "event_toggles_total",
			Help:      "Cosmic event activations, labelled by the event switched to",
		}, []string{"event"}),
		activeEvent: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_event",
			Help:      "1 for the running cosmic event, 0 otherwise",
		}, []string{"event"}),
		commandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "commands_total",
			Help:      "Applied interaction commands",
		}, []string{"kind"}),
	}

	m.registry.MustRegister(m.framesTotal, m.frameDuration, m.eventToggles, m.activeEvent, m.commandsTotal)

	for _, ev := range engine.Events() {
		m.activeEvent.WithLabelValues(ev.String()).Set(0)
	}
	return m
}

// RecordFrame counts one frame and its duration
func (m *Collector) RecordFrame(d time.Duration) {
	m.framesTotal.Inc()
	m.frameDuration.Observe(d.Seconds())
}

// RecordCommand counts an applied command by kind
func (m *Collector) RecordCommand(kind engine.CommandKind) {
	m.commandsTotal.WithLabelValues(string(kind)).Inc()
}

// OnEventChange is an engine.EventListener keeping the event gauges current
func (m *Collector) OnEventChange(prev, next engine.CosmicEvent) {
	if prev != engine.EventNone {
		m.activeEvent.WithLabelValues(prev.String()).Set(0)
	}
	label := "none"
	if next != engine.EventNone {
		label = next.String()
		m.activeEvent.WithLabelValues(label).Set(1)
	}
	m.eventToggles.WithLabelValues(label).Inc()
}

// Registry exposes the underlying registry
func (m *Collector) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format
func (m *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
