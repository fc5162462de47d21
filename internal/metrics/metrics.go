// Package metrics exports controller lifecycle events as Prometheus metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/leengari/queryviz/internal/engine"
)

const namespace = "queryviz"

// Observer is an engine.Observer that counts what controllers do
type Observer struct {
	stepChanges          *prometheus.CounterVec
	transitionsStarted   prometheus.Counter
	transitionsCleared   prometheus.Counter
	transitionsCancelled prometheus.Counter
	particlesPlanned     prometheus.Counter
	playsStarted         prometheus.Counter
	currentStep          prometheus.Gauge
}

// NewObserver registers the metrics with reg
func NewObserver(reg prometheus.Registerer) *Observer {
	return &Observer{
		stepChanges: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "step_changes_total",
			Help:      "Total count of step changes by target stage.",
		}, []string{"stage"}),
		transitionsStarted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_started_total",
			Help:      "Total count of WHERE to GROUP_BY transitions started.",
		}),
		transitionsCleared: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_cleared_total",
			Help:      "Total count of transitions that ran to completion.",
		}),
		transitionsCancelled: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_cancelled_total",
			Help:      "Total count of transitions cut short by another step change.",
		}),
		particlesPlanned: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "particles_planned_total",
			Help:      "Total count of particles launched by started transitions.",
		}),
		playsStarted: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "plays_started_total",
			Help:      "Total count of auto-advance runs started.",
		}),
		currentStep: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "current_step",
			Help:      "Step the most recently moved controller is at.",
		}),
	}
}

// OnEvent implements engine.Observer
func (o *Observer) OnEvent(event engine.Event) {
	switch event.Type {
	case engine.EventStepChanged:
		if change, ok := event.Data.(engine.StepChange); ok {
			o.stepChanges.WithLabelValues(change.To.String()).Inc()
			o.currentStep.Set(float64(change.To))
		}
	case engine.EventTransitionStarted:
		o.transitionsStarted.Inc()
		if info, ok := event.Data.(engine.TransitionInfo); ok {
			o.particlesPlanned.Add(float64(info.Particles))
		}
	case engine.EventTransitionCleared:
		o.transitionsCleared.Inc()
	case engine.EventTransitionCancelled:
		o.transitionsCancelled.Inc()
	case engine.EventPlayStarted:
		o.playsStarted.Inc()
	}
}

// Handler serves the metrics gathered by g
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
