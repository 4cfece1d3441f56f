package workspace

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	parseDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zenscript_parse_seconds",
		Help:    "Time spent parsing a unit.",
		Buckets: prometheus.DefBuckets,
	})

	declarationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zenscript_declaration_pass_seconds",
		Help:    "Time spent building the scopes and symbols of a unit.",
		Buckets: prometheus.DefBuckets,
	})

	resolveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "zenscript_resolve_seconds",
		Help:    "Time spent resolving a reference.",
		Buckets: prometheus.DefBuckets,
	})

	environmentReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zenscript_environment_reloads_total",
		Help: "Environment rebuilds by outcome.",
	}, []string{"outcome"})

	unitCount = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "zenscript_units",
		Help: "Number of units held by the workspace.",
	})

	watcherEvents = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zenscript_watcher_events_total",
		Help: "File system events received by the watcher.",
	})
)

func observeSince(h prometheus.Observer, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}
