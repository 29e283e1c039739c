package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	runsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runquest",
		Subsystem: "runs",
		Name:      "created_total",
		Help:      "Daily runs created by get-or-create.",
	})
	locationsAdded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runquest",
		Subsystem: "runs",
		Name:      "locations_added_total",
		Help:      "GPS samples appended to runs.",
	})
	runsFinished = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "runquest",
		Subsystem: "runs",
		Name:      "finished_total",
		Help:      "Successful run finalizations, including repeats.",
	})
	finishRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "runquest",
		Subsystem: "runs",
		Name:      "finish_rejected_total",
		Help:      "Finish requests rejected, by reason.",
	}, []string{"reason"})
	finishDistance = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "runquest",
		Subsystem: "runs",
		Name:      "finished_distance_meters",
		Help:      "Distance of finished runs.",
		Buckets:   []float64{500, 1000, 2500, 5000, 10000, 21097, 42195},
	})
)

func init() {
	prometheus.MustRegister(runsCreated, locationsAdded, runsFinished, finishRejected, finishDistance)
}

// RecordRunCreated counts a newly created daily run
func RecordRunCreated() {
	runsCreated.Inc()
}

// RecordLocationAdded counts an appended sample
func RecordLocationAdded() {
	locationsAdded.Inc()
}

// RecordRunFinished counts a finalization and observes its distance
func RecordRunFinished(distanceMeters float64) {
	runsFinished.Inc()
	finishDistance.Observe(distanceMeters)
}

// RecordFinishRejected counts a finish that could not be computed
func RecordFinishRejected(reason string) {
	finishRejected.WithLabelValues(reason).Inc()
}
