package announce

import "github.com/prometheus/client_golang/prometheus"

var (
	deliveredCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "extracurricular_service",
		Subsystem: "announce",
		Name:      "events_delivered_total",
		Help:      "Number of roster events successfully delivered, labeled by sink.",
	}, []string{"sink"})

	failedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "extracurricular_service",
		Subsystem: "announce",
		Name:      "events_failed_total",
		Help:      "Number of roster event deliveries that failed, labeled by sink.",
	}, []string{"sink"})

	droppedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "extracurricular_service",
		Subsystem: "announce",
		Name:      "events_dropped_total",
		Help:      "Number of roster events dropped because they could not be queued for delivery.",
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, failedCounter, droppedCounter)
}
