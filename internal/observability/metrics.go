package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	signupCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "extracurricular_service",
		Subsystem: "registry",
		Name:      "signups_total",
		Help:      "Number of accepted activity signups.",
	})

	unregistrationCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "extracurricular_service",
		Subsystem: "registry",
		Name:      "unregistrations_total",
		Help:      "Number of accepted activity unregistrations.",
	})

	rejectedCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "extracurricular_service",
		Subsystem: "registry",
		Name:      "rejected_mutations_total",
		Help:      "Number of refused roster mutations, labeled by reason.",
	}, []string{"reason"})

	rosterSizeGauge = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "extracurricular_service",
		Subsystem: "registry",
		Name:      "roster_size",
		Help:      "Current number of participants per activity.",
	}, []string{"activity"})

	rosterChangeGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "extracurricular_service",
		Subsystem: "registry",
		Name:      "last_roster_change_timestamp_seconds",
		Help:      "Unix timestamp of the most recent roster mutation.",
	})

	catalogReadGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "extracurricular_service",
		Subsystem: "registry",
		Name:      "last_catalog_read_timestamp_seconds",
		Help:      "Unix timestamp of the most recent catalog listing.",
	})
)

func init() {
	prometheus.MustRegister(
		signupCounter,
		unregistrationCounter,
		rejectedCounter,
		rosterSizeGauge,
		rosterChangeGauge,
		catalogReadGauge,
	)
}

// RecordSignup updates the signup counters and roster gauge.
func RecordSignup(activity string, rosterSize int) {
	signupCounter.Inc()
	rosterSizeGauge.WithLabelValues(activity).Set(float64(rosterSize))
	rosterChangeGauge.Set(float64(time.Now().Unix()))
}

// RecordUnregistration updates the unregistration counters and roster gauge.
func RecordUnregistration(activity string, rosterSize int) {
	unregistrationCounter.Inc()
	rosterSizeGauge.WithLabelValues(activity).Set(float64(rosterSize))
	rosterChangeGauge.Set(float64(time.Now().Unix()))
}

// RecordRejection counts a refused mutation.
func RecordRejection(reason string) {
	rejectedCounter.WithLabelValues(reason).Inc()
}

// RecordCatalogRead updates the read watermark.
func RecordCatalogRead() {
	catalogReadGauge.Set(float64(time.Now().Unix()))
}

// RecordRosterSize seeds the per-activity gauge, typically at startup.
func RecordRosterSize(activity string, rosterSize int) {
	rosterSizeGauge.WithLabelValues(activity).Set(float64(rosterSize))
}
