// Package metrics exposes Prometheus instrumentation for parking operations.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	bookingsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartpark_bookings_created_total",
			Help: "Bookings created per zone",
		},
		[]string{"zone"},
	)

	bookingsCancelled = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartpark_bookings_cancelled_total",
			Help: "Bookings cancelled per zone",
		},
		[]string{"zone"},
	)

	slotsAdded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartpark_slots_added_total",
			Help: "Slots appended to a zone by administrators",
		},
		[]string{"zone"},
	)

	zoneResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "smartpark_zone_resets_total",
			Help: "Administrative resets of every zone",
		},
	)

	persistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smartpark_persist_failures_total",
			Help: "Failed blob writes per storage key",
		},
		[]string{"key"},
	)

	slots = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "smartpark_slots",
			Help: "Slots per zone and state",
		},
		[]string{"zone", "state"},
	)
)

func BookingCreated(zone string) {
	bookingsCreated.WithLabelValues(zone).Inc()
}

func BookingCancelled(zone string) {
	bookingsCancelled.WithLabelValues(zone).Inc()
}

func SlotsAdded(zone string, n int) {
	slotsAdded.WithLabelValues(zone).Add(float64(n))
}

func ZonesReset() {
	zoneResets.Inc()
}

func PersistFailed(key string) {
	persistFailures.WithLabelValues(key).Inc()
}

// ObserveZone records the current slot counts of one zone.
func ObserveZone(zone string, total, available, occupied, reserved int) {
	slots.WithLabelValues(zone, "total").Set(float64(total))
	slots.WithLabelValues(zone, "available").Set(float64(available))
	slots.WithLabelValues(zone, "occupied").Set(float64(occupied))
	slots.WithLabelValues(zone, "reserved").Set(float64(reserved))
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
