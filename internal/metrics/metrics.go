package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the prometheus counters for the booking core.
type Metrics struct {
	Searches        prometheus.Counter
	FlightsExpanded prometheus.Counter
	BookingsCreated prometheus.Counter
	Refunds         prometheus.Counter
	Errors          *prometheus.CounterVec
}

func New(namespace string) *Metrics {
	return &Metrics{
		Searches: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flight_searches_total",
			Help:      "The total number of flight searches executed",
		}),
		FlightsExpanded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "flights_expanded_total",
			Help:      "The total number of flight instances generated from schedules",
		}),
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of bookings recorded",
		}),
		Refunds: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_total",
			Help:      "The total number of refunds executed",
		}),
		Errors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of operation errors",
		}, []string{"operation"}),
	}
}
