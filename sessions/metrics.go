package sessions

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	sessionEventsSet = promauto.NewCounterVec(prometheus.CounterOpts{
		Subsystem: "ucsbuf_sessions",
		Name:      "events",
	}, []string{"event"})
	sessionActiveSet = promauto.NewGauge(prometheus.GaugeOpts{
		Subsystem: "ucsbuf_sessions",
		Name:      "active",
	})
	sessionChurnWarningsSet = promauto.NewCounter(prometheus.CounterOpts{
		Subsystem: "ucsbuf_sessions",
		Name:      "churn_warnings",
	})
)
