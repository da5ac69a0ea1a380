package commands

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	commitDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "reservation_commit_seconds",
		Help:    "Time spent committing a reservation, by outcome.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})

	commitAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_commit_attempts_total",
		Help: "Total reservation commit attempts grouped by outcome.",
	}, []string{"result"})
)

const (
	resultCommitted = "committed"
	resultConflict  = "conflict"
	resultError     = "error"
)
