package storage

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PersistSaves counts snapshots written, by key
	PersistSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nanotable",
			Name:      "persist_saves_total",
			Help:      "Snapshots written to the blob store.",
		},
		[]string{"key"},
	)

	// PersistFailures counts swallowed persistence errors by key and stage
	// (encode, write, read, decode, delete)
	PersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "nanotable",
			Name:      "persist_failures_total",
			Help:      "Snapshot reads or writes that failed and were swallowed.",
		},
		[]string{"key", "stage"},
	)
)
