package collection

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Mutations counts successful gateway operations by collection key and
// operation (add, update, remove, remove_many, transition, set)
var Mutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "nanotable",
		Name:      "mutations_total",
		Help:      "Successful collection mutations.",
	},
	[]string{"collection", "op"},
)
