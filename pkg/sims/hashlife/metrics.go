package hashlife

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var generationsAdvanced = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hashlife_generations_advanced_total",
	Help: "Number of generations advanced across all universes",
})

var treeGrows = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hashlife_tree_grows_total",
	Help: "Number of times a universe root was padded by one level",
})

var gcRuns = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hashlife_gc_runs_total",
	Help: "Number of node store garbage collections",
})

var gcNodesReclaimed = promauto.NewCounter(prometheus.CounterOpts{
	Name: "hashlife_gc_nodes_reclaimed_total",
	Help: "Number of nodes dropped by garbage collection",
})

var storeNodes = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "hashlife_store_nodes",
	Help: "Node count of the most recently stepped or collected universe",
})
