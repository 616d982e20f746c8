package proximity

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	computationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_computations_total",
		Help: "The total number of proximity fields computed",
	})
	emptyTargetSetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_empty_target_sets_total",
		Help: "The total number of computations with no target cells",
	})
	targetsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_targets_total",
		Help: "The total number of target points folded into distance fields",
	})
	cellsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_cells_total",
		Help: "The total number of cells in computed distance fields",
	})
	coordinateCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_coordinate_cache_hits_total",
		Help: "The total number of hits on the coordinate grid cache",
	})
	coordinateCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_coordinate_cache_misses_total",
		Help: "The total number of misses on the coordinate grid cache",
	})
	targetCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_target_cache_hits_total",
		Help: "The total number of hits on target index caches",
	})
	targetCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_target_cache_misses_total",
		Help: "The total number of misses on target index caches",
	})
	targetCacheEvictions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proximity_target_cache_evictions_total",
		Help: "The total number of evictions from target index caches",
	})
)
