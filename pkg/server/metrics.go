package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	totalItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slasktable_items_total",
		Help: "The number of rows in the dataset",
	})
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "slasktable_sessions",
		Help: "The number of sessions with a table in memory",
	})
	noSortChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasktable_sort_changes_total",
		Help: "The total number of sorting plan changes",
	})
	noSelectionChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasktable_selection_changes_total",
		Help: "The total number of selection changes",
	})
	noDoubleClicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "slasktable_double_clicks_total",
		Help: "The total number of row double clicks",
	})
	requestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "slasktable_request_errors_total",
		Help: "Failed requests by status code",
	}, []string{"code"})
)
