// Package metrics defines Prometheus metrics for traversal plan execution.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	PlanDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trv_plan_duration_seconds",
			Help:    "Traversal plan execution duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)

	PlansTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trv_plans_total",
			Help: "Total traversal plans executed",
		},
		[]string{"status"},
	)

	StepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trv_steps_total",
			Help: "Total traversal steps applied by operation",
		},
		[]string{"op"},
	)

	MissingPropertiesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "trv_missing_properties_total",
			Help: "Total missing-property errors reported by completed plans",
		},
	)

	ResultSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trv_result_size",
			Help:    "Frontier size at the end of a plan",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		},
	)

	MaxDepthReached = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trv_max_depth_reached",
			Help: "Deepest nesting reached by any plan since start",
		},
	)

	GraphNodes = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trv_graph_nodes",
			Help: "Node count of the most recently loaded graph",
		},
	)

	GraphEdges = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "trv_graph_edges",
			Help: "Edge count of the most recently loaded graph",
		},
	)
)

func init() {
	prometheus.MustRegister(
		PlanDuration, PlansTotal, StepsTotal,
		MissingPropertiesTotal, ResultSize, MaxDepthReached,
		GraphNodes, GraphEdges,
	)
}
