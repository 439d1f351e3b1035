// Package metrics registers the registry's Prometheus instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the registry core.
type Metrics struct {
	TransfersChecked  prometheus.Counter
	TransfersRejected *prometheus.CounterVec
	TransfersApplied  prometheus.Counter
	SupplyChanges     prometheus.Counter
	ActiveMembers     prometheus.Gauge
}

// New creates and registers all metrics on the default registerer.
func New() *Metrics {
	return &Metrics{
		TransfersChecked: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custos_transfers_checked_total",
			Help: "Total number of transfer compliance checks evaluated",
		}),
		TransfersRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "custos_transfers_rejected_total",
			Help: "Total number of transfers rejected, by error code",
		}, []string{"code"}),
		TransfersApplied: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custos_transfers_applied_total",
			Help: "Total number of transfers whose count effects were applied",
		}),
		SupplyChanges: promauto.NewCounter(prometheus.CounterOpts{
			Name: "custos_supply_changes_total",
			Help: "Total number of mint/burn supply changes applied",
		}),
		ActiveMembers: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "custos_active_members",
			Help: "Members currently holding a nonzero balance anywhere",
		}),
	}
}
