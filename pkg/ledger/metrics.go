package ledger

import "github.com/prometheus/client_golang/prometheus"

// Metrics are the collectors the ledger updates. They are registered by the
// router together with the request metrics.
var Metrics = []prometheus.Collector{
	entryCount,
	budgetAmount,
}

var entryCount = prometheus.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "ledger_entries",
		Help: "Number of entries in the ledger, partitioned by kind.",
	},
	[]string{"kind"},
)

var budgetAmount = prometheus.NewGauge(
	prometheus.GaugeOpts{
		Name: "ledger_budget_amount",
		Help: "The configured budget. 0 when no budget is set.",
	},
)
