package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Operation metrics
	ExchangesCreated  prometheus.Counter
	TransfersCreated  prometheus.Counter
	PaymentsConfirmed *prometheus.CounterVec
	PaymentsReplayed  prometheus.Counter
	RatesUpdated      prometheus.Counter
	OperationErrors   *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		ExchangesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallet_exchanges_total",
			Help: "Total number of credit exchanges",
		}),
		TransfersCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallet_transfers_total",
			Help: "Total number of transfers",
		}),
		PaymentsConfirmed: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_payments_confirmed_total",
			Help: "Total number of payment confirmations by kind",
		}, []string{"kind"}),
		PaymentsReplayed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallet_payments_replayed_total",
			Help: "Total number of duplicate payment confirmations replayed",
		}),
		RatesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "wallet_rates_updated_total",
			Help: "Total number of rate table updates",
		}),
		OperationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "wallet_operation_errors_total",
			Help: "Total number of failed wallet operations by operation",
		}, []string{"operation"}),
	}
}
