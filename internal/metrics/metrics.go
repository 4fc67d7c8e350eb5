package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SalesRecorded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kasir_sales_recorded_total",
			Help: "Total number of completed checkouts.",
		},
	)

	SalesAmount = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "kasir_sales_amount_rupiah_total",
			Help: "Sum of sale totals in Rupiah.",
		},
	)

	CheckoutFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kasir_checkout_failures_total",
			Help: "Rejected checkouts by reason.",
		},
		[]string{"reason"},
	)

	ReceiptExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kasir_receipt_exports_total",
			Help: "Receipt PDF exports by result.",
		},
		[]string{"result"},
	)
)

// ObserveSale records one successful checkout.
func ObserveSale(total int64) {
	SalesRecorded.Inc()
	SalesAmount.Add(float64(total))
}

// Handler serves the Prometheus /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
