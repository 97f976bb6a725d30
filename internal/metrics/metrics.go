package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CheckoutAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_attempts_total",
		Help: "Checkout attempts, including empty-cart rejections.",
	})

	CheckoutOrderFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_checkout_order_failures_total",
		Help: "Order creation calls that failed and aborted checkout.",
	})

	CheckoutLineFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_checkout_line_failures_total",
		Help: "Per-line order-detail or stock-update failures.",
	}, []string{"step"})

	UpstreamRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "storefront_upstream_request_seconds",
		Help:    "Latency of calls to the productos, pedidos and usuarios APIs.",
		Buckets: prometheus.DefBuckets,
	}, []string{"api", "operation"})
)

// Handler exposes the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
