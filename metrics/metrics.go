package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Webhook outcomes
const (
	WebhookAccepted = "accepted"
	WebhookRejected = "rejected"
	WebhookStored   = "stored"
	WebhookStoreErr = "store_failed"
)

// Wallet refresh outcomes
const (
	RefreshUpdated  = "updated"
	RefreshFetchErr = "fetch_failed"
	RefreshMismatch = "wallet_mismatch"
	RefreshStoreErr = "store_failed"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paycode_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "paycode_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .05, .1, .5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"method", "path"},
	)

	WebhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paycode_webhooks_total",
			Help: "Webhook deliveries by outcome",
		},
		[]string{"outcome"},
	)

	WalletRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paycode_wallet_refreshes_total",
			Help: "Wallet balance refreshes by wallet and outcome",
		},
		[]string{"wallet_id", "outcome"},
	)

	WalletBalanceMsat = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "paycode_wallet_balance_msat",
			Help: "Last stored wallet balance in millisatoshis",
		},
		[]string{"wallet_id"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordWebhook(outcome string) {
	WebhooksTotal.WithLabelValues(outcome).Inc()
}

func RecordWalletRefresh(walletID, outcome string) {
	WalletRefreshesTotal.WithLabelValues(walletID, outcome).Inc()
}

func SetWalletBalance(walletID string, msat int64) {
	WalletBalanceMsat.WithLabelValues(walletID).Set(float64(msat))
}
