package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aishape"

// Webhook outcomes, used as the "outcome" label.
const (
	OutcomeInvalidPayload   = "invalid_payload"
	OutcomeMissingSignature = "missing_signature"
	OutcomeInvalidSignature = "invalid_signature"
	OutcomeAccepted         = "accepted"
	OutcomeFulfilled        = "fulfilled"
	OutcomeRejected         = "rejected"
	OutcomeFailed           = "failed"
)

var (
	webhookRequestsMetric = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_requests_total",
		Help:      "WayForPay webhook requests by outcome",
	}, []string{"outcome"})
	documentsSentMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "documents_sent_total",
		Help:      "The total number of plan documents delivered to Telegram",
	})
	documentSendFailuresMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "document_send_failures_total",
		Help:      "The total number of times rendering or delivering a plan document failed",
	})
	duplicateDeliveriesMetric = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicate_deliveries_total",
		Help:      "The total number of approved webhooks skipped because the order was already delivered",
	})
)

func ObserveWebhook(outcome string) {
	webhookRequestsMetric.WithLabelValues(outcome).Inc()
}

func DocumentSent() {
	documentsSentMetric.Inc()
}

func DocumentSendFailed() {
	documentSendFailuresMetric.Inc()
}

func DuplicateDelivery() {
	duplicateDeliveriesMetric.Inc()
}
