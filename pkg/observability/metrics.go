package observability

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const meterName = "github.com/prperemyshlev/api-marketplace"

// PrometheusHandler returns a Gin handler for Prometheus metrics
func PrometheusHandler(handler http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if handler != nil {
			handler.ServeHTTP(c.Writer, c.Request)
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"error":   "metrics handler not initialized",
			})
		}
	}
}

// Metrics holds the marketplace counters
type Metrics struct {
	purchasesListed metric.Int64Counter
	orphanPayments  metric.Int64Counter
	tokensConsumed  metric.Int64Counter
}

// NewMetrics registers the marketplace instruments on the given provider
func NewMetrics(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter(meterName)

	purchasesListed, err := meter.Int64Counter("marketplace.purchases.listed",
		metric.WithDescription("Purchases returned by the purchased-apis endpoint"))
	if err != nil {
		return nil, fmt.Errorf("failed to create purchases counter: %w", err)
	}

	orphanPayments, err := meter.Int64Counter("marketplace.payments.orphaned",
		metric.WithDescription("Verified payments skipped because their API no longer exists"))
	if err != nil {
		return nil, fmt.Errorf("failed to create orphan counter: %w", err)
	}

	tokensConsumed, err := meter.Int64Counter("marketplace.tokens.consumed",
		metric.WithDescription("Usage token consumption attempts by outcome"))
	if err != nil {
		return nil, fmt.Errorf("failed to create tokens counter: %w", err)
	}

	return &Metrics{
		purchasesListed: purchasesListed,
		orphanPayments:  orphanPayments,
		tokensConsumed:  tokensConsumed,
	}, nil
}

// NopMetrics returns metrics that record nothing
func NopMetrics() *Metrics {
	m, _ := NewMetrics(noop.NewMeterProvider())
	return m
}

func (m *Metrics) PurchasesListed(ctx context.Context, n int) {
	m.purchasesListed.Add(ctx, int64(n))
}

func (m *Metrics) OrphanPaymentsSkipped(ctx context.Context, n int) {
	if n > 0 {
		m.orphanPayments.Add(ctx, int64(n))
	}
}

func (m *Metrics) TokenConsumed(ctx context.Context, outcome string) {
	m.tokensConsumed.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
