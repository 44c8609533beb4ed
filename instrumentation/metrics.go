package instrumentation

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds the metric instruments recorded by the document handler
type Metrics struct {
	HTTPRequestsTotal   metric.Int64Counter
	HTTPRequestDuration metric.Float64Histogram

	GenerationErrors metric.Int64Counter
	DocumentSize     metric.Int64Histogram

	RateLimitExceeded metric.Int64Counter
}

// newMetrics creates all metric instruments on meter
func newMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error
	m.HTTPRequestsTotal, err = meter.Int64Counter(
		"idpdocs.http.requests.total",
		metric.WithDescription("Total number of HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http.requests.total counter: %w", err)
	}

	m.HTTPRequestDuration, err = meter.Float64Histogram(
		"idpdocs.http.request.duration",
		metric.WithDescription("HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create http.request.duration histogram: %w", err)
	}

	m.GenerationErrors, err = meter.Int64Counter(
		"idpdocs.document.generation.errors",
		metric.WithDescription("Number of documents that failed to build or serialize"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create document.generation.errors counter: %w", err)
	}

	m.DocumentSize, err = meter.Int64Histogram(
		"idpdocs.document.size",
		metric.WithDescription("Size of serialized documents"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create document.size histogram: %w", err)
	}

	m.RateLimitExceeded, err = meter.Int64Counter(
		"idpdocs.ratelimit.exceeded",
		metric.WithDescription("Number of requests rejected by the rate limiter"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create ratelimit.exceeded counter: %w", err)
	}

	return m, nil
}

// RecordHTTPRequest records an HTTP request metric
func (m *Metrics) RecordHTTPRequest(ctx context.Context, method, endpoint string, statusCode int, durationMs float64) {
	attrs := []attribute.KeyValue{
		attribute.String("method", method),
		attribute.String("endpoint", endpoint),
		attribute.Int("status", statusCode),
	}

	m.HTTPRequestsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.HTTPRequestDuration.Record(ctx, durationMs, metric.WithAttributes(attribute.String("endpoint", endpoint)))
}

// RecordGenerationError records a failed build or serialization
func (m *Metrics) RecordGenerationError(ctx context.Context, reason string) {
	m.GenerationErrors.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

// RecordDocumentSize records the byte size of a served document
func (m *Metrics) RecordDocumentSize(ctx context.Context, format string, size int) {
	m.DocumentSize.Record(ctx, int64(size), metric.WithAttributes(attribute.String("format", format)))
}

// RecordRateLimitExceeded records a rejected request
func (m *Metrics) RecordRateLimitExceeded(ctx context.Context) {
	m.RateLimitExceeded.Add(ctx, 1)
}
