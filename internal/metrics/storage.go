package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// StorageMetrics defines the interface for recording object store operation metrics.
// Implementations track operation counts, durations and persisted write volume.
type StorageMetrics interface {
	// RecordOperation records a store operation with its status.
	// Operation examples: "save", "save_async", "read", "delete", "list"
	// Status examples: "success", "error"
	RecordOperation(ctx context.Context, operation, status string)

	// RecordDuration records the duration of a store operation with its status.
	// Duration is recorded in seconds as a histogram for percentile calculations.
	RecordDuration(ctx context.Context, operation string, duration time.Duration, status string)

	// RecordBytesWritten records the plaintext size of a successfully persisted object.
	RecordBytesWritten(ctx context.Context, size int64)
}

// storageMetrics implements StorageMetrics using OpenTelemetry metrics.
type storageMetrics struct {
	operationCounter metric.Int64Counter
	durationHisto    metric.Float64Histogram
	bytesCounter     metric.Int64Counter
}

// NewStorageMetrics creates a new StorageMetrics implementation using the provided meter provider.
// The namespace parameter is used as a prefix for all metric names (e.g., "secureshare").
// Returns error if meters cannot be initialized.
func NewStorageMetrics(meterProvider metric.MeterProvider, namespace string) (StorageMetrics, error) {
	meter := meterProvider.Meter(namespace)

	operationCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_operations_total", namespace),
		metric.WithDescription("Total number of object store operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create operation counter: %w", err)
	}

	durationHisto, err := meter.Float64Histogram(
		fmt.Sprintf("%s_operation_duration_seconds", namespace),
		metric.WithDescription("Duration of object store operations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create duration histogram: %w", err)
	}

	bytesCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_bytes_written_total", namespace),
		metric.WithDescription("Total plaintext bytes persisted to the object store"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create bytes counter: %w", err)
	}

	return &storageMetrics{
		operationCounter: operationCounter,
		durationHisto:    durationHisto,
		bytesCounter:     bytesCounter,
	}, nil
}

// RecordOperation increments the operation counter with operation and status labels.
func (s *storageMetrics) RecordOperation(ctx context.Context, operation, status string) {
	s.operationCounter.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordDuration records the operation duration in seconds with operation and status labels.
func (s *storageMetrics) RecordDuration(
	ctx context.Context,
	operation string,
	duration time.Duration,
	status string,
) {
	s.durationHisto.Record(ctx, duration.Seconds(),
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("status", status),
		),
	)
}

// RecordBytesWritten adds the persisted object size to the write volume counter.
func (s *storageMetrics) RecordBytesWritten(ctx context.Context, size int64) {
	s.bytesCounter.Add(ctx, size)
}

// NoOpStorageMetrics is a no-op implementation of StorageMetrics for when metrics are disabled.
type NoOpStorageMetrics struct{}

// NewNoOpStorageMetrics creates a no-op StorageMetrics implementation.
func NewNoOpStorageMetrics() StorageMetrics {
	return &NoOpStorageMetrics{}
}

// RecordOperation does nothing when metrics are disabled.
func (n *NoOpStorageMetrics) RecordOperation(ctx context.Context, operation, status string) {
	// No-op
}

// RecordDuration does nothing when metrics are disabled.
func (n *NoOpStorageMetrics) RecordDuration(
	ctx context.Context,
	operation string,
	duration time.Duration,
	status string,
) {
	// No-op
}

// RecordBytesWritten does nothing when metrics are disabled.
func (n *NoOpStorageMetrics) RecordBytesWritten(ctx context.Context, size int64) {
	// No-op
}
