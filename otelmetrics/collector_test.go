// collector_test.go: tests for the OpenTelemetry MetricsCollector adapter
//
// SPDX-License-Identifier: MPL-2.0

package otelmetrics

import (
	"testing"

	"go.opentelemetry.io/otel/metric/noop"
)

func TestNewCollector_NilProvider(t *testing.T) {
	_, err := NewCollector(nil)
	if err == nil {
		t.Error("expected error for a nil meter provider")
	}
}

func TestNewCollector_Default(t *testing.T) {
	collector, err := NewCollector(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewCollector failed: %v", err)
	}
	if collector == nil {
		t.Fatal("expected a non-nil collector")
	}
}

func TestNewCollector_WithMeterName(t *testing.T) {
	collector, err := NewCollector(noop.NewMeterProvider(), WithMeterName("custom/meter"))
	if err != nil {
		t.Fatalf("NewCollector failed: %v", err)
	}
	if collector == nil {
		t.Fatal("expected a non-nil collector")
	}
}

func TestCollector_RecordMethodsDoNotPanic(t *testing.T) {
	collector, err := NewCollector(noop.NewMeterProvider())
	if err != nil {
		t.Fatalf("NewCollector failed: %v", err)
	}

	collector.RecordGet(100, true)
	collector.RecordGet(200, false)
	collector.RecordSet(150)
	collector.RecordDelete(50)
	collector.RecordEviction()
	collector.RecordExpiration()
	collector.RecordInvalidateTag("tag", 3)
	collector.RecordInvalidateTag("tag", 0) // no-op path
}
