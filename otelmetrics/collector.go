// Package otelmetrics provides an OpenTelemetry-backed MetricsCollector
// for tagcache.
//
// This implements tagcache.MetricsCollector using OTel instruments,
// giving automatic percentile calculation for operation latencies and
// counters for hits, misses, evictions, expirations, and tag
// invalidations. The core tagcache module carries zero OTel dependencies;
// this adapter lives in its own module so pulling it in is opt-in,
// grounded on the teacher library's otel/collector.go.
//
// Usage:
//
//	exporter, _ := prometheus.New()
//	provider := metric.NewMeterProvider(metric.WithReader(exporter))
//	collector, err := otelmetrics.NewCollector(provider)
//	cache := tagcache.New(tagcache.Config{MetricsCollector: collector})
//
// SPDX-License-Identifier: MPL-2.0
package otelmetrics

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/metric"
)

// Collector implements tagcache.MetricsCollector using OpenTelemetry
// instruments. Safe for concurrent use; all underlying instruments are
// lock-free.
type Collector struct {
	getLatency    metric.Int64Histogram
	setLatency    metric.Int64Histogram
	deleteLatency metric.Int64Histogram

	hits        metric.Int64Counter
	misses      metric.Int64Counter
	evictions   metric.Int64Counter
	expirations metric.Int64Counter
	invalidated metric.Int64Counter
}

// Options configures Collector construction.
type Options struct {
	// MeterName names the OTel meter. Default: "github.com/coldkv/tagcache".
	MeterName string
}

// Option is a functional option for NewCollector.
type Option func(*Options)

// WithMeterName overrides the default meter name, useful when running
// multiple cache instances that should report distinct metric streams.
func WithMeterName(name string) Option {
	return func(o *Options) { o.MeterName = name }
}

// NewCollector creates a Collector backed by provider. Returns an error if
// provider is nil or instrument creation fails.
func NewCollector(provider metric.MeterProvider, opts ...Option) (*Collector, error) {
	if provider == nil {
		return nil, errors.New("meter provider cannot be nil")
	}

	options := Options{MeterName: "github.com/coldkv/tagcache"}
	for _, opt := range opts {
		opt(&options)
	}

	meter := provider.Meter(options.MeterName)
	c := &Collector{}

	var err error
	if c.getLatency, err = meter.Int64Histogram("tagcache_get_latency_ns",
		metric.WithDescription("Latency of Get operations in nanoseconds"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}
	if c.setLatency, err = meter.Int64Histogram("tagcache_set_latency_ns",
		metric.WithDescription("Latency of Set operations in nanoseconds"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}
	if c.deleteLatency, err = meter.Int64Histogram("tagcache_delete_latency_ns",
		metric.WithDescription("Latency of Delete operations in nanoseconds"), metric.WithUnit("ns")); err != nil {
		return nil, err
	}
	if c.hits, err = meter.Int64Counter("tagcache_hits_total",
		metric.WithDescription("Total number of cache hits")); err != nil {
		return nil, err
	}
	if c.misses, err = meter.Int64Counter("tagcache_misses_total",
		metric.WithDescription("Total number of cache misses")); err != nil {
		return nil, err
	}
	if c.evictions, err = meter.Int64Counter("tagcache_evictions_total",
		metric.WithDescription("Total number of capacity evictions")); err != nil {
		return nil, err
	}
	if c.expirations, err = meter.Int64Counter("tagcache_expirations_total",
		metric.WithDescription("Total number of TTL-based expirations")); err != nil {
		return nil, err
	}
	if c.invalidated, err = meter.Int64Counter("tagcache_tag_invalidations_total",
		metric.WithDescription("Total number of entries removed via InvalidateTag")); err != nil {
		return nil, err
	}

	return c, nil
}

// RecordGet records a Get operation's latency and hit/miss outcome.
func (c *Collector) RecordGet(latencyNs int64, hit bool) {
	ctx := context.Background()
	c.getLatency.Record(ctx, latencyNs)
	if hit {
		c.hits.Add(ctx, 1)
	} else {
		c.misses.Add(ctx, 1)
	}
}

// RecordSet records a Set operation's latency.
func (c *Collector) RecordSet(latencyNs int64) {
	c.setLatency.Record(context.Background(), latencyNs)
}

// RecordDelete records a Delete operation's latency.
func (c *Collector) RecordDelete(latencyNs int64) {
	c.deleteLatency.Record(context.Background(), latencyNs)
}

// RecordEviction increments the eviction counter.
func (c *Collector) RecordEviction() {
	c.evictions.Add(context.Background(), 1)
}

// RecordExpiration increments the expiration counter.
func (c *Collector) RecordExpiration() {
	c.expirations.Add(context.Background(), 1)
}

// RecordInvalidateTag increments the tag-invalidation counter by removed.
func (c *Collector) RecordInvalidateTag(tag string, removed int) {
	if removed <= 0 {
		return
	}
	c.invalidated.Add(context.Background(), int64(removed))
}
