// Package otlp pushes counters and histograms to an OTLP collector over gRPC.
package otlp

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/architeacher/gadgets/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

type (
	Config struct {
		Endpoint       string
		Insecure       bool
		ExportInterval time.Duration
	}

	MetricsClient struct {
		provider *sdkmetric.MeterProvider
		meter    metric.Meter

		mu         sync.Mutex
		counters   map[string]metric.Int64Counter
		histograms map[string]metric.Float64Histogram
	}
)

func NewMetricsClient(ctx context.Context, cfg Config, res *resource.Resource) (*MetricsClient, error) {
	opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exporter, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP metric exporter: %w", err)
	}

	interval := cfg.ExportInterval
	if interval <= 0 {
		interval = 30 * time.Second
	}

	return newClient(sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(interval))),
	)), nil
}

// NewWithReader builds a client on an arbitrary reader, such as a manual reader in tests.
func NewWithReader(reader sdkmetric.Reader) *MetricsClient {
	return newClient(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)))
}

func newClient(provider *sdkmetric.MeterProvider) *MetricsClient {
	return &MetricsClient{
		provider:   provider,
		meter:      provider.Meter("github.com/architeacher/gadgets"),
		counters:   make(map[string]metric.Int64Counter),
		histograms: make(map[string]metric.Float64Histogram),
	}
}

func (c *MetricsClient) Inc(ctx context.Context, key string, value int64, attributes ...attribute.KeyValue) {
	counter, err := c.counter(key)
	if err != nil {
		return
	}

	counter.Add(ctx, value, metric.WithAttributes(attributes...))
}

func (c *MetricsClient) Observe(ctx context.Context, key string, value float64, attributes ...attribute.KeyValue) {
	histogram, err := c.histogram(key)
	if err != nil {
		return
	}

	histogram.Record(ctx, value, metric.WithAttributes(attributes...))
}

// Handler is not served; metrics are pushed to the collector.
func (c *MetricsClient) Handler() http.Handler {
	return http.NotFoundHandler()
}

func (c *MetricsClient) Shutdown(ctx context.Context) error {
	return c.provider.Shutdown(ctx)
}

func (c *MetricsClient) counter(key string) (metric.Int64Counter, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if counter, ok := c.counters[key]; ok {
		return counter, nil
	}

	counter, err := metrics.RegisterInt64Counter(c.meter, key, metrics.Descriptor{Unit: "1"})
	if err != nil {
		return nil, err
	}

	c.counters[key] = counter

	return counter, nil
}

func (c *MetricsClient) histogram(key string) (metric.Float64Histogram, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if histogram, ok := c.histograms[key]; ok {
		return histogram, nil
	}

	histogram, err := metrics.RegisterFloat64Histogram(c.meter, key, metrics.Descriptor{Unit: "s"})
	if err != nil {
		return nil, err
	}

	c.histograms[key] = histogram

	return histogram, nil
}
