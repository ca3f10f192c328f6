package otlp_test

import (
	"context"
	"testing"

	"github.com/architeacher/gadgets/pkg/metrics/otlp"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

func TestMetricsClient_Records(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	client := otlp.NewWithReader(reader)

	t.Cleanup(func() {
		_ = client.Shutdown(context.Background())
	})

	ctx := context.Background()
	client.Inc(ctx, "commands.createdevicecommand.success", 1, attribute.String("outcome", "ok"))
	client.Inc(ctx, "commands.createdevicecommand.success", 2, attribute.String("outcome", "ok"))
	client.Observe(ctx, "commands.createdevicecommand.duration", 0.25)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	byName := make(map[string]metricdata.Metrics)
	for _, m := range rm.ScopeMetrics[0].Metrics {
		byName[m.Name] = m
	}

	sum, ok := byName["commands.createdevicecommand.success"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	require.Equal(t, int64(3), sum.DataPoints[0].Value)

	histogram, ok := byName["commands.createdevicecommand.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Equal(t, uint64(1), histogram.DataPoints[0].Count)
}
