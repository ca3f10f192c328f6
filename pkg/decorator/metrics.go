package decorator

import (
	"context"
	"strings"
	"time"

	"github.com/architeacher/gadgets/pkg/metrics"
	"go.opentelemetry.io/otel/attribute"
)

type (
	commandMetricsDecorator[C Command, R any] struct {
		base   CommandHandler[C, R]
		client metrics.Client
	}

	queryMetricsDecorator[Q Query, R Result] struct {
		base   QueryHandler[Q, R]
		client metrics.Client
	}
)

func (d commandMetricsDecorator[C, R]) Handle(ctx context.Context, cmd C) (result R, err error) {
	defer record(ctx, d.client, "commands", generateActionName(cmd), time.Now(), &err)

	return d.base.Handle(ctx, cmd)
}

func (d queryMetricsDecorator[Q, R]) Execute(ctx context.Context, query Q) (result R, err error) {
	defer record(ctx, d.client, "queries", generateActionName(query), time.Now(), &err)

	return d.base.Execute(ctx, query)
}

// record emits <kind>.<name>.duration plus a success or failure counter.
func record(ctx context.Context, client metrics.Client, kind, name string, start time.Time, err *error) {
	if client == nil {
		return
	}

	prefix := kind + "." + strings.ToLower(name)
	outcome := "success"

	if *err != nil {
		outcome = "failure"
	}

	client.Observe(ctx, prefix+".duration", time.Since(start).Seconds(), attribute.String("outcome", outcome))
	client.Inc(ctx, prefix+"."+outcome, 1)
}
