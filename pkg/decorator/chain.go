package decorator

import (
	"context"
	"fmt"
	"strings"

	"github.com/architeacher/gadgets/pkg/logger"
	"github.com/architeacher/gadgets/pkg/metrics"
	otelTrace "go.opentelemetry.io/otel/trace"
)

type (
	Command any
	Query   any
	Result  any

	CommandHandler[C Command, R any] interface {
		Handle(context.Context, C) (R, error)
	}

	QueryHandler[Q Query, R Result] interface {
		Execute(ctx context.Context, query Q) (R, error)
	}
)

// ApplyCommandDecorators wraps handler so that logging sees the outcome of
// metrics and tracing, and tracing is closest to the handler.
func ApplyCommandDecorators[C Command, R any](
	handler CommandHandler[C, R],
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) CommandHandler[C, R] {
	traced := commandTracingDecorator[C, R]{base: handler, tracerProvider: tracerProvider}
	measured := commandMetricsDecorator[C, R]{base: traced, client: metricsClient}

	return commandLoggingDecorator[C, R]{base: measured, logger: log}
}

// ApplyQueryDecorators uses the same order as ApplyCommandDecorators.
func ApplyQueryDecorators[Q Query, R Result](
	handler QueryHandler[Q, R],
	log logger.Logger,
	metricsClient metrics.Client,
	tracerProvider otelTrace.TracerProvider,
) QueryHandler[Q, R] {
	traced := queryTracingDecorator[Q, R]{base: handler, tracerProvider: tracerProvider}
	measured := queryMetricsDecorator[Q, R]{base: traced, client: metricsClient}

	return queryLoggingDecorator[Q, R]{base: measured, logger: log}
}

// generateActionName turns "commands.CreateDeviceCommand" into "CreateDeviceCommand".
func generateActionName(handler any) string {
	name := fmt.Sprintf("%T", handler)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}

	return strings.TrimPrefix(name, "*")
}
