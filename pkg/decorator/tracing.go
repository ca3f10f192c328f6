package decorator

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otelTrace "go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/architeacher/gadgets/usecases"

type (
	commandTracingDecorator[C Command, R any] struct {
		base           CommandHandler[C, R]
		tracerProvider otelTrace.TracerProvider
	}

	queryTracingDecorator[Q Query, R Result] struct {
		base           QueryHandler[Q, R]
		tracerProvider otelTrace.TracerProvider
	}
)

func (d commandTracingDecorator[C, R]) Handle(ctx context.Context, cmd C) (R, error) {
	if d.tracerProvider == nil {
		return d.base.Handle(ctx, cmd)
	}

	name := generateActionName(cmd)

	ctx, span := d.tracerProvider.Tracer(tracerName).Start(ctx, "command."+name,
		otelTrace.WithAttributes(attribute.String("usecase.kind", "command")),
	)
	defer span.End()

	result, err := d.base.Handle(ctx, cmd)
	recordOutcome(span, err)

	return result, err
}

func (d queryTracingDecorator[Q, R]) Execute(ctx context.Context, query Q) (R, error) {
	if d.tracerProvider == nil {
		return d.base.Execute(ctx, query)
	}

	name := generateActionName(query)

	ctx, span := d.tracerProvider.Tracer(tracerName).Start(ctx, "query."+name,
		otelTrace.WithAttributes(attribute.String("usecase.kind", "query")),
	)
	defer span.End()

	result, err := d.base.Execute(ctx, query)
	recordOutcome(span, err)

	return result, err
}

func recordOutcome(span otelTrace.Span, err error) {
	if err == nil {
		span.SetStatus(codes.Ok, "")

		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
