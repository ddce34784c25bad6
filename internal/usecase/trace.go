package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("soccer-academy/internal/usecase")

// startSpan opens a child span only when ctx already carries a valid span;
// untraced callers get the no-op span from ctx back.
func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func matchAttr(matchID int64) attribute.KeyValue {
	return attribute.Int64("match.id", matchID)
}
