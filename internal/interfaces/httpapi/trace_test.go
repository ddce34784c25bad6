package httpapi

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/trace"
)

func TestIsHandlerSpan(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.CreateMatch", want: true},
		{in: "httpapi.RequestLogging", want: false},
		{in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		if got := isHandlerSpan(tt.in); got != tt.want {
			t.Fatalf("isHandlerSpan(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.GetMatch")
	defer span.End()

	if got != ctx {
		t.Fatalf("expected context unchanged without a parent span")
	}
	if span.SpanContext().IsValid() || trace.SpanFromContext(got).IsRecording() {
		t.Fatalf("expected non-recording span")
	}
}
