package navigation

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var navigationTracer = otel.Tracer("billiards-tracker/internal/interfaces/navigation")
var noopSpan = trace.SpanFromContext(context.Background())

func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, noopSpan
	}
	if !shouldCreateNavigationSpan(name) {
		return ctx, noopSpan
	}
	return navigationTracer.Start(ctx, name)
}

func shouldCreateNavigationSpan(name string) bool {
	return strings.HasPrefix(name, "navigation.Guard.")
}
