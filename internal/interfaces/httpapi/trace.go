package httpapi

import (
	"context"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var apiTracer = otel.Tracer("season-tracker/internal/interfaces/httpapi")

// startHandlerSpan opens a child of the otelhttp request span, tagged with
// the matched route and any scope path values. Untraced requests (health
// probes) get the no-op span already in the context.
func startHandlerSpan(r *http.Request, handler string) (context.Context, trace.Span) {
	ctx := r.Context()
	name := handlerSpanPrefix + handler
	if !shouldCreateHTTPAPISpan(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, trace.SpanFromContext(ctx)
	}

	ctx, span := apiTracer.Start(ctx, name)
	attrs := make([]attribute.KeyValue, 0, 4)
	if r.Pattern != "" {
		attrs = append(attrs, attribute.String("http.route", r.Pattern))
	}
	for _, key := range []string{"code", "season", "teamID"} {
		if value := r.PathValue(key); value != "" {
			attrs = append(attrs, attribute.String("path."+key, value))
		}
	}
	span.SetAttributes(attrs...)
	return ctx, span
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix) && len(name) > len(handlerSpanPrefix)
}
