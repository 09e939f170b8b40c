package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/season-tracker/internal/domain/competition"
)

var usecaseTracer = otel.Tracer("season-tracker/internal/usecase")
var usecaseNoopSpan = trace.SpanFromContext(context.Background())

// startUsecaseSpan only opens a child span when the caller is already traced.
func startUsecaseSpan(ctx context.Context, name string, scope ...competition.Scope) (context.Context, trace.Span) {
	if strings.TrimSpace(name) == "" {
		return ctx, usecaseNoopSpan
	}
	parent := trace.SpanFromContext(ctx)
	if !parent.SpanContext().IsValid() {
		return ctx, usecaseNoopSpan
	}
	ctx, span := usecaseTracer.Start(ctx, name)
	if len(scope) > 0 {
		span.SetAttributes(
			attribute.String("competition.code", scope[0].CompetitionCode),
			attribute.Int("competition.season", scope[0].SeasonStartYear),
		)
	}
	return ctx, span
}
