package ai

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/arturoeanton/roadmapai/internal/port"
)

const tracerName = "github.com/arturoeanton/roadmapai/internal/adapter/ai"

type tracedGenerator struct {
	next   port.TextGenerator
	tracer trace.Tracer
}

// Traced wraps gen so every Generate call gets its own client span. A nil
// gen stays nil; a nil provider uses the global one.
func Traced(gen port.TextGenerator, tp trace.TracerProvider) port.TextGenerator {
	if gen == nil {
		return nil
	}
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &tracedGenerator{next: gen, tracer: tp.Tracer(tracerName)}
}

func (g *tracedGenerator) ModelName() string { return g.next.ModelName() }

func (g *tracedGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, span := g.tracer.Start(ctx, "assistant.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("gen_ai.request.model", g.next.ModelName()),
			attribute.Int("assistant.prompt_chars", len(prompt)),
		),
	)
	defer span.End()

	out, err := g.next.Generate(ctx, prompt)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate failed")
		return "", err
	}
	span.SetAttributes(attribute.Int("assistant.reply_chars", len(out)))
	return out, nil
}
