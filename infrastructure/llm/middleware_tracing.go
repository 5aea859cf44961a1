package llm

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// tracedLLM wraps completion requests in OpenTelemetry spans for
// distributed tracing across the pipeline.
type tracedLLM struct {
	next        CoreLLM
	serviceName string
}

// TracingMiddleware creates middleware that records a span per
// completion request, carrying model and token attributes.
func TracingMiddleware(serviceName string) Middleware {
	return func(next CoreLLM) CoreLLM {
		return &tracedLLM{next: next, serviceName: serviceName}
	}
}

// DoRequest executes the request inside a span. Failures are recorded
// on the span; successes carry token usage attributes.
func (t *tracedLLM) DoRequest(ctx context.Context, prompt string, opts map[string]any) (string, int, int, error) {
	tracer := otel.Tracer(t.serviceName)
	ctx, span := tracer.Start(ctx, "completion.request")
	defer span.End()

	span.SetAttributes(
		attribute.String("llm.model", t.next.GetModel()),
		attribute.Int("llm.prompt.length", len(prompt)),
	)

	response, tokensIn, tokensOut, err := t.next.DoRequest(ctx, prompt, opts)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return response, tokensIn, tokensOut, err
	}

	span.SetAttributes(
		attribute.Int("llm.tokens.input", tokensIn),
		attribute.Int("llm.tokens.output", tokensOut),
	)

	return response, tokensIn, tokensOut, nil
}

// GetModel returns the model name from the wrapped implementation.
func (t *tracedLLM) GetModel() string { return t.next.GetModel() }

// SetModel updates the model name in the wrapped implementation.
func (t *tracedLLM) SetModel(m string) { t.next.SetModel(m) }
