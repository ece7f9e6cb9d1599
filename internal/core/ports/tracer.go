package ports

import "context"

// Span is a unit of traced work.
type Span interface {
	// End completes the span.
	End()

	// RecordError marks the span as failed.
	RecordError(err error)

	// SetAttribute attaches a key/value pair.
	SetAttribute(key string, value any)
}

// Tracer starts spans.
//
//go:generate mockgen -source=tracer.go -destination=mocks/mock_tracer.go -package=mocks
type Tracer interface {
	// Start creates a span as a child of any span in ctx.
	Start(ctx context.Context, name string) (context.Context, Span)
}
