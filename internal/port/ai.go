package port

import "context"

// TextGenerator abstracts the hosted generative-text backend.
// Implementations return ErrRemoteUnavailable-kind errors for transport
// failures, non-2xx replies, safety blocks and empty candidates.
type TextGenerator interface {
	// ModelName returns the identifier of the model being used.
	ModelName() string

	// Generate sends a single prompt and returns the model's prose reply.
	Generate(ctx context.Context, prompt string) (string, error)
}
