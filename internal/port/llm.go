package port

import "context"

// ChatCompleter abstracts the LLM collaborator used for page classification
// and data extraction: text in, raw model output out. Implementations own
// their request timeout; the pipeline never retries a failed call.
type ChatCompleter interface {
	Complete(ctx context.Context, systemPrompt, userContent string) (string, error)
}
