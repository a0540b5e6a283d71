package search

import "context"

// Engine is the narrow boundary to the external reasoning service. Its output
// is untrusted, non-deterministic text; the resolver owns all parsing and
// repair. Implementations make exactly one inference attempt per call.
type Engine interface {
	Infer(ctx context.Context, prompt string) (string, error)
}
