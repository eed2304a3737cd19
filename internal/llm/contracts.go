package llm

import "context"

// TextCompleter is the model-provider boundary the extraction pipeline
// depends on. Complete returns the provider's free-text output, or the empty
// string on any failure: transport errors, timeouts, unrecognized response
// envelopes and missing credentials all collapse to "" at this boundary.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string) string
}
