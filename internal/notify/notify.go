package notify

import "context"

// Notifier is the best-effort side channel for reporting extraction failures
// to an operator. Implementations return a success indicator and never raise;
// delivery is irrelevant to pipeline correctness.
type Notifier interface {
	Report(ctx context.Context, subject, detail string) bool
}

// Nop discards every report. Used when the notifier is not configured.
type Nop struct{}

func (Nop) Report(context.Context, string, string) bool { return false }
