// Package classify models the optional LLM call-certainty classifier: given
// a caller's source and a set of candidate callee ids, judge how certain
// each call actually fires at runtime. No concrete engine ships here - Go has
// no drop-in equivalent to the reference implementation's model client, so
// callers supply their own Classifier (e.g. backed by an LLM API) or use
// Null when certainty scoring isn't needed.
package classify

import "context"

// Certainty is how confidently a call edge is believed to fire.
type Certainty string

const (
	Always      Certainty = "always"
	Conditional Certainty = "conditional"
	Unlikely    Certainty = "unlikely"
	Unknown     Certainty = "unknown"
)

// Classifier judges the certainty of each calleeID being reached from
// targetID, given targetSource as context.
type Classifier interface {
	Classify(ctx context.Context, targetSource string, calleeIDs []string, targetID string) (map[string]Certainty, error)
}

// Null reports every callee as Unknown without inspecting source. It exists
// so callers can wire the classify stage without an LLM client present.
type Null struct{}

func (Null) Classify(_ context.Context, _ string, calleeIDs []string, _ string) (map[string]Certainty, error) {
	out := make(map[string]Certainty, len(calleeIDs))
	for _, id := range calleeIDs {
		out[id] = Unknown
	}
	return out, nil
}
