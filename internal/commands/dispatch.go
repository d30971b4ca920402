package commands

import (
	"context"
)

// Outcome classifies a dispatch attempt. Only OutcomeReplied triggers an
// outbound send at the session boundary.
type Outcome int

const (
	// OutcomeNoMatch means the key named no registered command. Not an
	// error: bots see arbitrary chat traffic and ignore what isn't theirs.
	OutcomeNoMatch Outcome = iota

	// OutcomeSilent means the handler ran and chose not to reply.
	OutcomeSilent

	// OutcomeReplied means the handler produced reply text.
	OutcomeReplied
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoMatch:
		return "no_match"
	case OutcomeSilent:
		return "silent"
	case OutcomeReplied:
		return "replied"
	default:
		return "unknown"
	}
}

// Result is the outcome of one dispatch. Text is set only for OutcomeReplied.
type Result struct {
	Outcome Outcome
	Text    string
}

// Dispatch resolves raw input against a registry and invokes the matched
// handler with the remainder text. Handler errors are returned unwrapped:
// the caller at the event-loop boundary decides what a failing command means.
//
// Sub-registries are a handler-level concern. A command with subcommands
// calls Dispatch again against its own Sub from inside its handler; whatever
// that inner dispatch returns (text or nothing) passes through unchanged.
func Dispatch(ctx context.Context, r *Registry, raw string) (Result, error) {
	key, rest := SplitArgs(raw)
	cmd, ok := r.Lookup(key)
	if !ok {
		return Result{Outcome: OutcomeNoMatch}, nil
	}
	text, err := cmd.Handler(ctx, rest)
	if err != nil {
		return Result{}, err
	}
	if text == "" {
		return Result{Outcome: OutcomeSilent}, nil
	}
	return Result{Outcome: OutcomeReplied, Text: text}, nil
}
