// Package commands provides command registration, dispatch and help rendering.
package commands

import (
	"context"
)

// Handler processes the remainder of a command invocation and returns the
// reply text. An empty string means "no reply". Errors are not handled here:
// they propagate to the event-loop boundary, which owns the policy for
// failing handlers.
type Handler func(ctx context.Context, args string) (string, error)

// Command is one registered command entry. Entries are immutable after
// registration.
type Command struct {
	// Key is the first whitespace-delimited token that selects this command.
	// Unique within its owning registry, matched exactly.
	Key string

	// Handler executes the command against the remainder text.
	Handler Handler

	// ArgSpec is a display string describing accepted arguments. When the
	// command owns a sub-registry and no ArgSpec is given, it is derived as
	// the |-joined list of the sub-registry's keys.
	ArgSpec string

	// Description is a one-line help string.
	Description string

	// Sub is an optional nested registry. Dispatch never recurses into it
	// automatically: a handler with subcommands re-dispatches its remainder
	// against Sub itself, keeping the handler contract uniform for leaves
	// and subtrees.
	Sub *Registry
}
