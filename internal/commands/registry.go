package commands

import (
	"fmt"
	"log/slog"
	"strings"
)

// DuplicateCommandError is returned when a key is registered twice within one
// registry. Registration collisions are a configuration bug, so callers wire
// commands through MustRegister at startup and let the process die.
type DuplicateCommandError struct {
	Key string
}

func (e *DuplicateCommandError) Error() string {
	return fmt.Sprintf("command %q already registered", e.Key)
}

// Registry is an ordered collection of command entries scoped to one level of
// the command tree. Registries are built once at startup and are read-only
// afterwards; nothing here is safe for concurrent mutation.
type Registry struct {
	commands map[string]*Command
	order    []string
	logger   *slog.Logger

	// Display metrics for help rendering, maintained incrementally on
	// each registration.
	keyWidth     int
	argSpecWidth int
}

// NewRegistry creates an empty command registry.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.Default()
	}
	return &Registry{
		commands: make(map[string]*Command),
		logger:   logger.With("component", "commands"),
	}
}

// Register adds a command to the registry. The entry's ArgSpec is derived
// from its sub-registry's keys when not supplied explicitly.
func (r *Registry) Register(cmd *Command) error {
	if cmd == nil {
		return fmt.Errorf("command is nil")
	}
	if cmd.Key == "" {
		return fmt.Errorf("command key is required")
	}
	if cmd.Handler == nil {
		return fmt.Errorf("command %q: handler is required", cmd.Key)
	}

	if _, exists := r.commands[cmd.Key]; exists {
		return &DuplicateCommandError{Key: cmd.Key}
	}

	if cmd.ArgSpec == "" && cmd.Sub != nil {
		cmd.ArgSpec = strings.Join(cmd.Sub.Keys(), "|")
	}

	r.commands[cmd.Key] = cmd
	r.order = append(r.order, cmd.Key)

	if w := len(cmd.Key); w > r.keyWidth {
		r.keyWidth = w
	}
	if w := len(cmd.ArgSpec); w > r.argSpecWidth {
		r.argSpecWidth = w
	}

	r.logger.Debug("registered command",
		"key", cmd.Key,
		"argspec", cmd.ArgSpec,
		"subcommands", cmd.Sub.Len())

	return nil
}

// MustRegister is Register for startup wiring: a collision or invalid entry
// aborts the process before the event loop starts.
func (r *Registry) MustRegister(cmd *Command) {
	if err := r.Register(cmd); err != nil {
		panic(fmt.Sprintf("commands: %v", err))
	}
}

// Lookup retrieves a command by exact key match. No case folding, no fuzzy
// matching.
func (r *Registry) Lookup(key string) (*Command, bool) {
	cmd, ok := r.commands[key]
	return cmd, ok
}

// Keys returns all registered keys in insertion order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.order))
	copy(keys, r.order)
	return keys
}

// Entries returns all registered commands in insertion order.
func (r *Registry) Entries() []*Command {
	entries := make([]*Command, 0, len(r.order))
	for _, key := range r.order {
		entries = append(entries, r.commands[key])
	}
	return entries
}

// Len returns the number of registered commands. Safe on a nil registry so
// callers can report on optional sub-registries.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.order)
}

// KeyWidth is the maximum key length across all entries.
func (r *Registry) KeyWidth() int { return r.keyWidth }

// ArgSpecWidth is the maximum arg-spec length across all entries.
func (r *Registry) ArgSpecWidth() int { return r.argSpecWidth }
