package commands

import (
	"context"
	"fmt"
	"strings"
)

// FormatHelp renders a registry as a column-aligned plain-text table, wrapped
// in triple backticks so chat clients render it fixed-width. Keys and arg
// specs are right-justified; entries appear in registration order.
//
// With a parent command the table is scoped: a header line describes the
// parent itself, every entry key is prefixed with the parent key, and column
// widths grow to fit the combined key and the parent's arg spec.
func FormatHelp(r *Registry, parent *Command) string {
	keyWidth := r.KeyWidth()
	argSpecWidth := r.ArgSpecWidth()
	prefix := ""

	var lines []string
	if parent != nil {
		prefix = parent.Key + " "
		keyWidth = len(prefix) + r.KeyWidth()
		if w := len(parent.ArgSpec); w > argSpecWidth {
			argSpecWidth = w
		}
		lines = append(lines, helpLine(parent.Key, parent.ArgSpec, parent.Description, keyWidth, argSpecWidth))
	}

	for _, cmd := range r.Entries() {
		lines = append(lines, helpLine(prefix+cmd.Key, cmd.ArgSpec, cmd.Description, keyWidth, argSpecWidth))
	}

	return "```" + strings.Join(lines, "\n") + "```"
}

func helpLine(key, argSpec, description string, keyWidth, argSpecWidth int) string {
	return fmt.Sprintf("%*s %*s %s", keyWidth, key, argSpecWidth, argSpec, description)
}

// NewHelpCommand builds the self-describing "help" command for a root
// registry. With no arguments it renders the whole registry; given the key of
// a command that owns subcommands it renders that command's scoped help;
// anything else falls back to the root listing.
func NewHelpCommand(root *Registry) *Command {
	return &Command{
		Key:         "help",
		Description: "displays this message.",
		Handler: func(ctx context.Context, args string) (string, error) {
			key, _ := SplitArgs(args)
			if cmd, ok := root.Lookup(key); ok && cmd.Sub != nil {
				return FormatHelp(cmd.Sub, cmd), nil
			}
			return FormatHelp(root, nil), nil
		},
	}
}
