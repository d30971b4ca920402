package commands

import (
	"context"
	"strings"
	"testing"
)

func stripFence(t *testing.T, s string) string {
	t.Helper()
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") {
		t.Fatalf("help output not fenced: %q", s)
	}
	return strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
}

func TestFormatHelp_RootAlignment(t *testing.T) {
	r := NewRegistry(nil)
	r.MustRegister(&Command{Key: "a", Description: "first", Handler: nopHandler})
	r.MustRegister(&Command{Key: "bb", ArgSpec: "x", Description: "second", Handler: nopHandler})

	body := stripFence(t, FormatHelp(r, nil))
	lines := strings.Split(body, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), body)
	}

	// Keys right-justified to width 2, arg specs to width 1, insertion order.
	if lines[0] != " a   first" {
		t.Errorf("line 0 = %q, want %q", lines[0], " a   first")
	}
	if lines[1] != "bb x second" {
		t.Errorf("line 1 = %q, want %q", lines[1], "bb x second")
	}
}

func TestFormatHelp_WithParent(t *testing.T) {
	sub := NewRegistry(nil)
	sub.MustRegister(&Command{Key: "info", ArgSpec: "<project name>", Description: "displays project information", Handler: nopHandler})
	sub.MustRegister(&Command{Key: "help", Description: "displays this message.", Handler: nopHandler})

	parent := &Command{Key: "jenkins", Description: "jenkins integration", Handler: nopHandler, Sub: sub}
	root := NewRegistry(nil)
	root.MustRegister(parent)

	body := stripFence(t, FormatHelp(sub, parent))
	lines := strings.Split(body, "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), body)
	}

	// Combined key width: len("jenkins ") + max sub key width (4) = 12.
	// Arg-spec width: max(len("info|help"), len("<project name>")) = 14.
	wantHeader := "     jenkins      info|help jenkins integration"
	if lines[0] != wantHeader {
		t.Errorf("header = %q, want %q", lines[0], wantHeader)
	}
	wantInfo := "jenkins info <project name> displays project information"
	if lines[1] != wantInfo {
		t.Errorf("line 1 = %q, want %q", lines[1], wantInfo)
	}
	wantHelp := "jenkins help                displays this message."
	if lines[2] != wantHelp {
		t.Errorf("line 2 = %q, want %q", lines[2], wantHelp)
	}
}

func TestNewHelpCommand(t *testing.T) {
	sub := NewRegistry(nil)
	sub.MustRegister(&Command{Key: "info", ArgSpec: "<project name>", Description: "displays project information", Handler: nopHandler})

	root := NewRegistry(nil)
	root.MustRegister(&Command{Key: "jenkins", Description: "jenkins integration", Handler: nopHandler, Sub: sub})
	root.MustRegister(&Command{Key: "ping", Description: "replies with pong", Handler: nopHandler})
	root.MustRegister(NewHelpCommand(root))

	invoke := func(t *testing.T, args string) string {
		t.Helper()
		cmd, ok := root.Lookup("help")
		if !ok {
			t.Fatal("help command not registered")
		}
		text, err := cmd.Handler(context.Background(), args)
		if err != nil {
			t.Fatalf("help handler failed: %v", err)
		}
		return text
	}

	t.Run("empty input renders root help", func(t *testing.T) {
		out := invoke(t, "")
		if !strings.Contains(out, "jenkins") || !strings.Contains(out, "ping") || !strings.Contains(out, "help") {
			t.Errorf("root help missing entries: %q", out)
		}
	})

	t.Run("command with subcommands renders scoped help", func(t *testing.T) {
		out := invoke(t, "jenkins")
		if !strings.Contains(out, "jenkins info") {
			t.Errorf("scoped help missing prefixed subcommand: %q", out)
		}
		if strings.Contains(out, "ping") {
			t.Errorf("scoped help leaked root entries: %q", out)
		}
	})

	t.Run("leaf command falls back to root help", func(t *testing.T) {
		if got, want := invoke(t, "ping"), invoke(t, ""); got != want {
			t.Errorf("leaf fallback = %q, want root help %q", got, want)
		}
	})

	t.Run("unknown key falls back to root help", func(t *testing.T) {
		if got, want := invoke(t, "nope"), invoke(t, ""); got != want {
			t.Errorf("unknown fallback = %q, want root help %q", got, want)
		}
	})
}
