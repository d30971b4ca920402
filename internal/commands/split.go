package commands

import (
	"strings"
	"unicode"
)

// SplitArgs splits raw text into a command key and the remainder. The key is
// the first whitespace-delimited token; the remainder starts after the first
// run of whitespace and is otherwise passed through verbatim, trailing
// structure included. Empty or all-whitespace input yields ("", "").
//
// This is the entire parsing grammar: one token plus an opaque remainder,
// re-split recursively by nested dispatch. No quoting or escaping.
func SplitArgs(s string) (key, rest string) {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	if s == "" {
		return "", ""
	}
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return s, ""
	}
	return s[:i], strings.TrimLeftFunc(s[i:], unicode.IsSpace)
}
