package commands

import "testing"

func TestSplitArgs(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKey  string
		wantRest string
	}{
		{
			name:     "key and remainder",
			input:    "foo bar a b c",
			wantKey:  "foo",
			wantRest: "bar a b c",
		},
		{
			name:     "key only",
			input:    "foo",
			wantKey:  "foo",
			wantRest: "",
		},
		{
			name:     "empty input",
			input:    "",
			wantKey:  "",
			wantRest: "",
		},
		{
			name:     "whitespace only",
			input:    "   ",
			wantKey:  "",
			wantRest: "",
		},
		{
			name:     "leading whitespace ignored",
			input:    "  foo bar",
			wantKey:  "foo",
			wantRest: "bar",
		},
		{
			name:     "remainder starts after whole whitespace run",
			input:    "foo   bar baz",
			wantKey:  "foo",
			wantRest: "bar baz",
		},
		{
			name:     "remainder trailing whitespace preserved",
			input:    "foo bar  ",
			wantKey:  "foo",
			wantRest: "bar  ",
		},
		{
			name:     "tab separated",
			input:    "foo\tbar",
			wantKey:  "foo",
			wantRest: "bar",
		},
		{
			name:     "key with trailing whitespace only",
			input:    "foo   ",
			wantKey:  "foo",
			wantRest: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, rest := SplitArgs(tt.input)
			if key != tt.wantKey || rest != tt.wantRest {
				t.Errorf("SplitArgs(%q) = (%q, %q), want (%q, %q)",
					tt.input, key, rest, tt.wantKey, tt.wantRest)
			}
		})
	}
}
