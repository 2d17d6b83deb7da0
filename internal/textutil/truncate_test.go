package textutil

import "testing"

func TestTruncate(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		max    int
		suffix string
		want   string
	}{
		{
			name:   "shorter than max",
			input:  "hello",
			max:    10,
			suffix: "...",
			want:   "hello",
		},
		{
			name:   "exact length",
			input:  "hello",
			max:    5,
			suffix: "...",
			want:   "hello",
		},
		{
			name:   "truncate ascii",
			input:  "hello world",
			max:    5,
			suffix: "...",
			want:   "hello...",
		},
		{
			name:   "empty input",
			input:  "",
			max:    10,
			suffix: "...",
			want:   "",
		},
		{
			name:   "max zero",
			input:  "hello",
			max:    0,
			suffix: "...",
			want:   "...",
		},
		{
			name:   "two-byte utf8 not split",
			input:  "ab\xc3\xa9cd", // "abÃ©cd" - Ã© is 2 bytes
			max:    3,              // lands on the second byte of Ã©
			suffix: "!",
			want:   "ab!",
		},
		{
			name:   "three-byte utf8 not split",
			input:  "a\xe2\x82\xacb", // "aâ‚¬b" - â‚¬ is 3 bytes
			max:    2,                 // lands inside â‚¬
			suffix: "!",
			want:   "a!",
		},
		{
			name:   "four-byte utf8 not split",
			input:  "a\xf0\x9f\x98\x80b", // "aðŸ˜€b" - ðŸ˜€ is 4 bytes
			max:    3,                      // lands inside ðŸ˜€
			suffix: "!",
			want:   "a!",
		},
		{
			name:   "cut at utf8 boundary is clean",
			input:  "a\xc3\xa9b", // "aÃ©b"
			max:    1,
			suffix: "!",
			want:   "a!",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.max, tt.suffix)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d, %q) = %q, want %q",
					tt.input, tt.max, tt.suffix, got, tt.want)
			}
		})
	}
}

func TestStripCommitPrefix(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"feat colon", "feat: add caching", "add caching"},
		{"feature capitalized", "Feature: add caching", "add caching"},
		{"fix with scope", "fix(parser): handle empty input", "handle empty input"},
		{"breaking change marker", "feat!: drop legacy flag", "drop legacy flag"},
		{"chore", "chore: bump deps", "bump deps"},
		{"no prefix", "Add retry logic", "Add retry logic"},
		{"prefix word without colon", "feature flags for rollout", "feature flags for rollout"},
		{"surrounding whitespace", "  fix:  trim me  ", "trim me"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripCommitPrefix(tt.input); got != tt.want {
				t.Errorf("StripCommitPrefix(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
