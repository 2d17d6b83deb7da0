package summarize

import (
	"errors"
	"testing"
)

func TestParseBatch(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    []ItemSummary
		wantErr bool
	}{
		{
			name: "bare JSON",
			raw:  `{"summaries":[{"index":0,"summary":"Adds caching."}]}`,
			want: []ItemSummary{{Index: 0, Summary: "Adds caching."}},
		},
		{
			name: "markdown fenced",
			raw:  "```json\n{\"summaries\":[{\"index\":1,\"summary\":\"Fixes a leak.\"}]}\n```",
			want: []ItemSummary{{Index: 1, Summary: "Fixes a leak."}},
		},
		{
			name: "surrounded by prose",
			raw:  "Here are your summaries:\n{\"summaries\":[{\"index\":0,\"summary\":\"x\"},{\"index\":2,\"summary\":\"y\"}]}\nLet me know if you need more.",
			want: []ItemSummary{{Index: 0, Summary: "x"}, {Index: 2, Summary: "y"}},
		},
		{
			name: "empty list",
			raw:  `{"summaries":[]}`,
			want: nil,
		},
		{
			name:    "no braces at all",
			raw:     "I could not produce summaries, sorry.",
			wantErr: true,
		},
		{
			name:    "empty response",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "braces but invalid JSON",
			raw:     "{summaries: [oops]}",
			wantErr: true,
		},
		{
			name:    "reversed braces",
			raw:     "} nothing here {",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseBatch(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, ErrMalformedResponse) {
					t.Errorf("error %v is not ErrMalformedResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %d summaries, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("summary %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
