package ghactivity

import (
	"testing"
	"time"

	"github.com/drpaneas/weekdigest/internal/window"
)

func TestSearchExpr(t *testing.T) {
	start := time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 12, 23, 59, 59, 0, time.UTC)
	got := searchExpr("octo/hello", "pr", start, end)
	want := "repo:octo/hello is:pr updated:2024-01-06..2024-01-12"
	if got != want {
		t.Errorf("searchExpr = %q, want %q", got, want)
	}
}

func TestSplitRepo(t *testing.T) {
	tests := []struct {
		repo    string
		owner   string
		name    string
		wantErr bool
	}{
		{"octo/hello", "octo", "hello", false},
		{"octo/hello-world", "octo", "hello-world", false},
		{"nodelimiter", "", "", true},
		{"/leading", "", "", true},
		{"trailing/", "", "", true},
		{"", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.repo, func(t *testing.T) {
			owner, name, err := splitRepo(tt.repo)
			if tt.wantErr {
				if err == nil {
					t.Errorf("splitRepo(%q) expected error", tt.repo)
				}
				return
			}
			if err != nil {
				t.Fatalf("splitRepo(%q) unexpected error: %v", tt.repo, err)
			}
			if owner != tt.owner || name != tt.name {
				t.Errorf("splitRepo(%q) = %q, %q, want %q, %q", tt.repo, owner, name, tt.owner, tt.name)
			}
		})
	}
}

func TestItemWindowChecks(t *testing.T) {
	w := window.Window{
		Start: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 1, 12, 23, 59, 59, 0, time.UTC),
	}
	inside := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	outside := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	t.Run("merged in window", func(t *testing.T) {
		it := Item{Kind: KindPullRequest, MergedAt: &inside, CreatedAt: outside}
		if !it.MergedIn(w) || !it.RelevantIn(w) {
			t.Error("expected merged-in-window item to be relevant")
		}
	})

	t.Run("nil merged timestamp", func(t *testing.T) {
		it := Item{Kind: KindPullRequest, CreatedAt: outside, UpdatedAt: inside}
		if it.MergedIn(w) || it.ClosedIn(w) || it.RelevantIn(w) {
			t.Error("updated-only item must not be relevant")
		}
	})

	t.Run("created in window", func(t *testing.T) {
		it := Item{Kind: KindIssue, CreatedAt: inside}
		if !it.CreatedIn(w) || !it.RelevantIn(w) {
			t.Error("expected created-in-window item to be relevant")
		}
	})

	t.Run("closed outside window", func(t *testing.T) {
		it := Item{Kind: KindIssue, CreatedAt: outside, ClosedAt: &outside}
		if it.ClosedIn(w) || it.RelevantIn(w) {
			t.Error("closed-outside item must not be relevant")
		}
	})
}
