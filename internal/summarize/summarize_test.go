package summarize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/drpaneas/weekdigest/internal/ghactivity"
	"github.com/drpaneas/weekdigest/internal/llm"
	"github.com/drpaneas/weekdigest/internal/window"
)

var testWindow = window.Window{
	Start: time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC),
	End:   time.Date(2024, 1, 12, 23, 59, 59, 0, time.UTC),
}

// fakeProvider returns a canned response or error and records invocations.
type fakeProvider struct {
	response string
	err      error
	calls    int
	prompts  []string
}

func (f *fakeProvider) Complete(_ context.Context, _, prompt string, _ *llm.CompleteOptions) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func mergedPR(number int, title string, day int) ghactivity.Item {
	merged := time.Date(2024, 1, day, 12, 0, 0, 0, time.UTC)
	return ghactivity.Item{
		Number:    number,
		Kind:      ghactivity.KindPullRequest,
		Title:     title,
		CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		MergedAt:  &merged,
	}
}

func TestFallbackOverview(t *testing.T) {
	t.Run("single highlight strips commit prefix", func(t *testing.T) {
		// A merged "Feature: add caching" PR with no AI key must yield the
		// heuristic sentence mentioning the stripped title.
		got := FallbackOverview([]ghactivity.Item{mergedPR(1, "Feature: add caching", 10)})
		want := "We are excited to highlight the completion of add caching."
		if got != want {
			t.Errorf("FallbackOverview = %q, want %q", got, want)
		}
	})

	t.Run("multiple highlights joined", func(t *testing.T) {
		got := FallbackOverview([]ghactivity.Item{
			mergedPR(1, "feat: dark mode", 8),
			mergedPR(2, "fix: login crash", 9),
		})
		want := "Highlights include dark mode and login crash."
		if got != want {
			t.Errorf("FallbackOverview = %q, want %q", got, want)
		}
	})

	t.Run("caps at three highlights", func(t *testing.T) {
		got := FallbackOverview([]ghactivity.Item{
			mergedPR(1, "feat: a", 8),
			mergedPR(2, "feat: b", 8),
			mergedPR(3, "feat: c", 8),
			mergedPR(4, "feat: d", 8),
		})
		if got != "Highlights include a, b and c." {
			t.Errorf("FallbackOverview = %q, want three highlights at most", got)
		}
	})

	t.Run("no qualifying titles yields filler", func(t *testing.T) {
		got := FallbackOverview([]ghactivity.Item{mergedPR(1, "Refactor internals", 8)})
		if got != fillerOverview {
			t.Errorf("FallbackOverview = %q, want filler", got)
		}
	})

	t.Run("empty input yields filler", func(t *testing.T) {
		if got := FallbackOverview(nil); got == "" {
			t.Error("FallbackOverview must never be empty")
		}
	})
}

func TestOverviewWithoutProviderNeverCallsService(t *testing.T) {
	s := New(nil)
	got := s.Overview(context.Background(), []ghactivity.Item{mergedPR(1, "feat: thing", 10)})
	if got == "" {
		t.Error("Overview must return non-empty text without a provider")
	}
}

func TestOverviewFallsBackWhenProviderFails(t *testing.T) {
	p := &fakeProvider{err: errors.New("service unavailable")}
	s := New(p)
	got := s.Overview(context.Background(), []ghactivity.Item{mergedPR(1, "Feature: add caching", 10)})
	if p.calls != 1 {
		t.Errorf("provider called %d times, want 1 (no retry)", p.calls)
	}
	if !strings.Contains(got, "caching") {
		t.Errorf("expected heuristic fallback mentioning caching, got %q", got)
	}
}

func TestOverviewUsesProviderText(t *testing.T) {
	p := &fakeProvider{response: "  The team shipped dark mode.  "}
	s := New(p)
	got := s.Overview(context.Background(), []ghactivity.Item{mergedPR(1, "feat: dark mode", 10)})
	if got != "The team shipped dark mode." {
		t.Errorf("Overview = %q", got)
	}
}

func TestSummarizeItems(t *testing.T) {
	prs := []ghactivity.Item{
		mergedPR(1, "feat: dark mode", 10),
		{Number: 2, Kind: ghactivity.KindPullRequest, Title: "old one", CreatedAt: time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), UpdatedAt: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)},
	}
	issues := []ghactivity.Item{
		{Number: 3, Kind: ghactivity.KindIssue, Title: "bug", CreatedAt: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)},
	}

	t.Run("maps indices back by position", func(t *testing.T) {
		p := &fakeProvider{response: `{"summaries":[{"index":0,"summary":"Dark mode arrives."},{"index":1,"summary":"Bug filed."}]}`}
		s := New(p)
		outPRs, outIssues := s.SummarizeItems(context.Background(), prs, issues, testWindow)
		if outPRs[0].Summary != "Dark mode arrives." {
			t.Errorf("PR summary = %q", outPRs[0].Summary)
		}
		if outPRs[1].Summary != "" {
			t.Errorf("irrelevant PR must stay unsummarized, got %q", outPRs[1].Summary)
		}
		if outIssues[0].Summary != "Bug filed." {
			t.Errorf("issue summary = %q", outIssues[0].Summary)
		}
		if p.calls != 1 {
			t.Errorf("provider called %d times, want one batched call", p.calls)
		}
	})

	t.Run("missing index gets placeholder", func(t *testing.T) {
		p := &fakeProvider{response: `{"summaries":[{"index":0,"summary":"Only the first."}]}`}
		s := New(p)
		outPRs, outIssues := s.SummarizeItems(context.Background(), prs, issues, testWindow)
		if outPRs[0].Summary != "Only the first." {
			t.Errorf("PR summary = %q", outPRs[0].Summary)
		}
		if outIssues[0].Summary != noSummaryPlaceholder {
			t.Errorf("issue summary = %q, want placeholder", outIssues[0].Summary)
		}
	})

	t.Run("provider error leaves all summaries unset", func(t *testing.T) {
		p := &fakeProvider{err: errors.New("boom")}
		s := New(p)
		outPRs, outIssues := s.SummarizeItems(context.Background(), prs, issues, testWindow)
		for _, it := range append(outPRs, outIssues...) {
			if it.Summary != "" {
				t.Errorf("item #%d has summary %q after provider failure", it.Number, it.Summary)
			}
		}
		if p.calls != 1 {
			t.Errorf("provider called %d times, want 1 (no retry)", p.calls)
		}
	})

	t.Run("malformed payload leaves all summaries unset", func(t *testing.T) {
		p := &fakeProvider{response: "sorry, I cannot do that"}
		s := New(p)
		outPRs, _ := s.SummarizeItems(context.Background(), prs, issues, testWindow)
		if outPRs[0].Summary != "" {
			t.Errorf("summary = %q, want unset", outPRs[0].Summary)
		}
	})

	t.Run("nil provider makes no calls and copies input", func(t *testing.T) {
		s := New(nil)
		outPRs, _ := s.SummarizeItems(context.Background(), prs, issues, testWindow)
		if len(outPRs) != len(prs) {
			t.Fatalf("got %d PRs, want %d", len(outPRs), len(prs))
		}
		outPRs[0].Summary = "mutated"
		if prs[0].Summary != "" {
			t.Error("SummarizeItems must not alias the input slice")
		}
	})

	t.Run("prompt carries diff context", func(t *testing.T) {
		enriched := []ghactivity.Item{mergedPR(1, "feat: dark mode", 10)}
		enriched[0].Diffs = []ghactivity.DiffFile{{Filename: "theme.go", Patch: "+func Dark()"}}
		p := &fakeProvider{response: `{"summaries":[]}`}
		s := New(p)
		s.SummarizeItems(context.Background(), enriched, nil, testWindow)
		if len(p.prompts) != 1 || !strings.Contains(p.prompts[0], "theme.go") {
			t.Error("expected the batched prompt to include the changed file name")
		}
	})
}
