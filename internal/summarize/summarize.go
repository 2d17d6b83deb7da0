// Package summarize produces the digest's prose: per-item narrative
// summaries and the global overview, each with an AI path and a
// deterministic fallback. AI unavailability is never fatal; it only
// reduces prose quality.
package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/drpaneas/weekdigest/internal/ghactivity"
	"github.com/drpaneas/weekdigest/internal/llm"
	"github.com/drpaneas/weekdigest/internal/textutil"
	"github.com/drpaneas/weekdigest/internal/window"
)

const noSummaryPlaceholder = "No summary available."

// fillerOverview is emitted when no merged PR qualifies as a highlight.
const fillerOverview = "A quieter week on the development front, with the team focused on ongoing work."

// highlightKeywords qualifies a merged PR title for the fallback overview.
var highlightKeywords = []string{"feat", "add", "support", "stable", "release", "update", "fix"}

const maxHighlights = 3

// Summarizer generates report prose. A nil provider disables the AI paths;
// every method still returns usable text.
type Summarizer struct {
	provider llm.Provider
}

// New returns a Summarizer backed by provider, which may be nil.
func New(provider llm.Provider) *Summarizer {
	return &Summarizer{provider: provider}
}

// SummarizeItems returns copies of prs and issues where every item relevant
// in the window carries a narrative summary. One batched request covers all
// relevant items; any failure (network, malformed JSON) is logged and
// leaves every summary unset so rendering falls back to body excerpts.
// Exactly one attempt, no retry.
func (s *Summarizer) SummarizeItems(ctx context.Context, prs, issues []ghactivity.Item, w window.Window) ([]ghactivity.Item, []ghactivity.Item) {
	outPRs := append([]ghactivity.Item(nil), prs...)
	outIssues := append([]ghactivity.Item(nil), issues...)
	if s.provider == nil {
		return outPRs, outIssues
	}

	// Collect pointers to the relevant slots so returned indices map back
	// by position across both lists.
	var relevant []*ghactivity.Item
	for i := range outPRs {
		if outPRs[i].RelevantIn(w) {
			relevant = append(relevant, &outPRs[i])
		}
	}
	for i := range outIssues {
		if outIssues[i].RelevantIn(w) {
			relevant = append(relevant, &outIssues[i])
		}
	}
	if len(relevant) == 0 {
		return outPRs, outIssues
	}

	batch := make([]ghactivity.Item, len(relevant))
	for i, it := range relevant {
		batch[i] = *it
	}
	raw, err := s.provider.Complete(ctx, systemPrompt, buildBatchPrompt(batch), nil)
	if err != nil {
		slog.Warn("item summarization failed, falling back to body excerpts", "error", err)
		return outPRs, outIssues
	}
	summaries, err := ParseBatch(raw)
	if err != nil {
		slog.Warn("item summarization returned no usable payload", "error", err)
		return outPRs, outIssues
	}

	byIndex := make(map[int]string, len(summaries))
	for _, sm := range summaries {
		if text := strings.TrimSpace(sm.Summary); text != "" {
			byIndex[sm.Index] = text
		}
	}
	for i, it := range relevant {
		if text, ok := byIndex[i]; ok {
			it.Summary = text
		} else {
			it.Summary = noSummaryPlaceholder
		}
	}
	slog.Info("item summaries generated", "requested", len(relevant), "returned", len(byIndex))
	return outPRs, outIssues
}

// Overview produces the 1-2 sentence report opener from the PRs merged in
// the window. The AI path runs after per-item summarization so it can build
// on those summaries; any failure degrades to the heuristic sentence. With
// no provider configured it never makes a network call.
func (s *Summarizer) Overview(ctx context.Context, merged []ghactivity.Item) string {
	if s.provider != nil && len(merged) > 0 {
		text, err := s.provider.Complete(ctx, systemPrompt, buildOverviewPrompt(merged), nil)
		if err == nil {
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
		} else {
			slog.Warn("overview generation failed, using heuristic summary", "error", err)
		}
	}
	return FallbackOverview(merged)
}

// FallbackOverview hand-assembles the opener from merged PR titles whose
// text suggests user-visible work. Always returns a non-empty sentence.
func FallbackOverview(merged []ghactivity.Item) string {
	var highlights []string
	for _, it := range merged {
		if len(highlights) >= maxHighlights {
			break
		}
		lower := strings.ToLower(it.Title)
		for _, kw := range highlightKeywords {
			if strings.Contains(lower, kw) {
				highlights = append(highlights, textutil.StripCommitPrefix(it.Title))
				break
			}
		}
	}
	switch len(highlights) {
	case 0:
		return fillerOverview
	case 1:
		return fmt.Sprintf("We are excited to highlight the completion of %s.", highlights[0])
	default:
		last := highlights[len(highlights)-1]
		rest := strings.Join(highlights[:len(highlights)-1], ", ")
		return fmt.Sprintf("Highlights include %s and %s.", rest, last)
	}
}
