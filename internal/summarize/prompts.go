package summarize

import (
	"fmt"
	"strings"

	"github.com/drpaneas/weekdigest/internal/ghactivity"
	"github.com/drpaneas/weekdigest/internal/textutil"
)

const (
	maxBodyLen  = 1500
	maxPatchLen = 1200
)

const systemPrompt = `You are the editor of a weekly engineering digest for an open-source
repository. You write short, factual prose for a developer audience.
Never invent work that is not in the data.`

const batchPromptHeader = `Summarize each of the following repository items in one or two plain
sentences describing what changed and why it matters. Respond with ONLY a
JSON object of the form {"summaries": [{"index": 0, "summary": "..."}, ...]}
using each item's index exactly as given.

ITEMS:
`

const overviewPromptFormat = `Write one or two sentences of upbeat prose highlighting the most
significant work merged this week, based on these pull requests. Mention
concrete features, not counts. Respond with the sentences only, no preamble.

MERGED PULL REQUESTS:
%s`

func buildBatchPrompt(items []ghactivity.Item) string {
	var b strings.Builder
	b.WriteString(batchPromptHeader)
	for i, it := range items {
		fmt.Fprintf(&b, "\n--- index: %d ---\n%s #%d: %s\nState: %s\n",
			i, it.Kind, it.Number, it.Title, it.State)
		if body := strings.TrimSpace(it.Body); body != "" {
			fmt.Fprintf(&b, "Description: %s\n", textutil.Truncate(body, maxBodyLen, "..."))
		}
		for _, diff := range it.Diffs {
			fmt.Fprintf(&b, "Changed file %s:\n%s\n",
				diff.Filename, textutil.Truncate(diff.Patch, maxPatchLen, "\n... (truncated)"))
		}
	}
	return b.String()
}

func buildOverviewPrompt(merged []ghactivity.Item) string {
	var b strings.Builder
	for _, it := range merged {
		fmt.Fprintf(&b, "- #%d: %s\n", it.Number, it.Title)
		if it.Summary != "" && it.Summary != noSummaryPlaceholder {
			fmt.Fprintf(&b, "  %s\n", it.Summary)
		}
	}
	return fmt.Sprintf(overviewPromptFormat, b.String())
}
