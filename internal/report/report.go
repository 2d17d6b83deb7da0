// Package report renders the final digest document. Render is a pure
// function: the same classified and summarized input always produces
// byte-identical output.
package report

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/drpaneas/weekdigest/internal/ghactivity"
	"github.com/drpaneas/weekdigest/internal/rank"
	"github.com/drpaneas/weekdigest/internal/textutil"
	"github.com/drpaneas/weekdigest/internal/window"
)

const (
	maxBodyExcerpt = 300
	entryDateFmt   = "2 January 2006"
)

// Input is everything the renderer needs, assembled by the pipeline.
type Input struct {
	Window       window.Window
	Overview     string
	PullRequests []ghactivity.Item
	Issues       []ghactivity.Item
	// PRsUnavailable / IssuesUnavailable flag a failed fetch, rendered
	// distinctly from "no activity".
	PRsUnavailable    bool
	IssuesUnavailable bool
	Contributors      []ghactivity.Contributor
}

type entry struct {
	Icon   string
	Status string
	Date   string
	Number int
	Title  string
	Author *ghactivity.Actor
	Text   string
	URL    string
}

type section struct {
	Heading     string
	Entries     []entry
	Placeholder string
}

type document struct {
	Title        string
	Overview     string
	Sections     []section
	Contributors []ghactivity.Contributor
}

var docTemplate = template.Must(template.New("digest").Parse(`# {{.Title}}

{{.Overview}}
{{range .Sections}}
## {{.Heading}}
{{if .Entries}}{{range .Entries}}
<details>
<summary>{{.Icon}} <b>#{{.Number}}</b> {{.Title}}</summary>

**{{.Status}}** on {{.Date}}{{if .Author}} by [{{.Author.Login}}]({{.Author.URL}}){{end}}

{{.Text}}

🔗 [View on GitHub]({{.URL}})
</details>
{{end}}{{else}}
{{.Placeholder}}
{{end}}{{end}}{{if .Contributors}}
## 🙌 Contributors

Thanks to {{range $i, $c := .Contributors}}{{if $i}}, {{end}}[{{$c.Login}}]({{$c.URL}}){{end}} for being part of this week's activity!
{{end}}
---

_This digest was generated automatically. Summaries may include AI-generated content; please verify details against the linked items._
`))

// Render builds the full Markdown/HTML document.
func Render(in Input) string {
	doc := document{
		Title:        in.Window.Title,
		Overview:     in.Overview,
		Contributors: in.Contributors,
	}
	doc.Sections = append(doc.Sections, section{
		Heading:     "🔀 Pull Requests",
		Entries:     entries(in.PullRequests, in.Window),
		Placeholder: placeholder("pull request", in.PRsUnavailable),
	})
	doc.Sections = append(doc.Sections, section{
		Heading:     "🐛 Issues",
		Entries:     entries(in.Issues, in.Window),
		Placeholder: placeholder("issue", in.IssuesUnavailable),
	})

	var buf bytes.Buffer
	// The template only fails on bad field access, which the tests pin.
	if err := docTemplate.Execute(&buf, doc); err != nil {
		return fmt.Sprintf("# %s\n\nreport rendering failed: %v\n", in.Window.Title, err)
	}
	return buf.String()
}

func placeholder(kind string, unavailable bool) string {
	if unavailable {
		return fmt.Sprintf("⚠️ %s activity could not be retrieved this week.", strings.ToUpper(kind[:1])+kind[1:])
	}
	return fmt.Sprintf("No %s activity this week.", kind)
}

func entries(items []ghactivity.Item, w window.Window) []entry {
	out := make([]entry, 0, len(items))
	for _, it := range items {
		icon, status, date := statusOf(it, w)
		out = append(out, entry{
			Icon:   icon,
			Status: status,
			Date:   date.Format(entryDateFmt),
			Number: it.Number,
			Title:  it.Title,
			Author: it.Author,
			Text:   entryText(it),
			URL:    it.URL,
		})
	}
	return out
}

// statusOf re-derives the same in-window checks the ranker uses so the icon
// always agrees with the sort bucket.
func statusOf(it ghactivity.Item, w window.Window) (icon, status string, date time.Time) {
	switch rank.Classify(it, w) {
	case rank.LifecycleMerged:
		return "🎉", "Merged", *it.MergedAt
	case rank.LifecycleCreated:
		return "🆕", "Opened", it.CreatedAt
	case rank.LifecycleClosed:
		if it.Kind == ghactivity.KindIssue {
			return "✅", "Closed", *it.ClosedAt
		}
		return "❌", "Closed", *it.ClosedAt
	default:
		return "🔄", "Updated", it.UpdatedAt
	}
}

func entryText(it ghactivity.Item) string {
	if it.Summary != "" {
		return it.Summary
	}
	if body := strings.TrimSpace(it.Body); body != "" {
		return textutil.Truncate(body, maxBodyExcerpt, "...")
	}
	return "_No description provided._"
}
