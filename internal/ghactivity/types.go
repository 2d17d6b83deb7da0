package ghactivity

import (
	"time"

	"github.com/drpaneas/weekdigest/internal/window"
)

// Kind distinguishes the two item flavors a search returns.
type Kind string

const (
	KindPullRequest Kind = "PullRequest"
	KindIssue       Kind = "Issue"
)

// Actor is a contributor identity: login plus profile URL.
type Actor struct {
	Login string
	URL   string
}

// DiffFile is one changed file's unified-diff excerpt attached to a PR
// during enrichment.
type DiffFile struct {
	Filename string
	Patch    string
}

// Item is a Pull Request or Issue that had activity inside the window.
// Summary and Diffs start empty and are attached by later pipeline stages
// on copies, never by mutating a slice another stage still reads.
type Item struct {
	Number    int
	Kind      Kind
	Title     string
	Body      string
	URL       string
	State     string
	CreatedAt time.Time
	UpdatedAt time.Time
	ClosedAt  *time.Time
	MergedAt  *time.Time
	Author    *Actor
	// Participants are comment authors and, for PRs, review authors.
	Participants []Actor
	Summary      string
	Diffs        []DiffFile
}

// Result carries both fetched lists. A failed search leaves its list empty
// and records the error, so downstream can tell "fetch failed" apart from
// "no activity".
type Result struct {
	PullRequests []Item
	Issues       []Item
	PRErr        error
	IssueErr     error
}

// MergedIn reports whether the item was merged inside w.
func (it Item) MergedIn(w window.Window) bool {
	return it.MergedAt != nil && w.Contains(*it.MergedAt)
}

// CreatedIn reports whether the item was created inside w.
func (it Item) CreatedIn(w window.Window) bool {
	return w.Contains(it.CreatedAt)
}

// ClosedIn reports whether the item was closed inside w.
func (it Item) ClosedIn(w window.Window) bool {
	return it.ClosedAt != nil && w.Contains(*it.ClosedAt)
}

// RelevantIn reports whether the item had terminal or net-new activity in
// the window; these are the items worth a narrative summary.
func (it Item) RelevantIn(w window.Window) bool {
	return it.MergedIn(w) || it.ClosedIn(w) || it.CreatedIn(w)
}
