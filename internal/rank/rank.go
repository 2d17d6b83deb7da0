// Package rank classifies activity items by lifecycle phase relative to the
// report window and produces the presentation order.
package rank

import (
	"sort"
	"strings"

	"github.com/drpaneas/weekdigest/internal/ghactivity"
	"github.com/drpaneas/weekdigest/internal/window"
)

// Lifecycle is the coarse phase of an item relative to the window.
type Lifecycle string

const (
	LifecycleMerged  Lifecycle = "merged"
	LifecycleCreated Lifecycle = "created"
	LifecycleUpdated Lifecycle = "updated"
	LifecycleClosed  Lifecycle = "closed"
)

// Weights maps lifecycle phases to sort priorities; lower sorts first.
// UseTitlePrefix enables the secondary feature/feat/fix/chore ordering as
// the primary key.
type Weights struct {
	Merged  int
	Created int
	Updated int
	Closed  int

	UseTitlePrefix bool
}

// DefaultWeights ranks merged work first and closed-without-merge last.
// Closed-last is deliberate: live and net-new work outranks dead items.
func DefaultWeights() Weights {
	return Weights{Merged: 1, Created: 2, Updated: 3, Closed: 4}
}

// Classify assigns the item's lifecycle phase. It is a pure function of the
// window bounds and the item's timestamps: merged beats created beats
// closed; anything else only had "updated" activity (the search itself
// already scoped on the update timestamp) and lands in the lowest bucket.
func Classify(it ghactivity.Item, w window.Window) Lifecycle {
	switch {
	case it.MergedIn(w):
		return LifecycleMerged
	case it.CreatedIn(w):
		return LifecycleCreated
	case it.ClosedIn(w):
		return LifecycleClosed
	default:
		return LifecycleUpdated
	}
}

func (w Weights) lifecycle(lc Lifecycle) int {
	switch lc {
	case LifecycleMerged:
		return w.Merged
	case LifecycleCreated:
		return w.Created
	case LifecycleClosed:
		return w.Closed
	default:
		return w.Updated
	}
}

// titlePrefixOrder lists the recognized conventional prefixes, best first.
var titlePrefixOrder = []string{"feature", "feat", "fix", "chore"}

// TitlePrefixRank maps a title's conventional prefix to 1..len(order)+1;
// unrecognized titles rank last. Matching is case-insensitive on the raw
// prefix ("Feature: x" and "feat(scope): x" both match).
func TitlePrefixRank(title string) int {
	lower := strings.ToLower(strings.TrimSpace(title))
	for i, prefix := range titlePrefixOrder {
		if strings.HasPrefix(lower, prefix) {
			return i + 1
		}
	}
	return len(titlePrefixOrder) + 1
}

// Sort orders items in place: primary key is the title-prefix rank when
// enabled, else the lifecycle weight; ties break on lifecycle weight, then
// ascending item number.
func Sort(items []ghactivity.Item, w window.Window, weights Weights) {
	sort.SliceStable(items, func(i, j int) bool {
		pi, pj := sortKey(items[i], w, weights), sortKey(items[j], w, weights)
		if pi.primary != pj.primary {
			return pi.primary < pj.primary
		}
		if pi.lifecycle != pj.lifecycle {
			return pi.lifecycle < pj.lifecycle
		}
		return items[i].Number < items[j].Number
	})
}

type key struct {
	primary   int
	lifecycle int
}

func sortKey(it ghactivity.Item, w window.Window, weights Weights) key {
	lc := weights.lifecycle(Classify(it, w))
	if weights.UseTitlePrefix {
		return key{primary: TitlePrefixRank(it.Title), lifecycle: lc}
	}
	return key{primary: lc, lifecycle: lc}
}
