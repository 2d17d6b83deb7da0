// Package window computes the report's time interval and display title.
package window

import (
	"fmt"
	"time"
)

// Strategy selects how the trailing week is anchored to the current instant.
type Strategy string

const (
	// StrategyCalendar covers whole days: 7 days ago at midnight through
	// yesterday at end-of-day. This models "run Saturday, cover the last
	// Saturday through Friday".
	StrategyCalendar Strategy = "calendar"
	// StrategyRolling covers the raw trailing 168 hours ending now.
	StrategyRolling Strategy = "rolling"
)

const titleDateFormat = "2 January 2006"

// Window is the closed interval [Start, End] a report covers, plus the
// human-readable title derived from it.
type Window struct {
	Start time.Time
	End   time.Time
	Title string
}

// Compute derives the report window from the reference instant. The title
// embeds both bounds, e.g. "Week in AWL | 6 January 2024 - 12 January 2024".
func Compute(now time.Time, strategy Strategy, titlePrefix string) (Window, error) {
	var start, end time.Time
	switch strategy {
	case StrategyCalendar:
		y, m, d := now.AddDate(0, 0, -7).Date()
		start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
		y, m, d = now.AddDate(0, 0, -1).Date()
		end = time.Date(y, m, d, 23, 59, 59, 0, now.Location())
	case StrategyRolling:
		start = now.AddDate(0, 0, -7)
		end = now
	default:
		return Window{}, fmt.Errorf("unknown window strategy %q", strategy)
	}
	title := fmt.Sprintf("%s | %s - %s",
		titlePrefix, start.Format(titleDateFormat), end.Format(titleDateFormat))
	return Window{Start: start, End: end, Title: title}, nil
}

// Contains reports whether t falls inside the window. The zero time is
// never inside (absent timestamps stay out of every phase check).
func (w Window) Contains(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	return !t.Before(w.Start) && !t.After(w.End)
}
