package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/drpaneas/weekdigest/internal/rank"
	"github.com/drpaneas/weekdigest/internal/window"
)

// Policy parameterizes the pipeline: window strategy, ranking weights,
// enrichment, and the pinned contributor roster. Defaults are in code; a
// YAML file overrides individual fields.
type Policy struct {
	Window      string     `yaml:"window,omitempty"`
	TitlePrefix string     `yaml:"title_prefix,omitempty"`
	Rank        RankPolicy `yaml:"rank,omitempty"`
	// EnrichDiffs toggles the per-PR changed-file fetch used as summary
	// context. Nil means "on when AI is on".
	EnrichDiffs *bool    `yaml:"enrich_diffs,omitempty"`
	CoreTeam    []string `yaml:"core_team,omitempty"`
}

// RankPolicy overrides individual lifecycle weights. Lower sorts first.
// The closed-last default is deliberate: live work outranks dead PRs.
type RankPolicy struct {
	Merged         *int  `yaml:"merged,omitempty"`
	Created        *int  `yaml:"created,omitempty"`
	Updated        *int  `yaml:"updated,omitempty"`
	Closed         *int  `yaml:"closed,omitempty"`
	UseTitlePrefix *bool `yaml:"use_title_prefix,omitempty"`
}

// DefaultPolicy returns the built-in pipeline policy.
func DefaultPolicy() Policy {
	return Policy{
		Window:      string(window.StrategyCalendar),
		TitlePrefix: "Week in AWL",
	}
}

// LoadPolicy returns the default policy with overrides applied from the
// YAML file at path. An empty path returns the defaults unchanged.
func LoadPolicy(path string) (Policy, error) {
	p := DefaultPolicy()
	if path == "" {
		return p, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("reading policy file: %w", err)
	}
	var overrides Policy
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return Policy{}, fmt.Errorf("parsing policy file %s: %w", path, err)
	}
	if overrides.Window != "" {
		p.Window = overrides.Window
	}
	if overrides.TitlePrefix != "" {
		p.TitlePrefix = overrides.TitlePrefix
	}
	p.Rank = overrides.Rank
	if overrides.EnrichDiffs != nil {
		p.EnrichDiffs = overrides.EnrichDiffs
	}
	if len(overrides.CoreTeam) > 0 {
		p.CoreTeam = overrides.CoreTeam
	}
	switch window.Strategy(p.Window) {
	case window.StrategyCalendar, window.StrategyRolling:
	default:
		return Policy{}, fmt.Errorf("policy file %s: unknown window strategy %q", path, p.Window)
	}
	return p, nil
}

// Weights materializes the rank weights, applying any overrides.
func (p Policy) Weights() rank.Weights {
	w := rank.DefaultWeights()
	if p.Rank.Merged != nil {
		w.Merged = *p.Rank.Merged
	}
	if p.Rank.Created != nil {
		w.Created = *p.Rank.Created
	}
	if p.Rank.Updated != nil {
		w.Updated = *p.Rank.Updated
	}
	if p.Rank.Closed != nil {
		w.Closed = *p.Rank.Closed
	}
	if p.Rank.UseTitlePrefix != nil {
		w.UseTitlePrefix = *p.Rank.UseTitlePrefix
	}
	return w
}

// Enrich reports whether diff enrichment is active given AI availability.
func (p Policy) Enrich(aiEnabled bool) bool {
	if p.EnrichDiffs != nil {
		return *p.EnrichDiffs
	}
	return aiEnabled
}
