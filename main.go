// Command weekdigest generates a weekly activity digest for a GitHub
// repository and publishes it as a discussion post.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"

	"github.com/drpaneas/weekdigest/internal/config"
	"github.com/drpaneas/weekdigest/internal/ghactivity"
	"github.com/drpaneas/weekdigest/internal/llm"
	"github.com/drpaneas/weekdigest/internal/publish"
	"github.com/drpaneas/weekdigest/internal/rank"
	"github.com/drpaneas/weekdigest/internal/report"
	"github.com/drpaneas/weekdigest/internal/summarize"
	"github.com/drpaneas/weekdigest/internal/window"
)

func main() {
	var cfg config.Config
	var provider string
	flag.StringVar(&provider, "provider", "none", "LLM provider for summaries: anthropic, openai, ollama, none")
	flag.StringVar(&cfg.Model, "model", "", "LLM model (default: per-provider)")
	flag.StringVar(&cfg.Repo, "repo", "", "Repository to scrape (owner/name, default: GITHUB_REPOSITORY)")
	flag.StringVar(&cfg.Date, "date", "", "Simulate this date (YYYY-MM-DD) instead of the wall clock")
	flag.StringVar(&cfg.PolicyPath, "policy", "", "Optional YAML policy file (window strategy, rank weights, core team)")
	flag.BoolVar(&cfg.DryRun, "dry-run", false, "Print the rendered digest instead of publishing it")
	flag.BoolVar(&cfg.Verbose, "verbose", false, "Enable verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: weekdigest [flags]\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg.Provider = llm.ProviderName(provider)
	cfg.LoadFromEnv()
	if cfg.Model == "" {
		cfg.Model = config.DefaultModel(cfg.Provider)
	}
	if cfg.TargetRepo == "" {
		cfg.TargetRepo = cfg.Repo
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Policy = policy

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, &cfg); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	w, err := window.Compute(cfg.ReferenceTime(), window.Strategy(cfg.Policy.Window), cfg.Policy.TitlePrefix)
	if err != nil {
		return err
	}
	slog.Info("starting weekdigest",
		"repo", cfg.Repo,
		"window_start", w.Start,
		"window_end", w.End,
		"provider", cfg.Provider,
		"dry_run", cfg.DryRun,
	)

	fetcher := ghactivity.NewFetcher(cfg.GitHubToken)
	res := fetcher.Fetch(ctx, cfg.Repo, w)

	prs, issues := ghactivity.Dedupe(res.PullRequests, res.Issues)
	contributors := ghactivity.OrderContributors(
		ghactivity.Contributors(prs, issues), cfg.Policy.CoreTeam)

	weights := cfg.Policy.Weights()
	rank.Sort(prs, w, weights)
	rank.Sort(issues, w, weights)

	var provider llm.Provider
	if cfg.AIEnabled() {
		provider, err = llm.NewProvider(llm.ProviderConfig{
			Name:       cfg.Provider,
			APIKey:     cfg.APIKey,
			Model:      cfg.Model,
			OllamaHost: cfg.OllamaHost,
		})
		if err != nil {
			return fmt.Errorf("creating LLM provider: %w", err)
		}
	}

	if provider != nil && cfg.Policy.Enrich(true) {
		slog.Info("enriching pull requests with diff context")
		prs = fetcher.EnrichDiffs(ctx, cfg.Repo, prs, w)
	}

	// Per-item summaries run before the overview so the overview can build
	// on them.
	s := summarize.New(provider)
	prs, issues = s.SummarizeItems(ctx, prs, issues, w)

	var merged []ghactivity.Item
	for _, it := range prs {
		if it.MergedIn(w) {
			merged = append(merged, it)
		}
	}
	overview := s.Overview(ctx, merged)

	body := report.Render(report.Input{
		Window:            w,
		Overview:          overview,
		PullRequests:      prs,
		Issues:            issues,
		PRsUnavailable:    res.PRErr != nil,
		IssuesUnavailable: res.IssueErr != nil,
		Contributors:      contributors,
	})

	if cfg.DryRun {
		fmt.Println(body)
		slog.Info("dry run complete, nothing published")
		return nil
	}

	url, err := publish.New(cfg.GitHubToken).Publish(ctx, cfg.TargetRepo, w.Title, body)
	if err != nil {
		return err
	}
	slog.Info("digest published", "url", url)
	return nil
}
