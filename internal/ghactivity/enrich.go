package ghactivity

import (
	"context"
	"log/slog"
	"path"
	"strings"

	"github.com/google/go-github/v68/github"
	"golang.org/x/sync/errgroup"

	"github.com/drpaneas/weekdigest/internal/textutil"
	"github.com/drpaneas/weekdigest/internal/window"
)

const (
	maxDiffFiles      = 10
	maxPatchLen       = 3000
	enrichConcurrency = 5
)

// EnrichDiffs returns a copy of items where each relevant PR carries up to
// maxDiffFiles changed-file excerpts. Per-PR fetch failures degrade that
// item's diff context to absent, never the whole run.
func (f *Fetcher) EnrichDiffs(ctx context.Context, repo string, items []Item, w window.Window) []Item {
	owner, name, err := splitRepo(repo)
	if err != nil {
		slog.Warn("skipping diff enrichment", "error", err)
		return items
	}

	enriched := make([]Item, len(items))
	copy(enriched, items)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(enrichConcurrency)
	for i := range enriched {
		if enriched[i].Kind != KindPullRequest || !enriched[i].RelevantIn(w) {
			continue
		}
		i := i
		g.Go(func() error {
			diffs, err := f.fetchDiffFiles(gCtx, owner, name, enriched[i].Number)
			if err != nil {
				slog.Warn("could not fetch diff context",
					"repo", repo, "pr", enriched[i].Number, "error", err)
				return nil
			}
			// Each goroutine owns exactly one slot.
			enriched[i].Diffs = diffs
			return nil
		})
	}
	_ = g.Wait()
	return enriched
}

func (f *Fetcher) fetchDiffFiles(ctx context.Context, owner, name string, number int) ([]DiffFile, error) {
	files, _, err := f.rest.PullRequests.ListFiles(ctx, owner, name, number, &github.ListOptions{
		PerPage: maxDiffFiles,
	})
	if err != nil {
		return nil, err
	}

	var diffs []DiffFile
	for _, file := range files {
		if len(diffs) >= maxDiffFiles {
			break
		}
		filename := file.GetFilename()
		if filename == "" || file.GetPatch() == "" || isGeneratedFile(filename) {
			continue
		}
		diffs = append(diffs, DiffFile{
			Filename: filename,
			Patch:    textutil.Truncate(file.GetPatch(), maxPatchLen, "\n... (truncated)"),
		})
	}
	return diffs, nil
}

var generatedFileNames = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":         true,
	"pnpm-lock.yaml":    true,
	"go.sum":            true,
	"cargo.lock":        true,
	"composer.lock":     true,
	"gemfile.lock":      true,
	"poetry.lock":       true,
}

var generatedDirPrefixes = []string{"vendor/", "node_modules/", "dist/", "build/"}

// isGeneratedFile reports whether a changed file is lock/generated output
// that adds noise rather than context to a summary prompt.
func isGeneratedFile(p string) bool {
	lower := strings.ToLower(p)
	if generatedFileNames[path.Base(lower)] {
		return true
	}
	for _, prefix := range generatedDirPrefixes {
		if strings.HasPrefix(lower, prefix) || strings.Contains(lower, "/"+prefix) {
			return true
		}
	}
	return strings.HasSuffix(lower, ".min.js") ||
		strings.HasSuffix(lower, ".min.css") ||
		strings.HasSuffix(lower, ".pb.go") ||
		strings.HasSuffix(lower, ".snap")
}
