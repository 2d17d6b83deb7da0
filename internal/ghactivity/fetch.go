// Package ghactivity fetches and aggregates a repository's Pull Request and
// Issue activity for a report window.
package ghactivity

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/go-github/v68/github"
	"github.com/shurcooL/githubv4"
	"golang.org/x/sync/errgroup"

	"github.com/drpaneas/weekdigest/internal/window"
)

// Search retrieves up to 100 items per kind with the first 20 comment and
// review authors each; both limits live in the graphql tags below.
const searchDateLayout = "2006-01-02"

// Fetcher runs the GraphQL searches and REST diff fetches for one run.
type Fetcher struct {
	rest *github.Client
	gql  *githubv4.Client
}

// NewFetcher returns a Fetcher authenticated with the given token.
func NewFetcher(token string) *Fetcher {
	rest, gql := newClients(token)
	return &Fetcher{rest: rest, gql: gql}
}

type actorNode struct {
	Login githubv4.String
	URL   githubv4.URI
}

type commentEdge struct {
	Author *actorNode
}

type searchNode struct {
	Typename    githubv4.String `graphql:"__typename"`
	PullRequest struct {
		Number    githubv4.Int
		Title     githubv4.String
		Body      githubv4.String
		URL       githubv4.URI
		State     githubv4.String
		CreatedAt githubv4.DateTime
		UpdatedAt githubv4.DateTime
		ClosedAt  *githubv4.DateTime
		MergedAt  *githubv4.DateTime
		Author    *actorNode
		Comments  struct {
			Nodes []commentEdge
		} `graphql:"comments(first: 20)"`
		Reviews struct {
			Nodes []commentEdge
		} `graphql:"reviews(first: 20)"`
	} `graphql:"... on PullRequest"`
	Issue struct {
		Number    githubv4.Int
		Title     githubv4.String
		Body      githubv4.String
		URL       githubv4.URI
		State     githubv4.String
		CreatedAt githubv4.DateTime
		UpdatedAt githubv4.DateTime
		ClosedAt  *githubv4.DateTime
		Author    *actorNode
		Comments  struct {
			Nodes []commentEdge
		} `graphql:"comments(first: 20)"`
	} `graphql:"... on Issue"`
}

// Fetch runs the PR and Issue searches concurrently. A failed search leaves
// that kind empty and records the error on the Result; it never aborts the
// run.
func (f *Fetcher) Fetch(ctx context.Context, repo string, w window.Window) Result {
	var res Result

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		items, err := f.search(gCtx, searchExpr(repo, "pr", w.Start, w.End))
		if err != nil {
			slog.Warn("pull request search failed", "repo", repo, "error", err)
			res.PRErr = err
			return nil
		}
		res.PullRequests = items
		return nil
	})
	g.Go(func() error {
		items, err := f.search(gCtx, searchExpr(repo, "issue", w.Start, w.End))
		if err != nil {
			slog.Warn("issue search failed", "repo", repo, "error", err)
			res.IssueErr = err
			return nil
		}
		res.Issues = items
		return nil
	})
	// Each goroutine writes only its own slots and swallows its error.
	_ = g.Wait()

	slog.Info("activity fetched",
		"repo", repo,
		"pull_requests", len(res.PullRequests),
		"issues", len(res.Issues),
	)
	return res
}

// searchExpr scopes the host's issue search to items updated in the window.
func searchExpr(repo, kind string, start, end time.Time) string {
	return fmt.Sprintf("repo:%s is:%s updated:%s..%s",
		repo, kind,
		start.UTC().Format(searchDateLayout),
		end.UTC().Format(searchDateLayout),
	)
}

func (f *Fetcher) search(ctx context.Context, expr string) ([]Item, error) {
	var q struct {
		Search struct {
			Nodes []searchNode
		} `graphql:"search(query: $q, type: ISSUE, first: 100)"`
	}
	vars := map[string]interface{}{
		"q": githubv4.String(expr),
	}
	if err := f.gql.Query(ctx, &q, vars); err != nil {
		return nil, fmt.Errorf("search %q: %w", expr, err)
	}

	var items []Item
	for _, n := range q.Search.Nodes {
		switch Kind(n.Typename) {
		case KindPullRequest:
			items = append(items, itemFromPR(n))
		case KindIssue:
			items = append(items, itemFromIssue(n))
		}
	}
	return items, nil
}

func itemFromPR(n searchNode) Item {
	pr := n.PullRequest
	it := Item{
		Number:    int(pr.Number),
		Kind:      KindPullRequest,
		Title:     string(pr.Title),
		Body:      string(pr.Body),
		URL:       pr.URL.String(),
		State:     string(pr.State),
		CreatedAt: pr.CreatedAt.Time,
		UpdatedAt: pr.UpdatedAt.Time,
		Author:    actorFrom(pr.Author),
	}
	if pr.ClosedAt != nil {
		t := pr.ClosedAt.Time
		it.ClosedAt = &t
	}
	if pr.MergedAt != nil {
		t := pr.MergedAt.Time
		it.MergedAt = &t
	}
	it.Participants = participantsFrom(pr.Comments.Nodes, pr.Reviews.Nodes)
	return it
}

func itemFromIssue(n searchNode) Item {
	is := n.Issue
	it := Item{
		Number:    int(is.Number),
		Kind:      KindIssue,
		Title:     string(is.Title),
		Body:      string(is.Body),
		URL:       is.URL.String(),
		State:     string(is.State),
		CreatedAt: is.CreatedAt.Time,
		UpdatedAt: is.UpdatedAt.Time,
		Author:    actorFrom(is.Author),
	}
	if is.ClosedAt != nil {
		t := is.ClosedAt.Time
		it.ClosedAt = &t
	}
	it.Participants = participantsFrom(is.Comments.Nodes, nil)
	return it
}

func actorFrom(n *actorNode) *Actor {
	if n == nil || n.Login == "" {
		return nil
	}
	return &Actor{Login: string(n.Login), URL: n.URL.String()}
}

func participantsFrom(groups ...[]commentEdge) []Actor {
	var actors []Actor
	for _, nodes := range groups {
		for _, edge := range nodes {
			if a := actorFrom(edge.Author); a != nil {
				actors = append(actors, *a)
			}
		}
	}
	return actors
}
