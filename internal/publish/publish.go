// Package publish posts the rendered digest as a GitHub Discussion.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shurcooL/githubv4"

	"github.com/drpaneas/weekdigest/internal/ghactivity"
)

// announcementCategory is the preferred discussion category, matched
// case-insensitively; the first category is used when it does not exist.
const announcementCategory = "announcements"

// Publisher creates the weekly discussion post.
type Publisher struct {
	gql *githubv4.Client
}

// New returns a Publisher authenticated with the given token.
func New(token string) *Publisher {
	return &Publisher{gql: githubv4.NewClient(ghactivity.NewHTTPClient(token))}
}

type category struct {
	ID   githubv4.ID
	Name string
}

// Publish resolves the target repository's discussion categories, creates
// the discussion, and returns its URL. A repository without discussion
// categories is a fatal configuration error.
func (p *Publisher) Publish(ctx context.Context, repo, title, body string) (string, error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok {
		return "", fmt.Errorf("invalid target repository %q: want owner/name", repo)
	}

	var q struct {
		Repository struct {
			ID                   githubv4.ID
			DiscussionCategories struct {
				Nodes []struct {
					ID   githubv4.ID
					Name githubv4.String
				}
			} `graphql:"discussionCategories(first: 10)"`
		} `graphql:"repository(owner: $owner, name: $name)"`
	}
	vars := map[string]interface{}{
		"owner": githubv4.String(owner),
		"name":  githubv4.String(name),
	}
	if err := p.gql.Query(ctx, &q, vars); err != nil {
		return "", fmt.Errorf("looking up repository %s: %w", repo, err)
	}

	cats := make([]category, 0, len(q.Repository.DiscussionCategories.Nodes))
	for _, n := range q.Repository.DiscussionCategories.Nodes {
		cats = append(cats, category{ID: n.ID, Name: string(n.Name)})
	}
	cat, err := pickCategory(cats)
	if err != nil {
		return "", fmt.Errorf("repository %s: %w", repo, err)
	}
	slog.Debug("discussion category resolved", "category", cat.Name)

	var m struct {
		CreateDiscussion struct {
			Discussion struct {
				URL githubv4.URI
			}
		} `graphql:"createDiscussion(input: $input)"`
	}
	input := githubv4.CreateDiscussionInput{
		RepositoryID: q.Repository.ID,
		CategoryID:   cat.ID,
		Title:        githubv4.String(title),
		Body:         githubv4.String(body),
	}
	if err := p.gql.Mutate(ctx, &m, input, nil); err != nil {
		return "", fmt.Errorf("creating discussion in %s: %w", repo, err)
	}
	return m.CreateDiscussion.Discussion.URL.String(), nil
}

// pickCategory prefers the announcements category regardless of position,
// falling back to the first category the repository offers.
func pickCategory(cats []category) (category, error) {
	if len(cats) == 0 {
		return category{}, fmt.Errorf("no discussion categories configured")
	}
	for _, c := range cats {
		if strings.EqualFold(c.Name, announcementCategory) {
			return c, nil
		}
	}
	return cats[0], nil
}
