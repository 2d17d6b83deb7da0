package ghactivity

import "sort"

// Dedupe merges both result lists into one set keyed by canonical URL and
// partitions it back by kind, preserving input order. When the same URL
// appears in both lists the PR entry wins.
func Dedupe(prs, issues []Item) (outPRs, outIssues []Item) {
	seen := make(map[string]bool, len(prs)+len(issues))
	for _, it := range prs {
		if seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		outPRs = append(outPRs, it)
	}
	for _, it := range issues {
		if seen[it.URL] {
			continue
		}
		seen[it.URL] = true
		if it.Kind == KindPullRequest {
			outPRs = append(outPRs, it)
		} else {
			outIssues = append(outIssues, it)
		}
	}
	return outPRs, outIssues
}

// Contributor is one entry in the rendered contributor list.
type Contributor struct {
	Login string
	URL   string
}

// Contributors collects every distinct author, commenter, and reviewer
// across the given item lists into a login -> profile URL map.
func Contributors(lists ...[]Item) map[string]string {
	m := make(map[string]string)
	add := func(a *Actor) {
		if a == nil || a.Login == "" {
			return
		}
		if _, ok := m[a.Login]; !ok {
			m[a.Login] = a.URL
		}
	}
	for _, items := range lists {
		for _, it := range items {
			add(it.Author)
			for i := range it.Participants {
				add(&it.Participants[i])
			}
		}
	}
	return m
}

// OrderContributors fixes the presentation order: core team first (in
// roster order, only those actually present), then everyone else
// alphabetically.
func OrderContributors(m map[string]string, coreTeam []string) []Contributor {
	pinned := make(map[string]bool, len(coreTeam))
	var out []Contributor
	for _, login := range coreTeam {
		if url, ok := m[login]; ok {
			out = append(out, Contributor{Login: login, URL: url})
			pinned[login] = true
		}
	}
	rest := make([]string, 0, len(m))
	for login := range m {
		if !pinned[login] {
			rest = append(rest, login)
		}
	}
	sort.Strings(rest)
	for _, login := range rest {
		out = append(out, Contributor{Login: login, URL: m[login]})
	}
	return out
}
