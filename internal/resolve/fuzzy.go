// Package resolve provides fuzzy matching of user input against a fixed
// set of names, such as configuration fields or message target types.
package resolve

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	ErrEmptyQuery = errors.New("empty search query")
	ErrEmptyItems = errors.New("no candidates to match against")
)

// AmbiguousError indicates multiple candidates matched equally well.
type AmbiguousError struct {
	Query   string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	var b strings.Builder
	_, _ = fmt.Fprintf(&b, "ambiguous match for %q", e.Query)
	if len(e.Matches) > 0 {
		b.WriteString(", candidates: ")
		b.WriteString(strings.Join(e.Matches, ", "))
	}
	return b.String()
}

type lowerSource []string

func (s lowerSource) String(i int) string { return strings.ToLower(s[i]) }
func (s lowerSource) Len() int            { return len(s) }

// Match returns the candidate that best matches query.
//
// Behavior:
// - Empty query or empty candidates are errors.
// - Exact case-insensitive matches win over fuzzy matches.
// - If the top two fuzzy results tie on score, returns *AmbiguousError.
func Match(query string, candidates []string) (string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return "", ErrEmptyQuery
	}
	if len(candidates) == 0 {
		return "", ErrEmptyItems
	}

	for _, c := range candidates {
		if strings.EqualFold(c, query) {
			return c, nil
		}
	}

	results := fuzzy.FindFrom(strings.ToLower(query), lowerSource(candidates))
	if len(results) == 0 {
		return "", fmt.Errorf("no match found for %q", query)
	}
	if len(results) > 1 && results[0].Score == results[1].Score {
		return "", &AmbiguousError{Query: query, Matches: names(candidates, results, 5)}
	}
	return candidates[results[0].Index], nil
}

// Suggest returns up to limit candidates ranked by score, best first.
func Suggest(query string, candidates []string, limit int) []string {
	query = strings.TrimSpace(query)
	if query == "" || len(candidates) == 0 || limit <= 0 {
		return nil
	}
	return names(candidates, fuzzy.FindFrom(strings.ToLower(query), lowerSource(candidates)), limit)
}

func names(candidates []string, results fuzzy.Matches, limit int) []string {
	if len(results) == 0 {
		return nil
	}
	if len(results) > limit {
		results = results[:limit]
	}
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = candidates[r.Index]
	}
	return out
}
