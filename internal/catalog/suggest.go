package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// minQueryLength is the shortest partial input that produces suggestions.
const minQueryLength = 2

// suggestionTemplates are the qualifiers appended to the raw partial
// query. This is a lightweight heuristic, not a search index: suggestions
// are advisory completions that re-trigger filtering when picked.
var suggestionTemplates = []string{
	"%s used",
	"%s new",
	"%s refurbished",
	"%s under $500",
	"%s with delivery",
	"%s original",
}

// Suggester derives short query completions from partial text input.
type Suggester struct {
	limit     int
	debouncer *Debouncer
}

// NewSuggester creates a suggester that returns at most limit completions
// and debounces per-stream input with the given quiet window.
func NewSuggester(limit int, window time.Duration) *Suggester {
	if limit <= 0 {
		limit = len(suggestionTemplates)
	}
	return &Suggester{
		limit:     limit,
		debouncer: NewDebouncer(window),
	}
}

// Suggest returns completions for a partial query. Inputs shorter than two
// characters produce no suggestions and no work.
func (s *Suggester) Suggest(partial string) []string {
	query := strings.TrimSpace(partial)
	if len([]rune(query)) < minQueryLength {
		return []string{}
	}

	suggestions := make([]string, 0, s.limit)
	for _, tmpl := range suggestionTemplates {
		if len(suggestions) == s.limit {
			break
		}
		suggestions = append(suggestions, fmt.Sprintf(tmpl, query))
	}
	return suggestions
}

// SuggestDebounced waits out the quiet window for the given input stream
// before computing suggestions. A newer call on the same stream cancels
// this one with domain.ErrSuperseded, so under fast typing only the final
// keystroke's suggestions are ever computed.
func (s *Suggester) SuggestDebounced(ctx context.Context, stream, partial string) ([]string, error) {
	// Too short to ever produce suggestions; answering empty right away
	// costs nothing and must not hold the caller for the window.
	if len([]rune(strings.TrimSpace(partial))) < minQueryLength {
		return []string{}, nil
	}

	if err := s.debouncer.Wait(ctx, stream); err != nil {
		return nil, err
	}
	return s.Suggest(partial), nil
}
