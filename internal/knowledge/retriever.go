package knowledge

import (
	"sort"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	exactMatchScore   = 3
	partialMatchScore = 1
	maxResults        = 2
	separator         = "\n\n---\n\n"
	cacheSize         = 128
)

// Retriever matches queries against a fixed protocol set by keyword
// scoring. Results are cached; the protocol set never changes after
// construction so entries stay valid for the process lifetime.
type Retriever struct {
	protocols []Protocol
	cache     *lru.Cache[string, string]
}

// NewRetriever builds a retriever over the given protocols. Pass
// Builtin() when no external protocol files are available.
func NewRetriever(protocols []Protocol) *Retriever {
	cache, _ := lru.New[string, string](cacheSize)
	return &Retriever{protocols: protocols, cache: cache}
}

// Len reports how many protocols are loaded.
func (r *Retriever) Len() int { return len(r.protocols) }

// Retrieve returns at most two concatenated protocol documents relevant
// to the query, or "" when nothing scores above zero.
func (r *Retriever) Retrieve(query string) string {
	key := strings.ToLower(strings.TrimSpace(query))
	if key == "" {
		return ""
	}
	if cached, ok := r.cache.Get(key); ok {
		return cached
	}

	type scored struct {
		idx   int
		score int
	}
	var matches []scored
	words := strings.Fields(key)
	for i, p := range r.protocols {
		s := score(key, words, p)
		if s > 0 {
			matches = append(matches, scored{idx: i, score: s})
		}
	}

	// Stable sort keeps load order as the tiebreak.
	sort.SliceStable(matches, func(a, b int) bool {
		return matches[a].score > matches[b].score
	})
	if len(matches) > maxResults {
		matches = matches[:maxResults]
	}

	parts := make([]string, 0, len(matches))
	for _, m := range matches {
		parts = append(parts, r.protocols[m.idx].Text())
	}
	result := strings.Join(parts, separator)
	r.cache.Add(key, result)
	return result
}

// score awards 3 per keyword appearing verbatim in the query and 1 per
// partial containment between a query word and a keyword, in either
// direction. The protocol name counts as a keyword.
func score(query string, words []string, p Protocol) int {
	total := 0
	keywords := p.Keywords
	if name := strings.ToLower(p.Name); name != "" {
		keywords = append(keywords[:len(keywords):len(keywords)], name)
	}
	for _, kw := range keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(query, kw) {
			total += exactMatchScore
			continue
		}
		for _, w := range words {
			if strings.Contains(kw, w) || strings.Contains(w, kw) {
				total += partialMatchScore
				break
			}
		}
	}
	return total
}
