package textproc

import "strings"

// TokenSet is an unordered set of tokens. Nothing in the pipeline depends on
// iteration order, only on membership and intersection size.
type TokenSet map[string]struct{}

// NewTokenSet builds a set from the given tokens, deduplicating them.
func NewTokenSet(tokens ...string) TokenSet {
	set := make(TokenSet, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

// Has reports whether token is in the set.
func (s TokenSet) Has(token string) bool {
	_, ok := s[token]
	return ok
}

// Len returns the number of tokens in the set.
func (s TokenSet) Len() int {
	return len(s)
}

// IntersectionCount returns the size of the intersection with other.
func (s TokenSet) IntersectionCount(other TokenSet) int {
	small, large := s, other
	if len(large) < len(small) {
		small, large = large, small
	}
	count := 0
	for token := range small {
		if _, ok := large[token]; ok {
			count++
		}
	}
	return count
}

// Union returns a new set holding every token from both sets.
func (s TokenSet) Union(other TokenSet) TokenSet {
	out := make(TokenSet, len(s)+len(other))
	for token := range s {
		out[token] = struct{}{}
	}
	for token := range other {
		out[token] = struct{}{}
	}
	return out
}

// ExtractUnigrams splits text on whitespace, preserving order. Duplicates are
// kept; callers dedupe into a TokenSet when they need one.
func ExtractUnigrams(text string) []string {
	return strings.Fields(text)
}

// ExtractBigrams returns the sliding pairs of adjacent tokens joined by a
// single space. Fewer than two tokens yield an empty sequence.
func ExtractBigrams(text string) []string {
	words := strings.Fields(text)
	if len(words) < 2 {
		return nil
	}
	bigrams := make([]string, 0, len(words)-1)
	for i := 0; i < len(words)-1; i++ {
		bigrams = append(bigrams, words[i]+" "+words[i+1])
	}
	return bigrams
}

// FindMatches returns the canonical term keys from terms that are matched by
// the source set: the canonical key itself is present, or at least one of the
// term's aliases is. This is the sole matching primitive for both job-level
// inference and topic classification.
func FindMatches(source TokenSet, terms map[string][]string) TokenSet {
	matches := make(TokenSet)
	for canonical, aliases := range terms {
		if source.Has(canonical) {
			matches[canonical] = struct{}{}
			continue
		}
		for _, alias := range aliases {
			if source.Has(alias) {
				matches[canonical] = struct{}{}
				break
			}
		}
	}
	return matches
}
