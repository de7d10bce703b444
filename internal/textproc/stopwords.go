package textproc

import "strings"

// stopwords is the fixed bilingual (Portuguese/English) stopword set applied
// before n-gram extraction.
var stopwords = func() map[string]struct{} {
	words := []string{
		"a", "o", "e", "de", "do", "da", "em", "um", "uma", "para", "com", "por",
		"se", "no", "na", "os", "as", "ao", "aos", "nas", "dos", "das", "que",
		"ou", "sua", "seu", "suas", "seus", "tem", "nosso", "nossa", "nossos",
		"nossas", "mais", "pelo", "pela", "como", "quem", "ser", "foi", "está",
		"estão", "é", "era", "são", "fomos", "foram", "têm", "tinha", "tinham",
		"eu", "tu", "ele", "ela", "nós", "vós", "eles", "elas", "me", "te",
		"lhe", "nos", "vos", "lhes", "meu", "minha", "teu", "tua", "este",
		"esta", "isto", "esse", "essa", "isso", "aquele", "aquela", "aquilo",
		"mas", "nem", "porque", "então", "logo", "pois", "muito", "também",
		"the", "and", "to", "of", "in", "is", "you", "that", "it", "he",
		"was", "for", "on", "are", "with", "his", "they", "i", "at",
		"be", "this", "have", "from", "or", "one", "had", "by", "but", "not",
		"what", "all", "were", "we", "when", "your", "can", "said", "there",
		"use", "an", "each", "which", "she", "how", "their", "if", "will",
		"up", "other", "about", "out", "many", "then", "them", "these", "so",
		"some", "her", "would", "make", "like", "him", "into", "time", "has",
		"look", "two", "more", "write", "go", "see", "way", "could",
		"people", "my", "than", "first", "been", "call", "who", "its", "now",
		"find", "did", "down", "come", "made", "may", "part",
	}
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}()

// IsStopword reports whether token is in the fixed stopword set.
func IsStopword(token string) bool {
	_, ok := stopwords[token]
	return ok
}

// RemoveStopwords drops stopword tokens from text, preserving the order of
// the remaining tokens.
func RemoveStopwords(text string) string {
	words := strings.Fields(text)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if !IsStopword(w) {
			kept = append(kept, w)
		}
	}
	return strings.Join(kept, " ")
}
