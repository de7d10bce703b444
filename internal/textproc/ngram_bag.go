package textproc

// FieldNgrams holds the n-gram sets derived from a single text field.
type FieldNgrams struct {
	Unigrams TokenSet
	Bigrams  TokenSet
	Ngrams   TokenSet // union of unigrams and bigrams
}

// NgramBag holds every n-gram set derived from one listing. Bags are
// recomputed each run, always from sanitized text, and never persisted.
type NgramBag struct {
	Title       FieldNgrams
	Description FieldNgrams
	Ngrams      TokenSet // union across both fields
}

// BuildNgramBag computes stopword-filtered unigram and bigram sets for the
// title and description independently, plus their per-field and combined
// unions. Inputs must already be sanitized.
func BuildNgramBag(title, description string) *NgramBag {
	titleNgrams := buildFieldNgrams(title)
	descriptionNgrams := buildFieldNgrams(description)

	return &NgramBag{
		Title:       titleNgrams,
		Description: descriptionNgrams,
		Ngrams:      titleNgrams.Ngrams.Union(descriptionNgrams.Ngrams),
	}
}

func buildFieldNgrams(text string) FieldNgrams {
	filtered := RemoveStopwords(text)
	unigrams := NewTokenSet(ExtractUnigrams(filtered)...)
	bigrams := NewTokenSet(ExtractBigrams(filtered)...)
	return FieldNgrams{
		Unigrams: unigrams,
		Bigrams:  bigrams,
		Ngrams:   unigrams.Union(bigrams),
	}
}
