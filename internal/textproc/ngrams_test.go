package textproc

import (
	"reflect"
	"sort"
	"testing"
)

func TestExtractUnigrams(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single", "python", []string{"python"}},
		{"multiple", "senior python developer", []string{"senior", "python", "developer"}},
		{"duplicates kept", "python python", []string{"python", "python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractUnigrams(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractUnigrams(%q) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestExtractBigrams(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single token", "python", nil},
		{"two tokens", "machine learning", []string{"machine learning"}},
		{"three tokens", "a b c", []string{"a b", "b c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBigrams(tt.in)
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractBigrams(%q) = %v; want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestTokenSetOps(t *testing.T) {
	a := NewTokenSet("python", "java", "rust")
	b := NewTokenSet("java", "rust", "kotlin")

	if got := a.IntersectionCount(b); got != 2 {
		t.Errorf("IntersectionCount = %d; want 2", got)
	}
	if got := b.IntersectionCount(a); got != 2 {
		t.Errorf("IntersectionCount reversed = %d; want 2", got)
	}

	u := a.Union(b)
	if u.Len() != 4 {
		t.Errorf("Union size = %d; want 4", u.Len())
	}
	for _, token := range []string{"python", "java", "rust", "kotlin"} {
		if !u.Has(token) {
			t.Errorf("Union missing %q", token)
		}
	}

	empty := NewTokenSet()
	if got := a.IntersectionCount(empty); got != 0 {
		t.Errorf("IntersectionCount with empty = %d; want 0", got)
	}
}

func TestFindMatches(t *testing.T) {
	terms := map[string][]string{"python": {"py"}}

	tests := []struct {
		name   string
		source TokenSet
		want   []string
	}{
		{"canonical hit", NewTokenSet("python"), []string{"python"}},
		{"alias hit", NewTokenSet("py"), []string{"python"}},
		{"no hit", NewTokenSet("java"), nil},
		{"both forms single match", NewTokenSet("python", "py"), []string{"python"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FindMatches(tt.source, terms)
			if got.Len() != len(tt.want) {
				t.Fatalf("FindMatches returned %d matches; want %d", got.Len(), len(tt.want))
			}
			for _, token := range tt.want {
				if !got.Has(token) {
					t.Errorf("FindMatches missing %q", token)
				}
			}
		})
	}
}

func TestRemoveStopwords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"english", "the senior developer and architect", "senior developer architect"},
		{"portuguese", "desenvolvedor com experiencia em python", "desenvolvedor experiencia python"},
		{"all stopwords", "the and of", ""},
		{"none", "python kubernetes", "python kubernetes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveStopwords(tt.in); got != tt.want {
				t.Errorf("RemoveStopwords(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestBuildNgramBag(t *testing.T) {
	bag := BuildNgramBag("senior python developer", "python backend apis")

	wantTitleUnigrams := []string{"senior", "python", "developer"}
	for _, token := range wantTitleUnigrams {
		if !bag.Title.Unigrams.Has(token) {
			t.Errorf("title unigrams missing %q", token)
		}
	}
	if !bag.Title.Bigrams.Has("senior python") || !bag.Title.Bigrams.Has("python developer") {
		t.Errorf("title bigrams incomplete: %v", keys(bag.Title.Bigrams))
	}

	// combined set spans both fields
	for _, token := range []string{"senior", "backend", "python backend"} {
		if !bag.Ngrams.Has(token) {
			t.Errorf("combined ngrams missing %q", token)
		}
	}

	// shared unigram appears once in the union
	union := bag.Title.Unigrams.Union(bag.Description.Unigrams)
	if union.Len() != 5 {
		t.Errorf("unigram union size = %d; want 5", union.Len())
	}
}

func TestBuildNgramBagFiltersStopwords(t *testing.T) {
	bag := BuildNgramBag("developer of the year", "")

	if bag.Title.Unigrams.Has("the") || bag.Title.Unigrams.Has("of") {
		t.Errorf("stopwords leaked into unigrams: %v", keys(bag.Title.Unigrams))
	}
	// bigrams form over the filtered token stream
	if !bag.Title.Bigrams.Has("developer year") {
		t.Errorf("expected bigram over filtered tokens, got %v", keys(bag.Title.Bigrams))
	}
}

func keys(s TokenSet) []string {
	out := make([]string, 0, s.Len())
	for token := range s {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
