package domain

// Topic is one classification category loaded from a declarative resource.
// Terms maps a canonical term to the raw aliases that also count as a match.
// Topics are immutable after load.
type Topic struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Terms       map[string][]string `json:"terms"`
}
