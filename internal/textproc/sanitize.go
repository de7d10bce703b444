package textproc

import (
	"html"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/unicode/norm"
)

// keepChars are the punctuation characters that survive the per-rune rewrite
// when no category rule claimed them first.
var keepChars = map[rune]struct{}{
	'+': {}, '#': {}, '.': {}, ',': {}, '-': {}, '$': {}, ' ': {}, '\'': {},
}

// Sanitize normalizes free text into a canonical lowercase token stream.
// Empty input yields an empty string; the function never fails. The output
// contains only lowercase letters, digits, a small punctuation set and single
// spaces as separators.
func Sanitize(text string) string {
	if text == "" {
		return ""
	}

	// Best-effort recovery of mis-encoded text, then decode HTML entities
	text = fixEncoding(text)
	text = html.UnescapeString(text)

	// Normalize compatibility characters to canonical ones, then decompose
	// so combining marks separate from their base characters
	text = norm.NFKC.String(text)
	text = norm.NFD.String(text)

	text = rewriteByCategory(text)
	text = strings.ToLower(text)
	text = stripPunctuation(text)

	// Collapse whitespace runs and trim the edges
	return strings.Join(strings.Fields(text), " ")
}

// fixEncoding repairs two common encoding accidents: raw Windows-1252 bytes
// in what should be UTF-8, and mojibake from UTF-8 bytes that were once
// decoded as Windows-1252.
func fixEncoding(s string) string {
	if !utf8.ValidString(s) {
		if fixed, err := charmap.Windows1252.NewDecoder().String(s); err == nil {
			s = fixed
		} else {
			s = strings.ToValidUTF8(s, "")
		}
	}

	// Round-trip: if every rune maps back to a single Windows-1252 byte and
	// those bytes form valid multi-byte UTF-8, the shorter reading is the
	// original text.
	encoded, err := charmap.Windows1252.NewEncoder().String(s)
	if err == nil && utf8.ValidString(encoded) &&
		utf8.RuneCountInString(encoded) < utf8.RuneCountInString(s) {
		return encoded
	}
	return s
}

// rewriteByCategory applies the per-rune policy: keep letters and numbers,
// drop combining marks, symbols and controls, normalize separators, currency,
// dashes and typographic quotes, keep a small punctuation set, and turn
// everything else into a space.
func rewriteByCategory(text string) string {
	runes := []rune(text)
	var b strings.Builder
	b.Grow(len(text))

	for i, r := range runes {
		switch {
		case unicode.IsLetter(r):
			b.WriteRune(r)
		case unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.Is(unicode.Mn, r):
			// accent strip, stage 2: NFD separated the mark from its base
		case unicode.Is(unicode.So, r):
			// emoji and other symbols
		case unicode.Is(unicode.C, r):
			// control characters
		case unicode.Is(unicode.Z, r):
			b.WriteRune(' ')
		case unicode.Is(unicode.Sc, r):
			b.WriteRune('$')
		case unicode.Is(unicode.Pd, r):
			// dashes bind words together only when touching a letter
			if (i > 0 && unicode.IsLetter(runes[i-1])) ||
				(i+1 < len(runes) && unicode.IsLetter(runes[i+1])) {
				b.WriteRune('-')
			} else {
				b.WriteRune(' ')
			}
		case unicode.Is(unicode.Pi, r), unicode.Is(unicode.Pf, r):
			b.WriteRune('"')
		default:
			if _, ok := keepChars[r]; ok {
				b.WriteRune(r)
			} else {
				b.WriteRune(' ')
			}
		}
	}

	return b.String()
}

// stripPunctuation removes backslashes, breaks tech-unsafe punctuation into
// spaces, and strips . # + - when they stand alone, lead a word after
// whitespace, or (for . and ,) trail a word. Expressed as a rune scan because
// RE2 has no lookarounds.
func stripPunctuation(text string) string {
	runes := []rune(text)
	out := make([]rune, 0, len(runes))

	for i, r := range runes {
		switch {
		case r == '\\':
			// dropped entirely
		case strings.ContainsRune("*()!?:/;,", r):
			out = append(out, ' ')
		case r == '.' || r == '#' || r == '+' || r == '-':
			prevWord := i > 0 && isWordRune(runes[i-1])
			nextWord := i+1 < len(runes) && isWordRune(runes[i+1])
			prevSpace := i > 0 && unicode.IsSpace(runes[i-1])
			nextAlnum := i+1 < len(runes) && isASCIIAlnum(runes[i+1])
			nextSpaceOrEnd := i+1 == len(runes) || unicode.IsSpace(runes[i+1])

			switch {
			case !prevWord && !nextWord:
				// standalone punctuation
				out = append(out, ' ')
			case prevSpace && nextAlnum:
				// leading symbol right before a word, the space stays
			case r == '.' && prevWord && nextSpaceOrEnd:
				// trailing period ending a word
				out = append(out, ' ')
			default:
				out = append(out, r)
			}
		default:
			out = append(out, r)
		}
	}

	return string(out)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isASCIIAlnum(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
}
