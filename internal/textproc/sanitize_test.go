package textproc

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"plain", "Senior Backend Developer", "senior backend developer"},
		{"accents stripped", "Héllo Wörld", "hello world"},
		{"portuguese accents", "Programação e Gestão", "programacao e gestao"},
		{"html entities", "caf&eacute; &amp; code", "cafe code"},
		{"emoji stripped", "😀 emoji text", "emoji text"},
		{"currency normalized", "salary € 5000", "salary $ 5000"},
		{"dollar kept", "pay $100", "pay $100"},
		{"dash between letters", "full–time role", "full-time role"},
		{"dash between spaces", "one – two", "one two"},
		{"separators collapsed", "a    b\tc", "a bc"},
		{"tech safe punctuation", "REST/GraphQL; APIs!", "rest graphql apis"},
		{"hash suffix kept", "C# developer", "c# developer"},
		{"standalone punctuation", "skills : . # + -", "skills"},
		{"trailing period", "developer. required", "developer required"},
		{"trailing comma", "python, java", "python java"},
		{"leading symbol before word", "experience .net and #go", "experience net and go"},
		{"dotted version kept", "python 3.12", "python 3.12"},
		{"mojibake repaired", "CafÃ© Engineering", "cafe engineering"},
		{"control chars dropped", "dev\u0007ops", "devops"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.in)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q; want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"",
		"Senior Backend Developer",
		"Héllo Wörld",
		"salary € 5000 / month",
		"full–time role, remote. C# and .NET!",
		"Programação orientada a objetos",
		"python 3.12 with REST APIs",
	}

	for _, in := range inputs {
		once := Sanitize(in)
		twice := Sanitize(once)
		if once != twice {
			t.Errorf("Sanitize not idempotent for %q: first %q, second %q", in, once, twice)
		}
	}
}

func TestSanitizeAmpersand(t *testing.T) {
	// literal ampersands become spaces; entity-decoding happens first
	if got := Sanitize("AT&T"); got != "at t" {
		t.Errorf("Sanitize(AT&T) = %q; want %q", got, "at t")
	}
}
