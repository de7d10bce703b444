package topics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/moisesmmele/market-analysis/internal/domain"
)

func writeTopic(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write topic %s: %v", name, err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	writeTopic(t, dir, "backend.json", `{"title": "Backend", "terms": {"python": ["py"]}}`)
	writeTopic(t, dir, "frontend.json", `{"title": "Frontend", "terms": {"react": []}}`)
	writeTopic(t, dir, "notes.txt", "not a topic")

	topics, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("loaded %d topics; want 2", len(topics))
	}

	// filename order, not directory order
	if topics[0].Title != "Backend" || topics[1].Title != "Frontend" {
		t.Errorf("topic order = %s, %s; want Backend, Frontend", topics[0].Title, topics[1].Title)
	}
	if got := topics[0].Terms["python"]; len(got) != 1 || got[0] != "py" {
		t.Errorf("Backend python aliases = %v; want [py]", got)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("empty dir", func(t *testing.T) {
		if _, err := Load(t.TempDir()); err == nil {
			t.Fatal("Load succeeded on a dir with no topics")
		}
	})

	t.Run("missing title", func(t *testing.T) {
		dir := t.TempDir()
		writeTopic(t, dir, "broken.json", `{"terms": {"python": []}}`)
		if _, err := Load(dir); err == nil {
			t.Fatal("Load accepted a topic without a title")
		}
	})

	t.Run("invalid json", func(t *testing.T) {
		dir := t.TempDir()
		writeTopic(t, dir, "broken.json", "{nope")
		if _, err := Load(dir); err == nil {
			t.Fatal("Load accepted invalid JSON")
		}
	})
}

func TestSelect(t *testing.T) {
	all := []domain.Topic{{Title: "Backend"}, {Title: "Frontend"}, {Title: "DevOps"}}

	tests := []struct {
		name   string
		titles []string
		want   []string
	}{
		{"empty selection returns all", nil, []string{"Backend", "Frontend", "DevOps"}},
		{"subset in load order", []string{"DevOps", "Backend"}, []string{"Backend", "DevOps"}},
		{"unknown titles ignored", []string{"Backend", "Data"}, []string{"Backend"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Select(all, tt.titles)
			if len(got) != len(tt.want) {
				t.Fatalf("selected %d topics; want %d", len(got), len(tt.want))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Errorf("selected[%d] = %s; want %s", i, got[i].Title, title)
				}
			}
		})
	}
}
