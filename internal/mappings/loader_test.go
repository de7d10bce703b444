package mappings

import (
	"encoding/json"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const fixtureJSON = `{
  "canonical": {
    "job_level": {
      "intern": ["intern", "trainee"],
      "junior": ["jr", "junior"],
      "mid": ["mid", "pleno"],
      "senior": ["sr", "senior"]
    }
  },
  "providers": {
    "jobspy": {
      "fields": {
        "external_id": "id",
        "title": "title"
      }
    }
  },
  "platforms": {
    "linkedin": {
      "job_level": {
        "senior": ["Mid-Senior level"]
      }
    }
  }
}`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mappings.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeFixture(t, fixtureJSON)

	doc, err := Load(path, "jobspy", "linkedin")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// declaration order of the hierarchy is the seniority order
	wantNames := []string{"intern", "junior", "mid", "senior"}
	if got := doc.Canonical.JobLevels.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("job level order = %v; want %v", got, wantNames)
	}

	if got := doc.Provider.Fields["external_id"]; got != "id" {
		t.Errorf("provider external_id field = %q; want id", got)
	}
	table := doc.Platform["job_level"]
	if len(table) != 1 || table[0].Canonical != "senior" {
		t.Fatalf("platform job_level table = %v", table)
	}
	if got := table[0].Variants; len(got) != 1 || got[0] != "Mid-Senior level" {
		t.Errorf("platform senior variants = %v", got)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		provider string
		platform string
		wantErr  string
	}{
		{
			"unknown provider", fixtureJSON, "other", "linkedin",
			`no mappings for provider "other"`,
		},
		{
			"unknown platform", fixtureJSON, "jobspy", "indeed",
			`no mappings for platform "indeed"`,
		},
		{
			"no canonical section",
			`{"providers": {"jobspy": {"fields": {"title": "title"}}}, "platforms": {"linkedin": {}}}`,
			"jobspy", "linkedin",
			"no canonical mappings",
		},
		{
			"invalid json", "{broken", "jobspy", "linkedin",
			"failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFixture(t, tt.content)
			_, err := Load(path, tt.provider, tt.platform)
			if err == nil {
				t.Fatal("Load succeeded; want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.json"), "jobspy", "linkedin"); err == nil {
		t.Fatal("Load succeeded on a missing file")
	}
}

func TestValueTableOrder(t *testing.T) {
	var table ValueTable
	err := json.Unmarshal([]byte(`{"senior": ["Mid-Senior level", "Lead"], "staff": ["Lead", "Principal"]}`), &table)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(table) != 2 || table[0].Canonical != "senior" || table[1].Canonical != "staff" {
		t.Fatalf("declaration order not preserved: %v", table)
	}

	// a variant shared by two canonicals resolves to the first declared
	tests := []struct {
		raw  string
		want string
	}{
		{"Lead", "senior"},
		{"Principal", "staff"},
		{"Mid-Senior level", "senior"},
		{"Unknown", "Unknown"},
	}
	for _, tt := range tests {
		if got := table.Translate(tt.raw); got != tt.want {
			t.Errorf("Translate(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestJobLevelHierarchyContains(t *testing.T) {
	h := JobLevelHierarchy{{Name: "junior"}, {Name: "senior"}}
	if !h.Contains("junior") || !h.Contains("senior") {
		t.Error("Contains misses declared levels")
	}
	if h.Contains("principal") {
		t.Error("Contains accepts an undeclared level")
	}
}

func TestCacheMemoizes(t *testing.T) {
	path := writeFixture(t, fixtureJSON)
	cache := NewCache(path, "jobspy", "linkedin")

	first, err := cache.Get()
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	// removing the file proves the second Get never touches disk
	if err := os.Remove(path); err != nil {
		t.Fatalf("remove fixture: %v", err)
	}

	second, err := cache.Get()
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if first != second {
		t.Error("Get returned a different document on the second call")
	}
}

func TestCacheMemoizesError(t *testing.T) {
	cache := NewCache(filepath.Join(t.TempDir(), "absent.json"), "jobspy", "linkedin")

	if _, err := cache.Get(); err == nil {
		t.Fatal("Get succeeded on a missing file")
	}
	if _, err := cache.Get(); err == nil {
		t.Fatal("Get outcome was not memoized")
	}
}
