package pipeline

import (
	"testing"

	"github.com/moisesmmele/market-analysis/internal/domain"
	"github.com/moisesmmele/market-analysis/internal/mappings"
)

func TestFactoryCreate(t *testing.T) {
	factory := NewFactory(testDoc())

	listing, err := factory.Create("l1", `{
		"id": "ext-9",
		"title": "Backend Developer",
		"description": "builds services",
		"job_level": "Mid-Senior level",
		"company": "ignored"
	}`)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if listing.ID != "l1" {
		t.Errorf("ID = %q; want l1", listing.ID)
	}
	if listing.ExternalID != "ext-9" {
		t.Errorf("ExternalID = %q; want ext-9", listing.ExternalID)
	}
	if listing.Title != "Backend Developer" {
		t.Errorf("Title = %q; want untouched raw value", listing.Title)
	}
	// platform table translates the raw variant to the canonical level
	if listing.JobLevel != "senior" {
		t.Errorf("JobLevel = %q; want senior", listing.JobLevel)
	}
}

func TestFactoryCreateSkipsMissingFields(t *testing.T) {
	factory := NewFactory(testDoc())

	listing, err := factory.Create("l1", `{"title": "Only Title"}`)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if listing.Title != "Only Title" {
		t.Errorf("Title = %q; want Only Title", listing.Title)
	}
	if listing.ExternalID != "" || listing.Description != "" || listing.JobLevel != "" {
		t.Errorf("absent raw fields should stay empty, got %+v", listing)
	}
}

func TestFactoryCreateSkipsUndeclaredFields(t *testing.T) {
	doc := testDoc()
	doc.Provider.Fields = map[string]string{domain.FieldTitle: "title"}
	factory := NewFactory(doc)

	listing, err := factory.Create("l1", `{"id": "ext-1", "title": "T", "description": "D"}`)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if listing.Title != "T" {
		t.Errorf("Title = %q; want T", listing.Title)
	}
	// the provider never declared these, so the raw values are ignored
	if listing.ExternalID != "" || listing.Description != "" {
		t.Errorf("undeclared fields should stay empty, got %+v", listing)
	}
}

func TestFactoryCreateUntranslatedValueKept(t *testing.T) {
	factory := NewFactory(testDoc())

	listing, err := factory.Create("l1", `{"job_level": "Unheard Of"}`)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if listing.JobLevel != "Unheard Of" {
		t.Errorf("JobLevel = %q; want the raw value kept when no variant matches", listing.JobLevel)
	}
}

func TestFactoryCreateSharedVariantDeterministic(t *testing.T) {
	doc := testDoc()
	// "Lead" appears under both levels; declaration order decides
	doc.Platform = mappings.PlatformMappings{
		domain.FieldJobLevel: {
			{Canonical: "senior", Variants: []string{"Mid-Senior level", "Lead"}},
			{Canonical: "staff", Variants: []string{"Lead", "Principal"}},
		},
	}
	factory := NewFactory(doc)

	for i := 0; i < 200; i++ {
		listing, err := factory.Create("l1", `{"job_level": "Lead"}`)
		if err != nil {
			t.Fatalf("Create: %v", err)
		}
		if listing.JobLevel != "senior" {
			t.Fatalf("JobLevel = %q on run %d; want senior (first declared wins)", listing.JobLevel, i)
		}
	}
}

func TestFactoryCreateScalars(t *testing.T) {
	factory := NewFactory(testDoc())

	listing, err := factory.Create("l1", `{"id": 4200123}`)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if listing.ExternalID != "4200123" {
		t.Errorf("numeric id = %q; want 4200123", listing.ExternalID)
	}

	listing, err = factory.Create("l2", `{"id": null, "title": "T"}`)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if listing.ExternalID != "" {
		t.Errorf("null id = %q; want empty", listing.ExternalID)
	}
}

func TestFactoryCreateInvalidJSON(t *testing.T) {
	factory := NewFactory(testDoc())
	if _, err := factory.Create("l1", "{broken"); err == nil {
		t.Fatal("Create accepted invalid JSON")
	}
}

func TestFactoryCreateWithoutDocument(t *testing.T) {
	factory := NewFactory(nil)
	if _, err := factory.Create("l1", "{}"); err == nil {
		t.Fatal("Create succeeded without a mapping document")
	}
}

func TestNewBuckets(t *testing.T) {
	levels := mappings.JobLevelHierarchy{{Name: "junior"}, {Name: "senior"}}
	topics := []domain.Topic{{Title: "Backend"}, {Title: "Frontend"}}

	buckets := newBuckets(topics, levels)

	if buckets.Total == nil || buckets.Total.MatchesCounter == nil {
		t.Fatal("total bucket not initialized")
	}
	if len(buckets.Topics) != 2 {
		t.Fatalf("topics = %d; want 2", len(buckets.Topics))
	}
	for _, title := range []string{"Backend", "Frontend"} {
		topicBuckets, ok := buckets.Topics[title]
		if !ok {
			t.Fatalf("missing topic %s", title)
		}
		if len(topicBuckets.PerLevel) != 2 {
			t.Errorf("topic %s has %d level cells; want 2", title, len(topicBuckets.PerLevel))
		}
		for _, level := range []string{"junior", "senior"} {
			if topicBuckets.PerLevel[level] == nil {
				t.Errorf("topic %s missing level cell %s", title, level)
			}
		}
	}
}
