package processor

import (
	"testing"
	"time"

	"github.com/LJTian/NewsHub/internal/collector"
)

func TestProcessFillsDefaults(t *testing.T) {
	p := NewSimpleProcessor()

	items := []collector.Article{
		{
			Title:  "  Title with spaces  ",
			Source: "NewsAPI",
		},
	}

	out := p.Process(items)
	if len(out) != 1 {
		t.Fatalf("expected 1 processed item, got %d", len(out))
	}

	got := out[0]
	if got.Title != "Title with spaces" {
		t.Fatalf("title should be trimmed: %q", got.Title)
	}
	if got.Author != DefaultAuthor {
		t.Fatalf("author = %q, want %q", got.Author, DefaultAuthor)
	}
	if got.Description != DefaultDescription {
		t.Fatalf("description = %q, want %q", got.Description, DefaultDescription)
	}
	if got.Category != DefaultCategory {
		t.Fatalf("category = %q, want %q", got.Category, DefaultCategory)
	}
	if got.PublishedAt.IsZero() {
		t.Fatalf("zero published-at should fall back to ingestion time")
	}
}

func TestProcessKeepsProvidedValues(t *testing.T) {
	p := NewSimpleProcessor()
	published := time.Date(2024, 11, 26, 10, 0, 0, 0, time.UTC)

	out := p.Process([]collector.Article{{
		Title:       "Known article",
		Description: "Has a description",
		Author:      "Jane Doe",
		Source:      "The Guardian",
		Category:    "World news",
		PublishedAt: published,
	}})
	if len(out) != 1 {
		t.Fatalf("expected 1 processed item, got %d", len(out))
	}
	got := out[0]
	if got.Description != "Has a description" || got.Author != "Jane Doe" || got.Category != "World news" {
		t.Fatalf("provided values must not be overwritten: %+v", got)
	}
	if !got.PublishedAt.Equal(published) {
		t.Fatalf("PublishedAt = %v, want %v", got.PublishedAt, published)
	}
}

func TestProcessDropsEmptyTitlesAndDeduplicates(t *testing.T) {
	p := NewSimpleProcessor()

	items := []collector.Article{
		{Title: "   ", Source: "NewsAPI"},
		{Title: "Same title", Description: "first", Source: "NewsAPI"},
		{Title: "Same title", Description: "second", Source: "NewsAPI"},
	}

	out := p.Process(items)
	if len(out) != 1 {
		t.Fatalf("expected 1 item after dropping empty titles and duplicates, got %d", len(out))
	}
	if out[0].Description != "first" {
		t.Fatalf("first occurrence should win within a batch, got %q", out[0].Description)
	}
}
