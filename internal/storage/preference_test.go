package storage

import (
	"testing"
)

func TestSetPreferencesCreatesThenUpdatesSingleRow(t *testing.T) {
	s := newTestStore(t)

	first, err := s.SetPreferences(7,
		[]string{"NYT"},
		[]string{"Technology", "Health"},
		[]string{"Jane Doe"},
	)
	if err != nil {
		t.Fatalf("SetPreferences: %v", err)
	}
	if first.UserID != 7 {
		t.Fatalf("user id = %d, want 7", first.UserID)
	}

	second, err := s.SetPreferences(7,
		[]string{"The Guardian"},
		[]string{"World news"},
		[]string{" John Writer "},
	)
	if err != nil {
		t.Fatalf("SetPreferences update: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("update must reuse the row: %d -> %d", first.ID, second.ID)
	}

	var count int64
	if err := s.DB.Model(&Preference{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("one row per user, got %d", count)
	}

	got, err := s.GetPreferences(7)
	if err != nil {
		t.Fatalf("GetPreferences: %v", err)
	}
	if len(got.PreferredSources) != 1 || got.PreferredSources[0] != "The Guardian" {
		t.Fatalf("sources not updated: %v", got.PreferredSources)
	}
	if len(got.PreferredAuthors) != 1 || got.PreferredAuthors[0] != "John Writer" {
		t.Fatalf("authors should be trimmed on write: %v", got.PreferredAuthors)
	}
}

func TestGetPreferencesNotFound(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetPreferences(42); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound for a user without preferences, got %v", err)
	}
}

func TestPreferencesRoundTripThroughJSONColumns(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.SetPreferences(1,
		[]string{"NewsAPI", "New York Times"},
		[]string{},
		[]string{"By Marc Tracy"},
	); err != nil {
		t.Fatalf("SetPreferences: %v", err)
	}

	got, err := s.GetPreferences(1)
	if err != nil {
		t.Fatalf("GetPreferences: %v", err)
	}
	if len(got.PreferredSources) != 2 {
		t.Fatalf("sources round trip failed: %v", got.PreferredSources)
	}
	if len(got.PreferredCategories) != 0 {
		t.Fatalf("empty list must stay empty, got %v", got.PreferredCategories)
	}
}
