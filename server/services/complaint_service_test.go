package services

import (
	"testing"
	"time"

	"ttsguard/database"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()

	db, err := database.NewDB(":memory:")
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewRegistry(db, 14)
}

func seedComplaintFixture(t *testing.T, reg *Registry, messages []string) {
	t.Helper()

	client, err := reg.Clients.Create(CreateClientRequest{Name: "Union Real Estate", ShortName: "URE"})
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}
	building, err := reg.Buildings.Create(CreateBuildingRequest{ClientID: client.ID, Name: "Plaza One"})
	if err != nil {
		t.Fatalf("failed to create building: %v", err)
	}

	for _, msg := range messages {
		if _, err := reg.Complaints.Create(CreateComplaintRequest{
			ClientID:   client.ID,
			BuildingID: building.ID,
			Message:    msg,
		}); err != nil {
			t.Fatalf("failed to create complaint %q: %v", msg, err)
		}
	}
}

func TestComplaintSearch_StemsTerms(t *testing.T) {
	reg := newTestRegistry(t)
	seedComplaintFixture(t, reg, []string{
		"Two smoke detectors failed during the last test",
		"Sprinkler valve is leaking in the basement",
		"Fire alarm panel shows a fault code",
	})

	// Формы слов не совпадают с текстом: detector/failing против detectors/failed
	matched, err := reg.Complaints.Search("detector failing")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}
	if matched[0].Message != "Two smoke detectors failed during the last test" {
		t.Errorf("unexpected match: %q", matched[0].Message)
	}
}

func TestComplaintSearch_AllTermsMustMatch(t *testing.T) {
	reg := newTestRegistry(t)
	seedComplaintFixture(t, reg, []string{
		"Sprinkler valve is leaking in the basement",
		"Sprinkler heads need replacement on floor 3",
	})

	matched, err := reg.Complaints.Search("sprinkler leak")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matched) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matched))
	}

	matched, err = reg.Complaints.Search("sprinkler")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(matched) != 2 {
		t.Errorf("expected 2 matches for single term, got %d", len(matched))
	}
}

func TestComplaintSearch_EmptyQuery(t *testing.T) {
	reg := newTestRegistry(t)
	seedComplaintFixture(t, reg, []string{"Fire alarm panel shows a fault code"})

	if _, err := reg.Complaints.Search("   "); err == nil {
		t.Error("expected validation error for empty query")
	}
}

func TestMessageStemmer_Cache(t *testing.T) {
	stemmer := newMessageStemmer()

	first := stemmer.Stem("detectors")
	second := stemmer.Stem("detectors")
	if first != second {
		t.Errorf("expected stable stem, got %q then %q", first, second)
	}
	if first != "detector" {
		t.Errorf("expected stem 'detector', got %q", first)
	}

	// Числа и короткие токены проходят как есть
	if got := stemmer.Stem("12"); got != "12" {
		t.Errorf("expected numeric token unchanged, got %q", got)
	}
}

func TestParseReferenceDate(t *testing.T) {
	got, err := ParseReferenceDate("2026-08-28")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := ParseReferenceDate("28/08/2026"); err == nil {
		t.Error("expected error for unsupported date format")
	}

	now, err := ParseReferenceDate("")
	if err != nil {
		t.Fatalf("unexpected error for empty date: %v", err)
	}
	if time.Since(now) > time.Minute {
		t.Errorf("expected empty date to default to now, got %v", now)
	}
}
