package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewDailySurface(t *testing.T) {
	t.Parallel()
	userID := uuid.New()
	entryID := uuid.New()
	date := time.Date(2024, 12, 25, 17, 45, 3, 0, time.UTC)

	surface, err := NewDailySurface(userID, entryID, date, SurfaceReasonHolidayPrefix+"Christmas")

	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if surface.ID == uuid.Nil {
		t.Error("Expected non-nil UUID, got nil UUID")
	}

	want := time.Date(2024, 12, 25, 0, 0, 0, 0, time.UTC)
	if !surface.SurfacedOn.Equal(want) {
		t.Errorf("Expected date truncated to %v, got %v", want, surface.SurfacedOn)
	}

	if surface.Viewed {
		t.Error("Expected new surface to be unviewed")
	}

	if surface.ViewedAt != nil {
		t.Error("Expected ViewedAt to be nil")
	}

	// Test missing entry ID
	_, err = NewDailySurface(userID, uuid.Nil, date, SurfaceReasonRandom)
	if err != ErrEmptySurfaceEntryID {
		t.Errorf("Expected error %v, got %v", ErrEmptySurfaceEntryID, err)
	}

	// Test empty reason
	_, err = NewDailySurface(userID, entryID, date, "")
	if err != ErrEmptySurfaceReason {
		t.Errorf("Expected error %v, got %v", ErrEmptySurfaceReason, err)
	}
}

func TestDailySurfaceMarkViewed(t *testing.T) {
	t.Parallel()
	surface, err := NewDailySurface(uuid.New(), uuid.New(), time.Now(), SurfaceReasonVariety)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	surface.MarkViewed()

	if !surface.Viewed {
		t.Error("Expected surface to be viewed")
	}

	if surface.ViewedAt == nil {
		t.Fatal("Expected ViewedAt to be set")
	}

	// A second call must not move the viewed timestamp.
	firstViewedAt := *surface.ViewedAt
	surface.MarkViewed()

	if !surface.ViewedAt.Equal(firstViewedAt) {
		t.Error("Expected repeated MarkViewed to keep the original timestamp")
	}
}

func TestTruncateToDate(t *testing.T) {
	t.Parallel()

	// A time in a non-UTC zone truncates to the UTC calendar day.
	loc := time.FixedZone("UTC+9", 9*60*60)
	local := time.Date(2024, 7, 5, 3, 30, 0, 0, loc) // 2024-07-04 18:30 UTC

	got := TruncateToDate(local)
	want := time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC)

	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if got.Location() != time.UTC {
		t.Errorf("Expected UTC location, got %v", got.Location())
	}
}
