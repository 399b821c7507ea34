package surfacing

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

var noRecent = map[uuid.UUID]struct{}{}

func TestPickForDateNoEntries(t *testing.T) {
	t.Parallel()

	_, err := PickForDate(uuid.New(), date(2025, time.December, 20), nil, noRecent, DefaultParams())
	if !errors.Is(err, ErrNoEntries) {
		t.Fatalf("expected ErrNoEntries, got %v", err)
	}
}

func TestPickForDateSingleEntry(t *testing.T) {
	t.Parallel()

	entry := testEntry(domain.SeasonWinter, "Christmas")
	sel, err := PickForDate(uuid.New(), date(2025, time.December, 20),
		[]*domain.GratitudeEntry{entry}, noRecent, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sel.Entry.ID != entry.ID {
		t.Error("expected the only entry to be selected")
	}

	if sel.Reason != "holiday:Christmas" {
		t.Errorf("reason = %q, want holiday:Christmas", sel.Reason)
	}
}

func TestPickForDateIsDeterministic(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	day := date(2025, time.July, 10)
	entries := []*domain.GratitudeEntry{
		testEntry(domain.SeasonSummer),
		testEntry(domain.SeasonSummer),
		testEntry(domain.SeasonSummer),
	}
	params := DefaultParams()

	first, err := PickForDate(userID, day, entries, noRecent, params)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < 10; i++ {
		again, err := PickForDate(userID, day, entries, noRecent, params)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if again.Entry.ID != first.Entry.ID || again.Reason != first.Reason {
			t.Fatal("selection changed between reruns for the same user and date")
		}
	}
}

func TestPickForDateTieBreakVariesAcrossDays(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	entries := []*domain.GratitudeEntry{
		testEntry(domain.SeasonSummer),
		testEntry(domain.SeasonSummer),
		testEntry(domain.SeasonSummer),
		testEntry(domain.SeasonSummer),
		testEntry(domain.SeasonSummer),
	}
	params := DefaultParams()

	// Not guaranteed for any particular pair of days, but across a month of
	// summer days the hash must not pin a single winner.
	seen := map[uuid.UUID]bool{}
	for d := 1; d <= 30; d++ {
		sel, err := PickForDate(userID, date(2025, time.July, d), entries, noRecent, params)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		seen[sel.Entry.ID] = true
	}

	if len(seen) < 2 {
		t.Error("expected the daily tie-break to rotate among tied entries over a month")
	}
}

func TestPickForDateAvoidsRecentEntries(t *testing.T) {
	t.Parallel()

	fresh := testEntry(domain.SeasonSummer)
	recentA := testEntry(domain.SeasonSummer)
	recentB := testEntry(domain.SeasonSummer)

	recent := map[uuid.UUID]struct{}{
		recentA.ID: {},
		recentB.ID: {},
	}

	sel, err := PickForDate(uuid.New(), date(2025, time.July, 10),
		[]*domain.GratitudeEntry{recentA, fresh, recentB}, recent, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sel.Entry.ID != fresh.ID {
		t.Error("expected the not-recently-surfaced entry to win")
	}
}

func TestPickForDateFallsBackToRecentPool(t *testing.T) {
	t.Parallel()

	// Both entries were surfaced recently and nothing matches the context:
	// the selector must still pick one, labeled "variety".
	a := testEntry(domain.SeasonSummer)
	b := testEntry(domain.SeasonSummer)
	recent := map[uuid.UUID]struct{}{a.ID: {}, b.ID: {}}

	sel, err := PickForDate(uuid.New(), date(2025, time.December, 1),
		[]*domain.GratitudeEntry{a, b}, recent, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sel.Entry.ID != a.ID && sel.Entry.ID != b.ID {
		t.Fatal("expected one of the recent entries to be selected")
	}

	if sel.Reason != domain.SurfaceReasonVariety {
		t.Errorf("reason = %q, want %q", sel.Reason, domain.SurfaceReasonVariety)
	}
}

func TestPickForDatePrefersHighestScore(t *testing.T) {
	t.Parallel()

	holiday := testEntry(domain.SeasonWinter, "Christmas")
	seasonal := testEntry(domain.SeasonWinter)
	offSeason := testEntry(domain.SeasonSummer)

	sel, err := PickForDate(uuid.New(), date(2025, time.December, 20),
		[]*domain.GratitudeEntry{offSeason, seasonal, holiday}, noRecent, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sel.Entry.ID != holiday.ID {
		t.Error("expected the holiday-matched entry to outscore the others")
	}

	if sel.Reason != "holiday:Christmas" {
		t.Errorf("reason = %q, want holiday:Christmas", sel.Reason)
	}
}

func TestPickForDateReasons(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name   string
		entry  *domain.GratitudeEntry
		day    time.Time
		reason string
	}{
		{
			name:   "season reason when only the season matches",
			entry:  testEntry(domain.SeasonWinter),
			day:    date(2025, time.January, 20),
			reason: "season:winter",
		},
		{
			name:   "random reason without any match",
			entry:  testEntry(domain.SeasonSummer),
			day:    date(2025, time.January, 20),
			reason: domain.SurfaceReasonRandom,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			sel, err := PickForDate(uuid.New(), tc.day,
				[]*domain.GratitudeEntry{tc.entry}, noRecent, DefaultParams())
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sel.Reason != tc.reason {
				t.Errorf("reason = %q, want %q", sel.Reason, tc.reason)
			}
		})
	}
}

func TestPickForDateClosestHolidayWinsTheReason(t *testing.T) {
	t.Parallel()

	// December 28: both Christmas (passed, next year ~362 days, outside its
	// window) and New Year (4 days out) are in the table; only New Year is
	// upcoming, so the reason must name it even though the entry also
	// carries Christmas.
	entry := testEntry(domain.SeasonWinter, "Christmas", "New Year")

	sel, err := PickForDate(uuid.New(), date(2025, time.December, 28),
		[]*domain.GratitudeEntry{entry}, noRecent, DefaultParams())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if sel.Reason != "holiday:New Year" {
		t.Errorf("reason = %q, want holiday:New Year", sel.Reason)
	}
}
