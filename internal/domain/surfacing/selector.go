package surfacing

import (
	"errors"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// ErrNoEntries is returned when a user has no gratitude entries to select
// from. Nothing is persisted in that case.
var ErrNoEntries = errors.New("no gratitude entries to surface")

// Selection is the outcome of a daily pick: the chosen entry and the reason
// it won ("holiday:<Name>", "season:<season>", "variety" or "random").
type Selection struct {
	Entry  *domain.GratitudeEntry
	Reason string
}

// PickForDate deterministically selects the entry to surface for a user on
// the given calendar date.
//
// Candidates that appear in recentEntryIDs (surfaced within the recency
// window) are avoided when any fresher entry exists; with nothing fresh the
// full set is used so a small collection still yields a pick. Among the
// preferred pool the highest-scoring entries are kept and ties are broken by
// a hash of (userID, date), so reruns on the same day agree while different
// days rotate through the tied entries.
//
// The entries slice must be in a stable order (the store returns them
// ordered by creation time); determinism depends on it.
func PickForDate(
	userID uuid.UUID,
	date time.Time,
	entries []*domain.GratitudeEntry,
	recentEntryIDs map[uuid.UUID]struct{},
	params *Params,
) (*Selection, error) {
	if len(entries) == 0 {
		return nil, ErrNoEntries
	}

	ctx := ContextOn(params.Holidays, date)

	eligible := make([]*domain.GratitudeEntry, 0, len(entries))
	for _, entry := range entries {
		if _, recent := recentEntryIDs[entry.ID]; !recent {
			eligible = append(eligible, entry)
		}
	}

	forcedRepeat := len(eligible) == 0
	pool := eligible
	if forcedRepeat {
		pool = entries
	}

	best := maxScoreSubset(pool, ctx, params)

	winner := best[0]
	if len(best) > 1 {
		winner = best[tieBreakIndex(userID, date, len(best))]
	}

	return &Selection{
		Entry:  winner,
		Reason: deriveReason(winner, ctx, params, forcedRepeat, date),
	}, nil
}

// maxScoreSubset returns the entries achieving the maximum score, in input
// order.
func maxScoreSubset(pool []*domain.GratitudeEntry, ctx Context, params *Params) []*domain.GratitudeEntry {
	var best []*domain.GratitudeEntry
	bestScore := 0

	for _, entry := range pool {
		score := Score(entry, ctx, params)
		switch {
		case best == nil || score > bestScore:
			best = []*domain.GratitudeEntry{entry}
			bestScore = score
		case score == bestScore:
			best = append(best, entry)
		}
	}

	return best
}

// tieBreakIndex derives a stable index from the user and date so the same
// user gets the same answer on reruns within a day, but a different tied
// entry on other days.
func tieBreakIndex(userID uuid.UUID, date time.Time, n int) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(userID.String()))
	_, _ = h.Write([]byte("|"))
	_, _ = h.Write([]byte(domain.TruncateToDate(date).Format("2006-01-02")))
	return int(h.Sum64() % uint64(n))
}

// deriveReason explains why the winning entry was chosen. Holiday matches
// win over season matches; a forced repeat with no contextual match is
// labeled "variety"; anything else is "random".
func deriveReason(
	entry *domain.GratitudeEntry,
	ctx Context,
	params *Params,
	forcedRepeat bool,
	date time.Time,
) string {
	if name, ok := closestMatchingHoliday(entry, ctx, params, date); ok {
		return domain.SurfaceReasonHolidayPrefix + name
	}

	if entry.Season == ctx.Season {
		return domain.SurfaceReasonSeasonPrefix + string(ctx.Season)
	}

	if forcedRepeat {
		return domain.SurfaceReasonVariety
	}

	return domain.SurfaceReasonRandom
}

// closestMatchingHoliday finds the upcoming holiday associated with the
// entry that occurs soonest.
func closestMatchingHoliday(
	entry *domain.GratitudeEntry,
	ctx Context,
	params *Params,
	date time.Time,
) (string, bool) {
	upcoming := make(map[string]struct{}, len(ctx.Holidays))
	for _, name := range ctx.Holidays {
		upcoming[name] = struct{}{}
	}

	var closestName string
	closestDays := -1

	for _, h := range params.Holidays {
		if _, ok := upcoming[h.Name]; !ok {
			continue
		}
		if !entryHasHoliday(entry, h.Name) {
			continue
		}
		days := daysUntil(h, date)
		if closestDays < 0 || days < closestDays {
			closestName = h.Name
			closestDays = days
		}
	}

	return closestName, closestDays >= 0
}
