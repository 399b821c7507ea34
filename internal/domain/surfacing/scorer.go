package surfacing

import (
	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// Score rates one gratitude entry against the current context. The score is
// additive and uncapped:
//
//   - the entry's season equals the context season: +SeasonMatchScore
//   - the entry's season is "any": +AnySeasonScore (only one season rule fires)
//   - each upcoming holiday also present on the entry: +HolidayMatchScore
//
// Recency is deliberately not part of the score; the selector handles repeat
// avoidance by partitioning candidates. Score is stateless and deterministic
// given (entry, ctx).
func Score(entry *domain.GratitudeEntry, ctx Context, params *Params) int {
	score := 0

	if entry.Season == ctx.Season {
		score += params.SeasonMatchScore
	} else if entry.Season == domain.SeasonAny {
		score += params.AnySeasonScore
	}

	for _, holiday := range ctx.Holidays {
		if entryHasHoliday(entry, holiday) {
			score += params.HolidayMatchScore
		}
	}

	return score
}

func entryHasHoliday(entry *domain.GratitudeEntry, name string) bool {
	for _, h := range entry.Holidays {
		if h == name {
			return true
		}
	}
	return false
}
