package surfacing

import (
	"time"

	"github.com/seedling-labs/gratitude-api/internal/domain"
)

// Holiday describes one entry of the holiday table: a fixed month/day
// occurrence and the number of days ahead of it during which related
// memories should start surfacing.
type Holiday struct {
	Name       string
	Month      time.Month
	Day        int
	WindowDays int
}

// DefaultHolidays returns the holiday table. The dates are deliberate fixed
// approximations (Easter, Mother's Day, Thanksgiving and friends float in
// reality) carried over from the product definition.
func DefaultHolidays() []Holiday {
	return []Holiday{
		{Name: "New Year", Month: time.January, Day: 1, WindowDays: 5},
		{Name: "Valentine's Day", Month: time.February, Day: 14, WindowDays: 7},
		{Name: "St. Patrick's Day", Month: time.March, Day: 17, WindowDays: 3},
		{Name: "Easter", Month: time.April, Day: 15, WindowDays: 7},
		{Name: "Mother's Day", Month: time.May, Day: 12, WindowDays: 7},
		{Name: "Memorial Day", Month: time.May, Day: 27, WindowDays: 5},
		{Name: "Father's Day", Month: time.June, Day: 16, WindowDays: 7},
		{Name: "Independence Day", Month: time.July, Day: 4, WindowDays: 5},
		{Name: "Labor Day", Month: time.September, Day: 2, WindowDays: 3},
		{Name: "Halloween", Month: time.October, Day: 31, WindowDays: 7},
		{Name: "Thanksgiving", Month: time.November, Day: 28, WindowDays: 10},
		{Name: "Christmas", Month: time.December, Day: 25, WindowDays: 14},
	}
}

// Context is the seasonal state the scorer evaluates entries against:
// the season of the selection date and the holidays currently inside
// their surfacing windows, in table order.
type Context struct {
	Season   domain.Season
	Holidays []string
}

// SeasonOn returns the meteorological season of the given date:
// spring for March-May, summer for June-August, fall for September-November,
// winter for December-February.
func SeasonOn(t time.Time) domain.Season {
	switch t.UTC().Month() {
	case time.March, time.April, time.May:
		return domain.SeasonSpring
	case time.June, time.July, time.August:
		return domain.SeasonSummer
	case time.September, time.October, time.November:
		return domain.SeasonFall
	default:
		return domain.SeasonWinter
	}
}

// daysUntil returns the number of whole days from the given date to the
// holiday's next occurrence, rolling over to next year if this year's
// occurrence has already passed.
func daysUntil(h Holiday, t time.Time) int {
	today := domain.TruncateToDate(t)

	occurrence := time.Date(today.Year(), h.Month, h.Day, 0, 0, 0, 0, time.UTC)
	if occurrence.Before(today) {
		occurrence = time.Date(today.Year()+1, h.Month, h.Day, 0, 0, 0, 0, time.UTC)
	}

	return int(occurrence.Sub(today).Hours() / 24)
}

// IsUpcoming reports whether the holiday's next occurrence falls within its
// surfacing window from the given date. The boundary day (exactly
// WindowDays before) counts as upcoming.
func (h Holiday) IsUpcoming(t time.Time) bool {
	return daysUntil(h, t) <= h.WindowDays
}

// UpcomingHolidays returns the names of all holidays currently inside their
// windows, preserving table order.
func UpcomingHolidays(table []Holiday, t time.Time) []string {
	var upcoming []string
	for _, h := range table {
		if h.IsUpcoming(t) {
			upcoming = append(upcoming, h.Name)
		}
	}
	return upcoming
}

// ClosestUpcomingHoliday returns the upcoming holiday with the fewest days
// until its occurrence. Ties are broken by table order. The second return
// value is false when no holiday is inside its window.
func ClosestUpcomingHoliday(table []Holiday, t time.Time) (Holiday, bool) {
	var closest Holiday
	closestDays := -1

	for _, h := range table {
		days := daysUntil(h, t)
		if days > h.WindowDays {
			continue
		}
		if closestDays < 0 || days < closestDays {
			closest = h
			closestDays = days
		}
	}

	return closest, closestDays >= 0
}

// ContextOn builds the scoring context for the given date.
func ContextOn(table []Holiday, t time.Time) Context {
	return Context{
		Season:   SeasonOn(t),
		Holidays: UpcomingHolidays(table, t),
	}
}
