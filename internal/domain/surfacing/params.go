package surfacing

// Params holds the configurable knobs of the daily selection algorithm.
// The holiday table and scoring weights are read-only after construction;
// callers share a single instance.
type Params struct {
	// RecencyWindowDays is how far back surfaced entries are considered
	// "recent" and avoided when fresher candidates exist.
	RecencyWindowDays int

	// Holidays is the table used for upcoming-holiday detection.
	Holidays []Holiday

	// Scoring weights, additive with no cap.
	SeasonMatchScore  int
	AnySeasonScore    int
	HolidayMatchScore int
}

// DefaultParams returns the standard selection parameters.
func DefaultParams() *Params {
	return &Params{
		RecencyWindowDays: 14,
		Holidays:          DefaultHolidays(),
		SeasonMatchScore:  3,
		AnySeasonScore:    1,
		HolidayMatchScore: 5,
	}
}

// ParamsConfig allows overriding selected defaults when creating Params.
type ParamsConfig struct {
	RecencyWindowDays int
}

// NewParams creates Params with the given overrides applied on top of the
// defaults.
func NewParams(config ParamsConfig) *Params {
	params := DefaultParams()

	if config.RecencyWindowDays > 0 {
		params.RecencyWindowDays = config.RecencyWindowDays
	}

	return params
}
