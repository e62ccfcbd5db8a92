package pricing

import (
	"time"

	"tourdesk/shared/timezone"
)

// Season overrides a rate table inside an inclusive calendar date range.
type Season struct {
	Name             string      `json:"name"`
	StartDate        time.Time   `json:"start_date"`
	EndDate          time.Time   `json:"end_date"`
	PricingType      PricingType `json:"pricing_type"`
	MarkupPercentage float64     `json:"markup_percentage"`
	Prices           Prices      `json:"prices"`
}

// Contains compares calendar dates only, both bounds inclusive.
func (s Season) Contains(day time.Time) bool {
	d := timezone.Day(day)

	return !d.Before(timezone.Day(s.StartDate)) && !d.After(timezone.Day(s.EndDate))
}

// SeasonResolver picks the season that applies on day, or nil.
type SeasonResolver interface {
	Resolve(seasons []Season, day time.Time) *Season
}

// ResolverFunc adapts a function to SeasonResolver.
type ResolverFunc func(seasons []Season, day time.Time) *Season

func (f ResolverFunc) Resolve(seasons []Season, day time.Time) *Season {
	return f(seasons, day)
}

// FirstMatch walks seasons in stored order and returns the first one containing day.
// Overlapping seasons are therefore decided by position.
type FirstMatch struct{}

func (FirstMatch) Resolve(seasons []Season, day time.Time) *Season {
	for i := range seasons {
		if seasons[i].Contains(day) {
			season := seasons[i]

			return &season
		}
	}

	return nil
}

// ResolveSeason applies the FirstMatch strategy.
func ResolveSeason(seasons []Season, day time.Time) *Season {
	return FirstMatch{}.Resolve(seasons, day)
}
