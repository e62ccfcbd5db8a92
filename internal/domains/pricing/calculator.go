package pricing

import (
	"time"
)

type Guests struct {
	Adults    int   `json:"adults"`
	Children  int   `json:"children"`
	ChildAges []int `json:"child_ages"`
}

// Quote is the outcome of the seasonal pricing path.
type Quote struct {
	Season         *Season `json:"season,omitempty"`
	OccupancyPrice float64 `json:"occupancy_price"`
	NightlyTotal   float64 `json:"nightly_total"`
	Nights         int     `json:"nights"`
	Total          float64 `json:"total"`
}

// EffectivePrice resolves the occupancy price after the season override. The slot is chosen
// from the base grid and a fixed season is read at that same slot. An absent price resolves
// to 0 rather than an error.
func EffectivePrice(table RateTable, season *Season) float64 {
	slot := table.Prices.Slot(table.OccupancyType)
	base := table.Prices.For(slot)

	if season != nil {
		switch season.PricingType {
		case PricingFixed:
			if override := season.Prices.For(slot); override != nil {
				return *override
			}
		case PricingPercentage:
			if base == nil {
				return 0
			}

			return *base * (100 + season.MarkupPercentage) / 100
		}
	}

	if base == nil {
		return 0
	}

	return *base
}

// NightlyTotal is the per-night room price including guest surcharges. Every child is
// charged child_rate; infants_free is not applied.
func NightlyTotal(table RateTable, season *Season, guests Guests) float64 {
	price := EffectivePrice(table, season)
	adults := max(0, guests.Adults)
	children := max(0, guests.Children)

	nightly := price
	if table.RateType == RatePerPerson {
		nightly = price * float64(adults)
	}

	nightly += table.ExtraAdultRate * float64(max(0, adults-table.OccupancyType.NominalCapacity()))
	nightly += table.ChildRate * float64(children)

	return nightly
}

// ComputeStayTotal prices a whole stay. Zero or negative nights give 0 and the result is never negative.
func ComputeStayTotal(table RateTable, season *Season, guests Guests, nights int) float64 {
	if nights <= 0 {
		return 0
	}

	return max(0, NightlyTotal(table, season, guests)*float64(nights))
}

// FlatRate is the ad hoc invoice path: the property's base price per night, floored at 0.
func FlatRate(basePrice float64) float64 {
	return max(0, basePrice)
}

// Calculator runs the seasonal path with a pluggable season resolver.
type Calculator struct {
	resolver SeasonResolver
}

// NewCalculator uses FirstMatch when resolver is nil.
func NewCalculator(resolver SeasonResolver) *Calculator {
	if resolver == nil {
		resolver = FirstMatch{}
	}

	return &Calculator{resolver: resolver}
}

// SeasonalRate resolves the season on checkIn only and prices every night at that season.
func (c *Calculator) SeasonalRate(table RateTable, seasons []Season, checkIn time.Time, guests Guests, nights int) Quote {
	season := c.resolver.Resolve(seasons, checkIn)

	quote := Quote{
		Season:         season,
		OccupancyPrice: EffectivePrice(table, season),
		Nights:         max(0, nights),
		Total:          ComputeStayTotal(table, season, guests, nights),
	}

	if nights > 0 {
		quote.NightlyTotal = NightlyTotal(table, season, guests)
	}

	return quote
}
