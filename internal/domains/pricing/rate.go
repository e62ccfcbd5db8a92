package pricing

import "slices"

// OccupancyType is the occupancy bucket a room type is sold at.
type OccupancyType string

const (
	OccupancySingle    OccupancyType = "SGL"
	OccupancyDouble    OccupancyType = "DBL"
	OccupancyTwin      OccupancyType = "TWN"
	OccupancyTriple    OccupancyType = "TPL"
	OccupancyQuad      OccupancyType = "Quad"
	OccupancyPerRoom   OccupancyType = "Per Room"
	OccupancyPerPerson OccupancyType = "Per Person"
)

var nominalCapacity = map[OccupancyType]int{
	OccupancySingle:    1,
	OccupancyDouble:    2,
	OccupancyTwin:      2,
	OccupancyTriple:    3,
	OccupancyQuad:      4,
	OccupancyPerRoom:   2,
	OccupancyPerPerson: 1,
}

func (o OccupancyType) Valid() bool {
	_, ok := nominalCapacity[o]

	return ok
}

// NominalCapacity is the number of adults included in the occupancy price. Unknown types count as 1.
func (o OccupancyType) NominalCapacity() int {
	if capacity, ok := nominalCapacity[o]; ok {
		return capacity
	}

	return 1
}

type RateType string

const (
	RatePerRoom   RateType = "per_room"
	RatePerPerson RateType = "per_person"
)

type PricingType string

const (
	PricingPercentage PricingType = "percentage"
	PricingFixed      PricingType = "fixed"
)

// Prices is the five-slot occupancy grid. A nil slot means the occupancy is not offered.
type Prices struct {
	SGL  *float64 `json:"price_sgl"`
	DBL  *float64 `json:"price_dbl"`
	TWN  *float64 `json:"price_twn"`
	TPL  *float64 `json:"price_tpl"`
	Quad *float64 `json:"price_quad"`
}

func (p Prices) slots() []*float64 {
	return []*float64{p.SGL, p.DBL, p.TWN, p.TPL, p.Quad}
}

var slotOrder = []OccupancyType{OccupancySingle, OccupancyDouble, OccupancyTwin, OccupancyTriple, OccupancyQuad}

func (p Prices) exact(occupancy OccupancyType) *float64 {
	switch occupancy {
	case OccupancySingle:
		return p.SGL
	case OccupancyDouble:
		return p.DBL
	case OccupancyTwin:
		return p.TWN
	case OccupancyTriple:
		return p.TPL
	case OccupancyQuad:
		return p.Quad
	default:
		return nil
	}
}

// Slot names the grid slot occupancy is priced from. Per Room and Per Person have no slot of
// their own and use the first offered slot from SGL through Quad; with nothing offered the
// occupancy is returned unchanged.
func (p Prices) Slot(occupancy OccupancyType) OccupancyType {
	if slices.Contains(slotOrder, occupancy) {
		return occupancy
	}

	for _, slot := range slotOrder {
		if p.exact(slot) != nil {
			return slot
		}
	}

	return occupancy
}

// For returns the price of the slot occupancy is priced from, nil when not offered.
func (p Prices) For(occupancy OccupancyType) *float64 {
	return p.exact(p.Slot(occupancy))
}

// Offered reports whether at least one occupancy slot is set.
func (p Prices) Offered() bool {
	for _, slot := range p.slots() {
		if slot != nil {
			return true
		}
	}

	return false
}

// Lowest returns the cheapest offered slot, ignoring absent ones.
func (p Prices) Lowest() (float64, bool) {
	lowest, found := 0.0, false

	for _, slot := range p.slots() {
		if slot == nil {
			continue
		}

		if !found || *slot < lowest {
			lowest, found = *slot, true
		}
	}

	return lowest, found
}

// RateTable is the static price grid of one room type.
type RateTable struct {
	OccupancyType  OccupancyType `json:"occupancy_type"`
	RateType       RateType      `json:"rate_type"`
	Prices         Prices        `json:"prices"`
	ExtraAdultRate float64       `json:"extra_adult_rate"`
	ChildRate      float64       `json:"child_rate"`
	InfantsFree    bool          `json:"infants_free"`
}

// Price is a convenience for building optional slots.
func Price(v float64) *float64 {
	return &v
}
