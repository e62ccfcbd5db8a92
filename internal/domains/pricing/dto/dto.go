package dto

import "tourdesk/internal/domains/pricing"

type QuoteRequest struct {
	PropertyID string `json:"property_id"  validate:"required"`
	RoomTypeID string `json:"room_type_id" validate:"required"`
	CheckIn    string `json:"check_in"     validate:"required,day"`
	CheckOut   string `json:"check_out"    validate:"required,day,dayfrom=CheckIn"`
	Adults     int    `json:"adults"       validate:"gte=0,lte=50"`
	Children   int    `json:"children"     validate:"gte=0,lte=50"`
	ChildAges  []int  `json:"child_ages"   validate:"omitempty,dive,gte=0,lte=17"`
}

func (q QuoteRequest) Guests() pricing.Guests {
	return pricing.Guests{Adults: q.Adults, Children: q.Children, ChildAges: q.ChildAges}
}

type QuoteResponse struct {
	PropertyID     string   `json:"property_id"`
	PropertyName   string   `json:"property_name"`
	RoomTypeID     string   `json:"room_type_id"`
	RoomTypeName   string   `json:"room_type_name"`
	OccupancyType  string   `json:"occupancy_type"`
	RateType       string   `json:"rate_type"`
	CheckIn        string   `json:"check_in"`
	CheckOut       string   `json:"check_out"`
	Nights         int      `json:"nights"`
	Season         *string  `json:"season"`
	OccupancyPrice float64  `json:"occupancy_price"`
	NightlyTotal   float64  `json:"nightly_total"`
	Total          float64  `json:"total"`
	Guests         GuestDTO `json:"guests"`
}

type GuestDTO struct {
	Adults    int   `json:"adults"`
	Children  int   `json:"children"`
	ChildAges []int `json:"child_ages"`
}

func (q *QuoteResponse) FromQuote(quote pricing.Quote, guests pricing.Guests) {
	q.Nights = quote.Nights
	q.OccupancyPrice = quote.OccupancyPrice
	q.NightlyTotal = quote.NightlyTotal
	q.Total = quote.Total

	q.Season = nil
	if quote.Season != nil {
		name := quote.Season.Name
		q.Season = &name
	}

	q.Guests = GuestDTO{Adults: guests.Adults, Children: guests.Children, ChildAges: append([]int{}, guests.ChildAges...)}
}

type FlatRateResponse struct {
	PropertyID   string  `json:"property_id"`
	PropertyName string  `json:"property_name"`
	BasePrice    float64 `json:"base_price"`
	NightlyRate  float64 `json:"nightly_rate"`
}
