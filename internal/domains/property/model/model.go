package model

import (
	"time"

	"tourdesk/internal/domains/pricing"
	"tourdesk/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID          = "id"
	FieldName        = "name"
	FieldLocation    = "location"
	FieldBasePrice   = "base_price"
	FieldStatus      = "status"
	FieldAmenities   = "amenities"
	FieldDescription = "description"
)

const (
	RoomTypeTableName  = "room_types"
	RoomTypeEntityName = "room_type"

	SeasonTableName  = "seasonal_pricing"
	SeasonEntityName = "seasonal_pricing"

	FieldPropertyID = "property_id"
	FieldRoomTypeID = "room_type_id"
	FieldSortOrder  = "sort_order"
)

type Property struct {
	ID          string         `db:"id"`
	Name        string         `db:"name"`
	Location    string         `db:"location"`
	Description string         `db:"description"`
	BasePrice   float64        `db:"base_price"`
	Status      string         `db:"status"`
	Amenities   pq.StringArray `db:"amenities"`
	model.Metadata
}

// OccupancyPrices maps the nullable price_* columns shared by room types and seasons.
type OccupancyPrices struct {
	PriceSGL  *float64 `db:"price_sgl"`
	PriceDBL  *float64 `db:"price_dbl"`
	PriceTWN  *float64 `db:"price_twn"`
	PriceTPL  *float64 `db:"price_tpl"`
	PriceQuad *float64 `db:"price_quad"`
}

func (o OccupancyPrices) Prices() pricing.Prices {
	return pricing.Prices{SGL: o.PriceSGL, DBL: o.PriceDBL, TWN: o.PriceTWN, TPL: o.PriceTPL, Quad: o.PriceQuad}
}

func OccupancyPricesFrom(p pricing.Prices) OccupancyPrices {
	return OccupancyPrices{PriceSGL: p.SGL, PriceDBL: p.DBL, PriceTWN: p.TWN, PriceTPL: p.TPL, PriceQuad: p.Quad}
}

type RoomType struct {
	ID             string  `db:"id"`
	PropertyID     string  `db:"property_id"`
	Name           string  `db:"name"`
	Capacity       int     `db:"capacity"`
	OccupancyType  string  `db:"occupancy_type"`
	RateType       string  `db:"rate_type"`
	ExtraAdultRate float64 `db:"extra_adult_rate"`
	ChildRate      float64 `db:"child_rate"`
	InfantsFree    bool    `db:"infants_free"`
	SortOrder      int     `db:"sort_order"`
	OccupancyPrices
	model.Metadata
}

func (r RoomType) RateTable() pricing.RateTable {
	return pricing.RateTable{
		OccupancyType:  pricing.OccupancyType(r.OccupancyType),
		RateType:       pricing.RateType(r.RateType),
		Prices:         r.Prices(),
		ExtraAdultRate: r.ExtraAdultRate,
		ChildRate:      r.ChildRate,
		InfantsFree:    r.InfantsFree,
	}
}

// SeasonalPricing belongs to a room type, or directly to the property when RoomTypeID is nil.
type SeasonalPricing struct {
	ID               string    `db:"id"`
	PropertyID       string    `db:"property_id"`
	RoomTypeID       *string   `db:"room_type_id"`
	Name             string    `db:"name"`
	StartDate        time.Time `db:"start_date"`
	EndDate          time.Time `db:"end_date"`
	PricingType      string    `db:"pricing_type"`
	MarkupPercentage float64   `db:"markup_percentage"`
	SortOrder        int       `db:"sort_order"`
	OccupancyPrices
	model.Metadata
}

func (s SeasonalPricing) Season() pricing.Season {
	return pricing.Season{
		Name:             s.Name,
		StartDate:        s.StartDate,
		EndDate:          s.EndDate,
		PricingType:      pricing.PricingType(s.PricingType),
		MarkupPercentage: s.MarkupPercentage,
		Prices:           s.Prices(),
	}
}

type RoomTypeDetail struct {
	RoomType
	Seasons []SeasonalPricing
}

// PropertyDetail is a property with its room types and seasons, each in stored order.
type PropertyDetail struct {
	Property
	RoomTypes []RoomTypeDetail
	// Seasons holds legacy property-level seasons without a room type.
	Seasons []SeasonalPricing
}

func (d PropertyDetail) RoomType(id string) (RoomTypeDetail, bool) {
	for _, roomType := range d.RoomTypes {
		if roomType.ID == id {
			return roomType, true
		}
	}

	return RoomTypeDetail{}, false
}

// SeasonsFor returns the seasons that price roomType: its own when it has any, otherwise the
// property-level ones.
func (d PropertyDetail) SeasonsFor(roomType RoomTypeDetail) []pricing.Season {
	source := roomType.Seasons
	if len(source) == 0 {
		source = d.Seasons
	}

	seasons := make([]pricing.Season, len(source))
	for i, season := range source {
		seasons[i] = season.Season()
	}

	return seasons
}

// Assemble nests room types and seasons under their properties, keeping the input order.
func Assemble(properties []Property, roomTypes []RoomType, seasons []SeasonalPricing) []PropertyDetail {
	details := make([]PropertyDetail, len(properties))
	index := make(map[string]int, len(properties))

	for i, property := range properties {
		details[i] = PropertyDetail{Property: property, RoomTypes: []RoomTypeDetail{}, Seasons: []SeasonalPricing{}}
		index[property.ID] = i
	}

	roomIndex := make(map[string][2]int, len(roomTypes))

	for _, roomType := range roomTypes {
		i, ok := index[roomType.PropertyID]
		if !ok {
			continue
		}

		details[i].RoomTypes = append(details[i].RoomTypes, RoomTypeDetail{RoomType: roomType, Seasons: []SeasonalPricing{}})
		roomIndex[roomType.ID] = [2]int{i, len(details[i].RoomTypes) - 1}
	}

	for _, season := range seasons {
		if season.RoomTypeID == nil {
			if i, ok := index[season.PropertyID]; ok {
				details[i].Seasons = append(details[i].Seasons, season)
			}

			continue
		}

		if pos, ok := roomIndex[*season.RoomTypeID]; ok {
			room := &details[pos[0]].RoomTypes[pos[1]]
			room.Seasons = append(room.Seasons, season)
		}
	}

	return details
}
