package dto

import (
	"fmt"
	"time"

	"tourdesk/internal/domains/pricing"
	"tourdesk/internal/domains/property/model"
	"tourdesk/shared"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/failure"
	gModel "tourdesk/shared/model"
	"tourdesk/shared/timezone"

	"github.com/google/uuid"
)

type PricesRequest struct {
	PriceSGL  *float64 `json:"price_sgl"  validate:"omitempty,gte=0"`
	PriceDBL  *float64 `json:"price_dbl"  validate:"omitempty,gte=0"`
	PriceTWN  *float64 `json:"price_twn"  validate:"omitempty,gte=0"`
	PriceTPL  *float64 `json:"price_tpl"  validate:"omitempty,gte=0"`
	PriceQuad *float64 `json:"price_quad" validate:"omitempty,gte=0"`
}

func (p PricesRequest) toModel() model.OccupancyPrices {
	return model.OccupancyPrices{
		PriceSGL:  p.PriceSGL,
		PriceDBL:  p.PriceDBL,
		PriceTWN:  p.PriceTWN,
		PriceTPL:  p.PriceTPL,
		PriceQuad: p.PriceQuad,
	}
}

type SeasonRequest struct {
	Name             string  `json:"name"              validate:"required,max=100"`
	StartDate        string  `json:"start_date"        validate:"required,day"`
	EndDate          string  `json:"end_date"          validate:"required,day,dayfrom=StartDate"`
	PricingType      string  `json:"pricing_type"      validate:"required,oneof=percentage fixed"`
	MarkupPercentage float64 `json:"markup_percentage" validate:"gte=-100,lte=1000"`
	PricesRequest
}

type RoomTypeRequest struct {
	ID             string          `json:"id"               validate:"omitempty,uuid"`
	Name           string          `json:"name"             validate:"required,max=100"`
	Capacity       int             `json:"capacity"         validate:"gte=0,lte=50"`
	OccupancyType  string          `json:"occupancy_type"   validate:"required,oneof=SGL DBL TWN TPL Quad 'Per Room' 'Per Person'"`
	RateType       string          `json:"rate_type"        validate:"required,oneof=per_room per_person"`
	ExtraAdultRate float64         `json:"extra_adult_rate" validate:"gte=0"`
	ChildRate      float64         `json:"child_rate"       validate:"gte=0"`
	InfantsFree    bool            `json:"infants_free"`
	Seasons        []SeasonRequest `json:"seasons"          validate:"omitempty,dive"`
	PricesRequest
}

// CreatePropertyRequest is the whole property aggregate. Seasons at the top level are
// property-wide and apply to room types that have none of their own.
type CreatePropertyRequest struct {
	Name        string            `json:"name"        validate:"required,max=150"`
	Location    string            `json:"location"    validate:"omitempty,max=150"`
	Description string            `json:"description" validate:"omitempty,max=2000"`
	BasePrice   float64           `json:"base_price"  validate:"gte=0"`
	Status      string            `json:"status"      validate:"omitempty,oneof=active inactive"`
	Amenities   []string          `json:"amenities"   validate:"omitempty,dive,required,max=60"`
	RoomTypes   []RoomTypeRequest `json:"room_types"  validate:"omitempty,dive"`
	Seasons     []SeasonRequest   `json:"seasons"     validate:"omitempty,dive"`
}

// UpdatePropertyRequest replaces the aggregate, room types and seasons included.
type UpdatePropertyRequest struct {
	CreatePropertyRequest
}

// Check enforces rules the tag validator cannot express.
func (c *CreatePropertyRequest) Check() error {
	for _, roomType := range c.RoomTypes {
		prices := roomType.PricesRequest.toModel().Prices()
		if !prices.Offered() {
			return failure.BadRequestFromString(fmt.Sprintf("room type %s must offer at least one occupancy price", roomType.Name))
		}
	}

	return nil
}

// ToModel builds the aggregate for propertyID. Room type ids from the request are kept so
// that references held by saved documents survive a full update.
func (c *CreatePropertyRequest) ToModel(propertyID, user string) model.PropertyDetail {
	now := timezone.Now()
	metadata := gModel.NewMetadata(user, now)

	status := c.Status
	if status == constant.Empty {
		status = constant.StatusActive
	}

	amenities := c.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	detail := model.PropertyDetail{
		Property: model.Property{
			ID:          propertyID,
			Name:        c.Name,
			Location:    c.Location,
			Description: c.Description,
			BasePrice:   c.BasePrice,
			Status:      status,
			Amenities:   amenities,
			Metadata:    metadata,
		},
		RoomTypes: make([]model.RoomTypeDetail, len(c.RoomTypes)),
		Seasons:   make([]model.SeasonalPricing, len(c.Seasons)),
	}

	for i, season := range c.Seasons {
		detail.Seasons[i] = season.toModel(propertyID, nil, i, metadata)
	}

	for i, roomType := range c.RoomTypes {
		detail.RoomTypes[i] = roomType.toModel(propertyID, i, metadata)
	}

	return detail
}

func (r RoomTypeRequest) toModel(propertyID string, order int, metadata gModel.Metadata) model.RoomTypeDetail {
	id := r.ID
	if id == constant.Empty {
		id = uuid.NewString()
	}

	capacity := r.Capacity
	if capacity == 0 {
		capacity = pricing.OccupancyType(r.OccupancyType).NominalCapacity()
	}

	roomType := model.RoomTypeDetail{
		RoomType: model.RoomType{
			ID:              id,
			PropertyID:      propertyID,
			Name:            r.Name,
			Capacity:        capacity,
			OccupancyType:   r.OccupancyType,
			RateType:        r.RateType,
			ExtraAdultRate:  r.ExtraAdultRate,
			ChildRate:       r.ChildRate,
			InfantsFree:     r.InfantsFree,
			SortOrder:       order,
			OccupancyPrices: r.PricesRequest.toModel(),
			Metadata:        metadata,
		},
		Seasons: make([]model.SeasonalPricing, len(r.Seasons)),
	}

	for i, season := range r.Seasons {
		roomType.Seasons[i] = season.toModel(propertyID, &id, i, metadata)
	}

	return roomType
}

func (s SeasonRequest) toModel(propertyID string, roomTypeID *string, order int, metadata gModel.Metadata) model.SeasonalPricing {
	start, _ := time.Parse(constant.DayFormat, s.StartDate)
	end, _ := time.Parse(constant.DayFormat, s.EndDate)

	return model.SeasonalPricing{
		ID:               uuid.NewString(),
		PropertyID:       propertyID,
		RoomTypeID:       roomTypeID,
		Name:             s.Name,
		StartDate:        start,
		EndDate:          end,
		PricingType:      s.PricingType,
		MarkupPercentage: s.MarkupPercentage,
		SortOrder:        order,
		OccupancyPrices:  s.PricesRequest.toModel(),
		Metadata:         metadata,
	}
}

type PricesResponse struct {
	PriceSGL  *float64 `json:"price_sgl"`
	PriceDBL  *float64 `json:"price_dbl"`
	PriceTWN  *float64 `json:"price_twn"`
	PriceTPL  *float64 `json:"price_tpl"`
	PriceQuad *float64 `json:"price_quad"`
}

func (p *PricesResponse) fromModel(prices model.OccupancyPrices) {
	p.PriceSGL = prices.PriceSGL
	p.PriceDBL = prices.PriceDBL
	p.PriceTWN = prices.PriceTWN
	p.PriceTPL = prices.PriceTPL
	p.PriceQuad = prices.PriceQuad
}

type SeasonResponse struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	PricingType      string  `json:"pricing_type"`
	MarkupPercentage float64 `json:"markup_percentage"`
	PricesResponse
}

func (s *SeasonResponse) FromModel(season model.SeasonalPricing) {
	s.ID = season.ID
	s.Name = season.Name
	s.StartDate = season.StartDate.Format(constant.DayFormat)
	s.EndDate = season.EndDate.Format(constant.DayFormat)
	s.PricingType = season.PricingType
	s.MarkupPercentage = season.MarkupPercentage
	s.PricesResponse.fromModel(season.OccupancyPrices)
}

type RoomTypeResponse struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	Capacity       int              `json:"capacity"`
	OccupancyType  string           `json:"occupancy_type"`
	RateType       string           `json:"rate_type"`
	ExtraAdultRate float64          `json:"extra_adult_rate"`
	ChildRate      float64          `json:"child_rate"`
	InfantsFree    bool             `json:"infants_free"`
	LowestPrice    *float64         `json:"lowest_price"`
	Seasons        []SeasonResponse `json:"seasons"`
	PricesResponse
}

func (r *RoomTypeResponse) FromModel(roomType model.RoomTypeDetail) {
	r.ID = roomType.ID
	r.Name = roomType.Name
	r.Capacity = roomType.Capacity
	r.OccupancyType = roomType.OccupancyType
	r.RateType = roomType.RateType
	r.ExtraAdultRate = roomType.ExtraAdultRate
	r.ChildRate = roomType.ChildRate
	r.InfantsFree = roomType.InfantsFree
	r.PricesResponse.fromModel(roomType.OccupancyPrices)

	r.LowestPrice = nil
	if lowest, ok := roomType.Prices().Lowest(); ok {
		r.LowestPrice = &lowest
	}

	r.Seasons = make([]SeasonResponse, len(roomType.Seasons))
	for i, season := range roomType.Seasons {
		r.Seasons[i].FromModel(season)
	}
}

type PropertyResponse struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	Location    string             `json:"location"`
	Description string             `json:"description"`
	BasePrice   float64            `json:"base_price"`
	Status      string             `json:"status"`
	Amenities   []string           `json:"amenities"`
	RoomTypes   []RoomTypeResponse `json:"room_types"`
	Seasons     []SeasonResponse   `json:"seasons"`
	gDto.Metadata
}

func (p *PropertyResponse) FromModel(detail model.PropertyDetail) {
	p.ID = detail.ID
	p.Name = detail.Name
	p.Location = detail.Location
	p.Description = detail.Description
	p.BasePrice = detail.BasePrice
	p.Status = detail.Status
	p.Amenities = append([]string{}, detail.Amenities...)
	p.Metadata.FromModel(detail.Metadata)

	p.RoomTypes = make([]RoomTypeResponse, len(detail.RoomTypes))
	for i, roomType := range detail.RoomTypes {
		p.RoomTypes[i].FromModel(roomType)
	}

	p.Seasons = make([]SeasonResponse, len(detail.Seasons))
	for i, season := range detail.Seasons {
		p.Seasons[i].FromModel(season)
	}
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(details []model.PropertyDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Properties = make([]PropertyResponse, len(details))
	for i, detail := range details {
		r.Properties[i].FromModel(detail)
	}
}
