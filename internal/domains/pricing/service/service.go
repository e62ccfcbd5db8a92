package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tourdesk/infras/otel"
	"tourdesk/internal/domains/pricing"
	"tourdesk/internal/domains/pricing/dto"
	propertyService "tourdesk/internal/domains/property/service"
	"tourdesk/shared/constant"
	"tourdesk/shared/failure"
	"tourdesk/shared/timezone"

	"github.com/rs/zerolog/log"
)

// Pricing quotes stays against stored catalog data.
type Pricing interface {
	Quote(ctx context.Context, req dto.QuoteRequest) (dto.QuoteResponse, error)
	Flat(ctx context.Context, propertyID string) (dto.FlatRateResponse, error)
}

type serviceImpl struct {
	properties propertyService.Property
	calculator *pricing.Calculator
	otel       otel.Otel
}

func New(properties propertyService.Property, calculator *pricing.Calculator, otel otel.Otel) Pricing {
	return &serviceImpl{
		properties: properties,
		calculator: calculator,
		otel:       otel,
	}
}

func (s *serviceImpl) Quote(ctx context.Context, req dto.QuoteRequest) (res dto.QuoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Quote")
	defer scope.End()
	defer scope.TraceIfError(&err)

	checkIn, err := timezone.Parse(constant.DayFormat, req.CheckIn)
	if err != nil {
		return res, failure.BadRequest(fmt.Errorf("invalid check_in: %w", err)) //nolint:wrapcheck
	}

	checkOut, err := timezone.Parse(constant.DayFormat, req.CheckOut)
	if err != nil {
		return res, failure.BadRequest(fmt.Errorf("invalid check_out: %w", err)) //nolint:wrapcheck
	}

	detail, err := s.properties.Detail(ctx, req.PropertyID)
	if err != nil {
		return res, err
	}

	roomType, ok := detail.RoomType(req.RoomTypeID)
	if !ok {
		return res, failure.NotFound("room type not found") // nolint:wrapcheck
	}

	guests := req.Guests()
	quote := s.calculator.SeasonalRate(
		roomType.RateTable(),
		detail.SeasonsFor(roomType),
		checkIn,
		guests,
		timezone.NightsBetween(checkIn, checkOut),
	)

	res.FromQuote(quote, guests)
	res.PropertyID = detail.ID
	res.PropertyName = detail.Name
	res.RoomTypeID = roomType.ID
	res.RoomTypeName = roomType.Name
	res.OccupancyType = roomType.OccupancyType
	res.RateType = roomType.RateType
	res.CheckIn = req.CheckIn
	res.CheckOut = req.CheckOut

	scope.SetAttribute("pricing.total", quote.Total)
	log.Debug().Str("property", detail.ID).Str("roomType", roomType.ID).Float64("total", quote.Total).Msg("stay quoted")

	return res, nil
}

func (s *serviceImpl) Flat(ctx context.Context, propertyID string) (res dto.FlatRateResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Flat")
	defer scope.End()
	defer scope.TraceIfError(&err)

	detail, err := s.properties.Detail(ctx, propertyID)
	if err != nil {
		return res, err
	}

	return dto.FlatRateResponse{
		PropertyID:   detail.ID,
		PropertyName: detail.Name,
		BasePrice:    detail.BasePrice,
		NightlyRate:  pricing.FlatRate(detail.BasePrice),
	}, nil
}
