package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourdesk/infras/otel/mocks"
	"tourdesk/internal/domains/pricing"
	"tourdesk/internal/domains/pricing/dto"
	"tourdesk/internal/domains/pricing/service"
	propertyMocks "tourdesk/internal/domains/property/mocks"
	propertyModel "tourdesk/internal/domains/property/model"
	"tourdesk/shared/failure"
)

func price(v float64) *float64 {
	return &v
}

func day(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)

	return t
}

func villa() propertyModel.PropertyDetail {
	deluxe := propertyModel.RoomTypeDetail{
		RoomType: propertyModel.RoomType{
			ID:            "rt-deluxe",
			PropertyID:    "p-1",
			Name:          "Deluxe",
			OccupancyType: "DBL",
			RateType:      "per_room",
			ChildRate:     100,
			OccupancyPrices: propertyModel.OccupancyPrices{
				PriceDBL: price(1000),
			},
		},
		Seasons: []propertyModel.SeasonalPricing{
			{Name: "High", StartDate: day("2026-07-01"), EndDate: day("2026-08-31"), PricingType: "percentage", MarkupPercentage: 20},
		},
	}

	plain := propertyModel.RoomTypeDetail{
		RoomType: propertyModel.RoomType{
			ID:              "rt-plain",
			PropertyID:      "p-1",
			Name:            "Plain",
			OccupancyType:   "SGL",
			RateType:        "per_room",
			OccupancyPrices: propertyModel.OccupancyPrices{PriceSGL: price(500)},
		},
	}

	return propertyModel.PropertyDetail{
		Property:  propertyModel.Property{ID: "p-1", Name: "Villa Sawah", BasePrice: 750},
		RoomTypes: []propertyModel.RoomTypeDetail{deluxe, plain},
		Seasons: []propertyModel.SeasonalPricing{
			{Name: "Peak", StartDate: day("2026-12-20"), EndDate: day("2027-01-05"), PricingType: "fixed", OccupancyPrices: propertyModel.OccupancyPrices{PriceSGL: price(800)}},
		},
	}
}

func TestPricingService_Quote(t *testing.T) {
	tests := []struct {
		name       string
		req        dto.QuoteRequest
		detailErr  error
		wantSeason string
		wantTotal  float64
		wantCode   int
		wantErr    bool
	}{
		{
			name:       "room type season applies on check-in",
			req:        dto.QuoteRequest{PropertyID: "p-1", RoomTypeID: "rt-deluxe", CheckIn: "2026-07-10", CheckOut: "2026-07-13", Adults: 2, Children: 1},
			wantSeason: "High",
			wantTotal:  3 * (1200 + 100),
		},
		{
			name:      "no season outside ranges",
			req:       dto.QuoteRequest{PropertyID: "p-1", RoomTypeID: "rt-deluxe", CheckIn: "2026-03-01", CheckOut: "2026-03-03", Adults: 2},
			wantTotal: 2000,
		},
		{
			name:       "legacy property season for room type without its own",
			req:        dto.QuoteRequest{PropertyID: "p-1", RoomTypeID: "rt-plain", CheckIn: "2026-12-31", CheckOut: "2027-01-02", Adults: 1},
			wantSeason: "Peak",
			wantTotal:  1600,
		},
		{
			name:     "unknown room type",
			req:      dto.QuoteRequest{PropertyID: "p-1", RoomTypeID: "rt-missing", CheckIn: "2026-03-01", CheckOut: "2026-03-02"},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
		{
			name:      "property lookup fails",
			req:       dto.QuoteRequest{PropertyID: "p-9", RoomTypeID: "rt-deluxe", CheckIn: "2026-03-01", CheckOut: "2026-03-02"},
			detailErr: failure.NotFound("property not found"),
			wantCode:  http.StatusNotFound,
			wantErr:   true,
		},
		{
			name:     "malformed date",
			req:      dto.QuoteRequest{PropertyID: "p-1", RoomTypeID: "rt-deluxe", CheckIn: "10/07/2026", CheckOut: "2026-07-13"},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			properties := propertyMocks.NewMockPropertyService(ctrl)
			properties.EXPECT().Detail(gomock.Any(), tt.req.PropertyID).Return(villa(), tt.detailErr).MaxTimes(1)

			svc := service.New(properties, pricing.NewCalculator(nil), mocks.NewOtel())

			res, err := svc.Quote(context.Background(), tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.InDelta(t, tt.wantTotal, res.Total, 1e-9)

			if tt.wantSeason == "" {
				assert.Nil(t, res.Season)
			} else {
				require.NotNil(t, res.Season)
				assert.Equal(t, tt.wantSeason, *res.Season)
			}
		})
	}
}

func TestPricingService_Flat(t *testing.T) {
	ctrl := gomock.NewController(t)
	properties := propertyMocks.NewMockPropertyService(ctrl)
	svc := service.New(properties, pricing.NewCalculator(nil), mocks.NewOtel())

	properties.EXPECT().Detail(gomock.Any(), "p-1").Return(villa(), nil)
	properties.EXPECT().Detail(gomock.Any(), "p-9").Return(propertyModel.PropertyDetail{}, errors.New("database error"))

	res, err := svc.Flat(context.Background(), "p-1")
	require.NoError(t, err)
	assert.InDelta(t, 750.0, res.NightlyRate, 1e-9)

	_, err = svc.Flat(context.Background(), "p-9")
	assert.Error(t, err)
}
