package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourdesk/config"
	"tourdesk/infras/otel/mocks"
	propertyMocks "tourdesk/internal/domains/property/mocks"
	"tourdesk/internal/domains/property/model"
	"tourdesk/internal/domains/property/model/dto"
	"tourdesk/internal/domains/property/service"
	cacheMocks "tourdesk/shared/cache/mocks"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/failure"
)

type fixture struct {
	repo      *propertyMocks.MockProperty
	roomTypes *propertyMocks.MockRoomType
	seasons   *propertyMocks.MockSeasonalPricing
	cache     *cacheMocks.MockRedisCache
	svc       service.Property
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      propertyMocks.NewMockProperty(ctrl),
		roomTypes: propertyMocks.NewMockRoomType(ctrl),
		seasons:   propertyMocks.NewMockSeasonalPricing(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f.svc = service.New(f.repo, f.roomTypes, f.seasons, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func runInTx(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

func price(v float64) *float64 {
	return &v
}

func villaRequest() dto.CreatePropertyRequest {
	return dto.CreatePropertyRequest{
		Name:      "Villa Sawah",
		Location:  "Ubud",
		BasePrice: 1500000,
		RoomTypes: []dto.RoomTypeRequest{
			{
				Name:          "Deluxe",
				OccupancyType: "DBL",
				RateType:      "per_room",
				PricesRequest: dto.PricesRequest{PriceDBL: price(1000000)},
				Seasons: []dto.SeasonRequest{
					{Name: "High", StartDate: "2026-07-01", EndDate: "2026-08-31", PricingType: "percentage", MarkupPercentage: 20},
				},
			},
		},
		Seasons: []dto.SeasonRequest{
			{Name: "Peak", StartDate: "2026-12-20", EndDate: "2027-01-05", PricingType: "percentage", MarkupPercentage: 35},
		},
	}
}

func TestPropertyService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreatePropertyRequest
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "successful creation",
			req:  villaRequest(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.roomTypes.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil)
				f.seasons.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(2)).Return(nil)
			},
		},
		{
			name: "room type without any price",
			req: dto.CreatePropertyRequest{
				Name:      "Bare",
				RoomTypes: []dto.RoomTypeRequest{{Name: "Empty", OccupancyType: "SGL", RateType: "per_room"}},
			},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
			wantErr:   true,
		},
		{
			name: "duplicate room type id",
			req:  villaRequest(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.roomTypes.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
			wantErr:  true,
		},
		{
			name: "repository error",
			req:  villaRequest(),
			setupMock: func(f fixture) {
				f.repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "agent-1")
			res, err := f.svc.Create(ctx, tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, "Villa Sawah", res.Name)
			require.Len(t, res.RoomTypes, 1)
			assert.Len(t, res.RoomTypes[0].Seasons, 1)
			assert.Len(t, res.Seasons, 1)
		})
	}
}

func TestPropertyService_Get(t *testing.T) {
	roomTypeID := "rt-1"

	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "assembled from repositories on cache miss",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.Property{ID: "p-1", Name: "Villa Sawah"}, nil)
				f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.RoomType{{ID: roomTypeID, PropertyID: "p-1", Name: "Deluxe"}}, nil)
				f.seasons.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.SeasonalPricing{
						{ID: "s-1", PropertyID: "p-1", RoomTypeID: &roomTypeID, Name: "High"},
						{ID: "s-2", PropertyID: "p-1", Name: "Peak"},
					}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
		{
			name: "room type lookup fails",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "p-1"}, nil)
				f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background(), "p-1")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			require.Len(t, res.RoomTypes, 1)
			assert.Equal(t, "High", res.RoomTypes[0].Seasons[0].Name)
			require.Len(t, res.Seasons, 1)
			assert.Equal(t, "Peak", res.Seasons[0].Name)
		})
	}
}

func TestPropertyService_GetAll(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantTotal int
		wantLen   int
		wantErr   bool
	}{
		{
			name: "successful get all",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Property{{ID: "p-1"}, {ID: "p-2"}}, nil)
				f.roomTypes.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.RoomType{}, nil)
				f.seasons.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.SeasonalPricing{}, nil)
			},
			wantTotal: 2,
			wantLen:   2,
		},
		{
			name: "empty page skips children",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
				f.repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Property{}, nil)
			},
		},
		{
			name: "count error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.TotalData)
			assert.Len(t, res.Properties, tt.wantLen)
		})
	}
}

func TestPropertyService_Update(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "replaces children in one transaction",
			setupMock: func(f fixture) {
				gomock.InOrder(
					f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "p-1"}, nil),
					f.repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx),
					f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
					f.seasons.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
					f.roomTypes.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
					f.roomTypes.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
					f.seasons.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
				)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
		{
			name: "children delete fails",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "p-1"}, nil)
				f.repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.seasons.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "agent-1")
			err := f.svc.Update(ctx, dto.UpdatePropertyRequest{CreatePropertyRequest: villaRequest()}, "p-1")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestPropertyService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{ID: "p-1"}, nil)
				f.repo.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(runInTx)
				f.seasons.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.roomTypes.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.repo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Property{}, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(context.Background(), "p-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
