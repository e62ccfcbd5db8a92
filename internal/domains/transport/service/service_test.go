package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourdesk/config"
	"tourdesk/infras/otel/mocks"
	transportMocks "tourdesk/internal/domains/transport/mocks"
	"tourdesk/internal/domains/transport/model"
	"tourdesk/internal/domains/transport/model/dto"
	"tourdesk/internal/domains/transport/service"
	cacheMocks "tourdesk/shared/cache/mocks"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/failure"
)

func setup(t *testing.T) (*transportMocks.MockTransport, *cacheMocks.MockRedisCache, service.Transport) {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockRepo := transportMocks.NewMockTransport(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return mockRepo, mockCache, service.New(mockRepo, cfg, mockCache, mocks.NewOtel())
}

func TestTransportService_Create(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.CreateTransportRequest
		setupMock func(repo *transportMocks.MockTransport)
		wantErr   bool
	}{
		{
			name: "successful creation defaults status",
			req:  dto.CreateTransportRequest{Name: "Airport Transfer", VehicleType: "Van", PricePerWay: 4500, Capacity: 8},
			setupMock: func(repo *transportMocks.MockTransport) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, transport model.Transport) error {
						assert.Equal(t, constant.StatusActive, transport.Status)
						assert.Equal(t, "agent-1", transport.CreatedBy)

						return nil
					})
			},
		},
		{
			name: "repository error",
			req:  dto.CreateTransportRequest{Name: "Airport Transfer"},
			setupMock: func(repo *transportMocks.MockTransport) {
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setup(t)
			tt.setupMock(repo)

			ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "agent-1")
			res, err := svc.Create(ctx, tt.req)

			if tt.wantErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.NotEmpty(t, res.ID)
			assert.Equal(t, tt.req.PricePerWay, res.PricePerWay)
		})
	}
}

func TestTransportService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *transportMocks.MockTransport, cache *cacheMocks.MockRedisCache)
		wantCode  int
		wantErr   bool
	}{
		{
			name: "cache hit",
			setupMock: func(_ *transportMocks.MockTransport, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), "transport:get:t-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*dto.TransportResponse) = dto.TransportResponse{ID: "t-1", Name: "Cached"}

						return nil
					})
			},
		},
		{
			name: "cache miss",
			setupMock: func(repo *transportMocks.MockTransport, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Transport{ID: "t-1", Name: "Stored"}, nil)
			},
		},
		{
			name: "not found",
			setupMock: func(repo *transportMocks.MockTransport, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Transport{}, nil)
			},
			wantCode: http.StatusNotFound,
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, cache, svc := setup(t)
			tt.setupMock(repo, cache)

			res, err := svc.Get(context.Background(), "t-1")

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "t-1", res.ID)
		})
	}
}

func TestTransportService_GetAll(t *testing.T) {
	repo, cache, svc := setup(t)

	cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Transport{{ID: "t-1"}, {ID: "t-2"}}, nil)

	res, err := svc.GetAll(context.Background(), gDto.QueryParams{Page: 1, Limit: 2}, gDto.FilterGroup{})

	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)
	assert.Len(t, res.Transports, 2)
}

func TestTransportService_Update(t *testing.T) {
	price := 5000.0

	tests := []struct {
		name      string
		setupMock func(repo *transportMocks.MockTransport)
		wantErr   bool
	}{
		{
			name: "successful update",
			setupMock: func(repo *transportMocks.MockTransport) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, price, fields[model.FieldPricePerWay])
						assert.NotContains(t, fields, model.FieldCapacity)

						return nil
					})
			},
		},
		{
			name: "not found",
			setupMock: func(repo *transportMocks.MockTransport) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setup(t)
			tt.setupMock(repo)

			err := svc.Update(context.Background(), dto.UpdateTransportRequest{PricePerWay: &price}, "t-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTransportService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(repo *transportMocks.MockTransport)
		wantErr   bool
	}{
		{
			name: "successful delete",
			setupMock: func(repo *transportMocks.MockTransport) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "delete error",
			setupMock: func(repo *transportMocks.MockTransport) {
				repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _, svc := setup(t)
			tt.setupMock(repo)

			err := svc.Delete(context.Background(), "t-1")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
