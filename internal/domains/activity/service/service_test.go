package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tourdesk/config"
	"tourdesk/infras/otel/mocks"
	activityMocks "tourdesk/internal/domains/activity/mocks"
	"tourdesk/internal/domains/activity/model"
	"tourdesk/internal/domains/activity/model/dto"
	"tourdesk/internal/domains/activity/service"
	cacheMocks "tourdesk/shared/cache/mocks"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
)

func TestActivityService(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := activityMocks.NewMockActivity(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockOtel := mocks.NewOtel()

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc := service.New(mockRepo, cfg, mockCache, mockOtel)
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "agent-1")

	tests := []struct {
		name      string
		run       func() error
		setupMock func()
		wantErr   bool
	}{
		{
			name: "create",
			run: func() error {
				res, err := svc.Create(ctx, dto.CreateActivityRequest{Name: "Rafting", Location: "Ayung", Price: 350000})
				if err == nil {
					assert.Equal(t, constant.StatusActive, res.Status)
				}

				return err
			},
			setupMock: func() {
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "get all",
			run: func() error {
				res, err := svc.GetAll(ctx, gDto.QueryParams{Page: 1, Limit: 10}, gDto.FilterGroup{})
				if err == nil {
					assert.Len(t, res.Activities, 1)
				}

				return err
			},
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
				mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
				mockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
					Return([]model.Activity{{ID: "a-1", Name: "Rafting"}}, nil)
			},
		},
		{
			name: "get missing",
			run: func() error {
				_, err := svc.Get(ctx, "a-404")

				return err
			},
			setupMock: func() {
				mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Activity{}, nil)
			},
			wantErr: true,
		},
		{
			name: "update",
			run: func() error {
				return svc.Update(ctx, dto.UpdateActivityRequest{Name: "Night Rafting"}, "a-1")
			},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "delete missing",
			run: func() error {
				return svc.Delete(ctx, "a-404")
			},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			err := tt.run()

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
