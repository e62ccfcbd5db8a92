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
	s3Mocks "tourdesk/infras/s3/mocks"
	settingsMocks "tourdesk/internal/domains/settings/mocks"
	"tourdesk/internal/domains/settings/model"
	"tourdesk/internal/domains/settings/model/dto"
	"tourdesk/internal/domains/settings/service"
	"tourdesk/shared/base64"
	cacheMocks "tourdesk/shared/cache/mocks"
	"tourdesk/shared/constant"
	"tourdesk/shared/failure"
)

type fixture struct {
	repo  *settingsMocks.MockSettings
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Settings
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  settingsMocks.NewMockSettings(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600
	cfg.Document.CurrencyLabel = "IDR"
	cfg.Document.Defaults.AgencyName = "Default Travel"
	cfg.Document.Defaults.FooterNote = "Thank you for travelling with us."
	cfg.Document.Defaults.Terms = "Prices are subject to availability."

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func TestSettingsService_Get(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantNil   bool
		wantErr   bool
	}{
		{
			name: "absent settings give nil",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{}, nil)
			},
			wantNil: true,
		},
		{
			name: "stored settings",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.AgencySettings{ID: model.SingletonID, AgencyName: "Bali Trails"}, nil)
			},
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{}, errors.New("database error"))
			},
			wantNil: true,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Get(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}

			if tt.wantNil {
				assert.Nil(t, res)

				return
			}

			require.NotNil(t, res)
			assert.Equal(t, "Bali Trails", res.AgencyName)
		})
	}
}

func TestSettingsService_Upsert(t *testing.T) {
	logo := base64.Encode("image/png", []byte("png-bytes"))

	tests := []struct {
		name      string
		req       dto.UpsertSettingsRequest
		setupMock func(f fixture)
		wantLogo  string
		wantCode  int
		wantErr   bool
	}{
		{
			name: "first save inserts the row and uploads the logo",
			req:  dto.UpsertSettingsRequest{AgencyName: "Bali Trails", Logo: logo},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{}, nil)
				f.s3.EXPECT().UploadFileBytes(gomock.Any(), "", model.LogoDirectory, gomock.Any(), "image/png", []byte("png-bytes")).
					Return("https://cdn.example.com/settings/logo.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, settings model.AgencySettings) error {
						assert.Equal(t, model.SingletonID, settings.ID)
						assert.Equal(t, "agent-1", settings.CreatedBy)

						return nil
					})
			},
			wantLogo: "https://cdn.example.com/settings/logo.png",
		},
		{
			name: "update keeps the current logo",
			req:  dto.UpsertSettingsRequest{AgencyName: "Bali Trails"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.AgencySettings{ID: model.SingletonID, LogoURL: "https://cdn.example.com/settings/old.png"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
			wantLogo: "https://cdn.example.com/settings/old.png",
		},
		{
			name: "remove logo deletes the stored object",
			req:  dto.UpsertSettingsRequest{AgencyName: "Bali Trails", RemoveLogo: true},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).
					Return(model.AgencySettings{ID: model.SingletonID, LogoURL: "https://cdn.example.com/settings/old.png"}, nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Equal(t, "", fields[model.FieldLogoURL])

						return nil
					})
				f.s3.EXPECT().GetObjectNameFromURL("", "https://cdn.example.com/settings/old.png").Return("settings/old.png")
				f.s3.EXPECT().DeleteFile(gomock.Any(), "", "", "settings/old.png").Return(nil)
			},
		},
		{
			name: "malformed logo is a bad request",
			req:  dto.UpsertSettingsRequest{AgencyName: "Bali Trails", Logo: "not-a-data-uri"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{}, nil)
			},
			wantCode: http.StatusBadRequest,
			wantErr:  true,
		},
		{
			name: "failed insert removes the uploaded logo",
			req:  dto.UpsertSettingsRequest{AgencyName: "Bali Trails", Logo: logo},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{}, nil)
				f.s3.EXPECT().UploadFileBytes(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return("https://cdn.example.com/settings/new.png", nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
				f.s3.EXPECT().DeleteFile(gomock.Any(), "", model.LogoDirectory, gomock.Any()).Return(nil)
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
			res, err := f.svc.Upsert(ctx, tt.req)

			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantLogo, res.LogoURL)
		})
	}
}

func TestSettingsService_Branding(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		check     func(t *testing.T, branding model.Branding)
	}{
		{
			name: "absent settings use configured defaults",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{}, nil)
			},
			check: func(t *testing.T, branding model.Branding) {
				assert.Equal(t, "Default Travel", branding.AgencyName)
				assert.Equal(t, "Thank you for travelling with us.", branding.FooterNote)
				assert.Equal(t, "IDR", branding.CurrencyLabel)
				assert.NotEmpty(t, branding.PrimaryColor)
				assert.False(t, branding.HasLogo())
			},
		},
		{
			name: "lookup failure still brands the document",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{}, errors.New("database error"))
			},
			check: func(t *testing.T, branding model.Branding) {
				assert.Equal(t, "Default Travel", branding.AgencyName)
			},
		},
		{
			name: "stored logo is downloaded",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{
					ID:           model.SingletonID,
					AgencyName:   "Bali Trails",
					PrimaryColor: "#0F766E",
					LogoURL:      "https://cdn.example.com/settings/logo.png",
					Terms:        "Own terms",
				}, nil)
				f.s3.EXPECT().GetObjectNameFromURL("", gomock.Any()).Return("settings/logo.png")
				f.s3.EXPECT().DownloadFile(gomock.Any(), "", "settings/logo.png").Return([]byte("png-bytes"), nil)
			},
			check: func(t *testing.T, branding model.Branding) {
				assert.Equal(t, "Bali Trails", branding.AgencyName)
				assert.Equal(t, "#0F766E", branding.PrimaryColor)
				assert.Equal(t, "Own terms", branding.Terms)
				assert.Equal(t, "PNG", branding.LogoType)
				assert.True(t, branding.HasLogo())
			},
		},
		{
			name: "logo download failure falls back to text header",
			setupMock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.AgencySettings{
					ID:      model.SingletonID,
					LogoURL: "https://cdn.example.com/settings/logo.jpg",
				}, nil)
				f.s3.EXPECT().GetObjectNameFromURL("", gomock.Any()).Return("settings/logo.jpg")
				f.s3.EXPECT().DownloadFile(gomock.Any(), "", "settings/logo.jpg").Return(nil, errors.New("s3 down"))
			},
			check: func(t *testing.T, branding model.Branding) {
				assert.False(t, branding.HasLogo())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			tt.check(t, f.svc.Branding(context.Background()))
		})
	}
}
