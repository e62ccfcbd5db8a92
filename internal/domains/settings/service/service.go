package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Settings=MockSettingsService

import (
	"context"
	"fmt"
	"strings"

	"tourdesk/config"
	"tourdesk/infras/otel"
	"tourdesk/infras/s3"
	"tourdesk/internal/domains/settings/model"
	"tourdesk/internal/domains/settings/model/dto"
	"tourdesk/internal/domains/settings/repository"
	"tourdesk/shared"
	"tourdesk/shared/base64"
	"tourdesk/shared/cache"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/failure"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetSettings = "settings:get"

	defaultPrimaryColor = "#1E3A8A"
)

type Settings interface {
	// Get returns nil when no settings row has been saved yet.
	Get(ctx context.Context) (*dto.SettingsResponse, error)
	Upsert(ctx context.Context, req dto.UpsertSettingsRequest) (dto.SettingsResponse, error)
	// Branding never fails: missing settings, lookup errors and unreadable logos fall back to defaults.
	Branding(ctx context.Context) model.Branding
}

type serviceImpl struct {
	repo  repository.Settings
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Settings, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Settings {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

func (s *serviceImpl) Get(ctx context.Context) (res *dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	settings, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	if settings.ID == constant.Empty {
		return nil, nil
	}

	res = &dto.SettingsResponse{}
	res.FromModel(settings)

	return res, nil
}

func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertSettingsRequest) (res dto.SettingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(&err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.repo.Get(ctx, singleton())
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return res, fmt.Errorf("failed to get settings: %w", err)
	}

	logoURL := current.LogoURL
	uploaded := constant.Empty

	switch {
	case req.Logo != constant.Empty:
		logoURL, uploaded, err = s.uploadLogo(ctx, req.Logo)
		if err != nil {
			return res, err
		}
	case req.RemoveLogo:
		logoURL = constant.Empty
	}

	settings := req.ToModel(current, user, logoURL)

	if current.ID == constant.Empty {
		err = s.repo.Insert(ctx, settings)
	} else {
		err = s.repo.Update(ctx, fields(settings), singleton())
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to save settings")

		if uploaded != constant.Empty {
			_ = s.s3.DeleteFile(ctx, constant.Empty, model.LogoDirectory, uploaded)
		}

		return res, fmt.Errorf("failed to save settings: %w", err)
	}

	if current.LogoURL != constant.Empty && current.LogoURL != logoURL {
		s.deleteLogo(ctx, current.LogoURL)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, cacheGetSettings); err != nil {
			log.Error().Err(err).Msg("failed to delete settings cache")
		}
	}()

	res.FromModel(settings)

	return res, nil
}

func (s *serviceImpl) Branding(ctx context.Context) model.Branding {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Branding")
	defer scope.End()

	settings, err := s.load(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Warn().Err(err).Msg("settings unavailable, rendering with defaults")
	}

	defaults := s.cfg.Document.Defaults
	branding := model.Branding{
		AgencyName:    fallback(settings.AgencyName, defaults.AgencyName),
		PrimaryColor:  fallback(settings.PrimaryColor, defaults.Color, defaultPrimaryColor),
		Email:         settings.Email,
		Phone:         settings.Phone,
		Address:       settings.Address,
		Website:       settings.Website,
		TaxNumber:     settings.TaxNumber,
		BankDetails:   settings.BankDetails,
		FooterNote:    fallback(settings.FooterNote, defaults.FooterNote),
		Terms:         fallback(settings.Terms, defaults.Terms),
		CurrencyLabel: s.cfg.Document.CurrencyLabel,
	}

	if settings.LogoURL == constant.Empty {
		return branding
	}

	objectName := s.s3.GetObjectNameFromURL(constant.Empty, settings.LogoURL)
	if objectName == constant.Empty {
		log.Warn().Str("url", settings.LogoURL).Msg("logo is not stored in the configured bucket")

		return branding
	}

	logo, err := s.s3.DownloadFile(ctx, constant.Empty, objectName)
	if err != nil {
		log.Warn().Err(err).Str("object", objectName).Msg("failed to download logo, using text header")

		return branding
	}

	branding.Logo = logo
	branding.LogoType = logoType(objectName)

	return branding
}

func (s *serviceImpl) load(ctx context.Context) (res model.AgencySettings, err error) {
	err = s.cache.Get(ctx, cacheGetSettings, &res)
	if err == nil {
		return res, nil
	}

	res, err = s.repo.Get(ctx, singleton())
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return res, fmt.Errorf("failed to get settings: %w", err)
	}

	if res.ID == constant.Empty {
		return res, nil
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetSettings, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) uploadLogo(ctx context.Context, dataURI string) (url, objectName string, err error) {
	contentType, data, err := base64.Decode(dataURI)
	if err != nil {
		return constant.Empty, constant.Empty, failure.BadRequest(err) //nolint:wrapcheck
	}

	objectName = uuid.NewString() + "." + strings.TrimPrefix(contentType, "image/")

	url, err = s.s3.UploadFileBytes(ctx, constant.Empty, model.LogoDirectory, objectName, contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload logo")

		return constant.Empty, constant.Empty, fmt.Errorf("failed to upload logo: %w", err)
	}

	return url, objectName, nil
}

func (s *serviceImpl) deleteLogo(ctx context.Context, url string) {
	objectName := s.s3.GetObjectNameFromURL(constant.Empty, url)
	if objectName == constant.Empty {
		return
	}

	// Object keys carry the directory already.
	if err := s.s3.DeleteFile(ctx, constant.Empty, constant.Empty, objectName); err != nil {
		log.Error().Err(err).Str("object", objectName).Msg("failed to delete previous logo")
	}
}

func singleton() gDto.FilterGroup {
	return shared.FilterByID(model.SingletonID, model.FieldID, model.TableName)
}

func fields(settings model.AgencySettings) map[string]any {
	return map[string]any{
		"agency_name":            settings.AgencyName,
		model.FieldLogoURL:       settings.LogoURL,
		"primary_color":          settings.PrimaryColor,
		"email":                  settings.Email,
		"phone":                  settings.Phone,
		"address":                settings.Address,
		"website":                settings.Website,
		"tax_number":             settings.TaxNumber,
		"bank_details":           settings.BankDetails,
		"footer_note":            settings.FooterNote,
		"terms":                  settings.Terms,
		constant.FieldModifiedAt: settings.ModifiedAt,
		constant.FieldModifiedBy: settings.ModifiedBy,
	}
}

func fallback(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != constant.Empty {
			return value
		}
	}

	return constant.Empty
}

// logoType maps an object name to the image type name the PDF writer expects.
func logoType(objectName string) string {
	switch strings.ToLower(objectName[strings.LastIndex(objectName, ".")+1:]) {
	case "png":
		return "PNG"
	case "jpg", "jpeg":
		return "JPG"
	default:
		return constant.Empty
	}
}
