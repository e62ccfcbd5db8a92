package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=../mocks/service_mock.go -package=mocks -mock_names=Property=MockPropertyService

import (
	"context"
	"errors"
	"fmt"

	"tourdesk/config"
	"tourdesk/infras/otel"
	"tourdesk/internal/domains/property/model"
	"tourdesk/internal/domains/property/model/dto"
	"tourdesk/internal/domains/property/repository"
	"tourdesk/shared"
	"tourdesk/shared/cache"
	"tourdesk/shared/constant"
	gDto "tourdesk/shared/dto"
	"tourdesk/shared/failure"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:gets"
	cacheCountProperty  = "property:count"
)

var orderedBySortOrder = gDto.QueryParams{SortBy: model.FieldSortOrder, SortDir: gDto.SortDirAsc}

type Property interface {
	Create(ctx context.Context, req dto.CreatePropertyRequest) (dto.PropertyResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPropertiesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	// Detail returns the nested aggregate used by pricing and line-item composition.
	Detail(ctx context.Context, id string) (model.PropertyDetail, error)
	Update(ctx context.Context, req dto.UpdatePropertyRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo       repository.Property
	roomTypes  repository.RoomType
	seasonRepo repository.SeasonalPricing
	cfg        *config.Config
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(
	repo repository.Property,
	roomTypes repository.RoomType,
	seasonRepo repository.SeasonalPricing,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Property {
	return &serviceImpl{
		repo:       repo,
		roomTypes:  roomTypes,
		seasonRepo: seasonRepo,
		cfg:        cfg,
		cache:      cache,
		otel:       otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePropertyRequest) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = req.Check(); err != nil {
		return res, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	detail := req.ToModel(uuid.NewString(), user)

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, detail.Property); err != nil {
			return err
		}

		return s.insertChildren(ctx, tx, detail)
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to create property")

		return res, mapConstraintError(err)
	}

	s.invalidate(ctx)

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for properties")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	properties, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	details, err := s.withChildren(ctx, properties)
	if err != nil {
		return res, err
	}

	res.FromModels(details, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save properties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProperty, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(&err)

	detail, err := s.Detail(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(detail)

	return res, nil
}

func (s *serviceImpl) Detail(ctx context.Context, id string) (res model.PropertyDetail, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Detail")
	defer scope.End()
	defer scope.TraceIfError(&err)

	cacheKey := shared.BuildCacheKey(cacheGetProperty, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property")

		return res, nil
	}

	property, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound("property not found") // nolint:wrapcheck
	}

	details, err := s.withChildren(ctx, []model.Property{property})
	if err != nil {
		return res, err
	}

	res = details[0]

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

// Update replaces the property row and its whole room type and season set in one transaction.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePropertyRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(&err)

	if err = req.Check(); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check property existence")

		return fmt.Errorf("failed to get property: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("property not found") // nolint:wrapcheck
	}

	detail := req.ToModel(id, user)

	fields := map[string]any{
		model.FieldName:          detail.Name,
		model.FieldLocation:      detail.Location,
		model.FieldDescription:   detail.Description,
		model.FieldBasePrice:     detail.BasePrice,
		model.FieldStatus:        detail.Status,
		model.FieldAmenities:     detail.Amenities,
		constant.FieldModifiedAt: detail.ModifiedAt,
		constant.FieldModifiedBy: user,
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.repo.UpdateTx(ctx, tx, fields, filter); err != nil {
			return err
		}

		if err := s.deleteChildren(ctx, tx, id); err != nil {
			return err
		}

		return s.insertChildren(ctx, tx, detail)
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update property")

		return mapConstraintError(err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete removes the property with its room types and seasons.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(&err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to get property: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound("property not found") // nolint:wrapcheck
	}

	err = s.repo.WithTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.deleteChildren(ctx, tx, id); err != nil {
			return err
		}

		return s.repo.DeleteTx(ctx, tx, filter)
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete property")

		return fmt.Errorf("failed to delete property: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) withChildren(ctx context.Context, properties []model.Property) ([]model.PropertyDetail, error) {
	if len(properties) == 0 {
		return []model.PropertyDetail{}, nil
	}

	ids := make([]string, len(properties))
	for i, property := range properties {
		ids[i] = property.ID
	}

	byProperty := shared.FilterByIDs(ids, model.FieldPropertyID, constant.Empty)

	roomTypes, err := s.roomTypes.GetAll(ctx, orderedBySortOrder, byProperty)
	if err != nil {
		log.Error().Err(err).Msg("failed to get room types")

		return nil, fmt.Errorf("failed to get room types: %w", err)
	}

	seasons, err := s.seasonRepo.GetAll(ctx, orderedBySortOrder, byProperty)
	if err != nil {
		log.Error().Err(err).Msg("failed to get seasonal pricing")

		return nil, fmt.Errorf("failed to get seasonal pricing: %w", err)
	}

	return model.Assemble(properties, roomTypes, seasons), nil
}

func (s *serviceImpl) insertChildren(ctx context.Context, tx *sqlx.Tx, detail model.PropertyDetail) error {
	roomTypes := make([]model.RoomType, 0, len(detail.RoomTypes))
	seasons := append([]model.SeasonalPricing{}, detail.Seasons...)

	for _, roomType := range detail.RoomTypes {
		roomTypes = append(roomTypes, roomType.RoomType)
		seasons = append(seasons, roomType.Seasons...)
	}

	if err := s.roomTypes.InsertBulkTx(ctx, tx, roomTypes); err != nil {
		return err
	}

	return s.seasonRepo.InsertBulkTx(ctx, tx, seasons)
}

func (s *serviceImpl) deleteChildren(ctx context.Context, tx *sqlx.Tx, propertyID string) error {
	byProperty := shared.FilterByID(propertyID, model.FieldPropertyID, constant.Empty)

	if err := s.seasonRepo.DeleteTx(ctx, tx, byProperty); err != nil {
		return err
	}

	return s.roomTypes.DeleteTx(ctx, tx, byProperty)
}

func (s *serviceImpl) invalidate(ctx context.Context, ids ...string) {
	go func() {
		c := context.WithoutCancel(ctx)

		for _, id := range ids {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
				log.Error().Err(err).Str("id", id).Msg("failed to delete property cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllProperty)
		shared.InvalidateCaches(c, s.cache, cacheCountProperty)
	}()
}

func mapConstraintError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == constant.PqErrorCodeUniqueViolation {
		return failure.Conflict("room type id already in use") // nolint:wrapcheck
	}

	return fmt.Errorf("failed to save property: %w", err)
}
