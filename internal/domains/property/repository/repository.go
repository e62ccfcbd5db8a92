package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tourdesk/infras/otel"
	"tourdesk/infras/postgres"
	"tourdesk/internal/domains/property/model"
	gDto "tourdesk/shared/dto"
	gRepo "tourdesk/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Property interface {
	WithTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Property) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Property, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Property, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type RoomType interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.RoomType) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.RoomType, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type SeasonalPricing interface {
	InsertBulkTx(ctx context.Context, tx *sqlx.Tx, models []model.SeasonalPricing) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SeasonalPricing, error)
	DeleteTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup) error
}

type propertyRepository struct {
	gRepo.Repository[model.Property]
}

func New(db *postgres.Connection, otel otel.Otel) Property {
	return &propertyRepository{
		Repository: gRepo.NewRepository[model.Property](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

type roomTypeRepository struct {
	gRepo.Repository[model.RoomType]
}

func NewRoomType(db *postgres.Connection, otel otel.Otel) RoomType {
	return &roomTypeRepository{
		Repository: gRepo.NewRepository[model.RoomType](model.RoomTypeEntityName, model.RoomTypeTableName, model.FieldID, db, otel),
	}
}

type seasonalPricingRepository struct {
	gRepo.Repository[model.SeasonalPricing]
}

func NewSeasonalPricing(db *postgres.Connection, otel otel.Otel) SeasonalPricing {
	return &seasonalPricingRepository{
		Repository: gRepo.NewRepository[model.SeasonalPricing](model.SeasonEntityName, model.SeasonTableName, model.FieldID, db, otel),
	}
}
