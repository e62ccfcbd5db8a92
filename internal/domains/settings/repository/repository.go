package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tourdesk/infras/otel"
	"tourdesk/infras/postgres"
	"tourdesk/internal/domains/settings/model"
	gDto "tourdesk/shared/dto"
	gRepo "tourdesk/shared/repository"
)

type Settings interface {
	Insert(ctx context.Context, model model.AgencySettings) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.AgencySettings, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.AgencySettings]
}

func New(db *postgres.Connection, otel otel.Otel) Settings {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.AgencySettings](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
