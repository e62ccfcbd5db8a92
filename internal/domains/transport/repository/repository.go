package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"tourdesk/infras/otel"
	"tourdesk/infras/postgres"
	"tourdesk/internal/domains/transport/model"
	gDto "tourdesk/shared/dto"
	gRepo "tourdesk/shared/repository"
)

type Transport interface {
	Insert(ctx context.Context, model model.Transport) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Transport, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Transport, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Transport]
}

func New(db *postgres.Connection, otel otel.Otel) Transport {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Transport](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
