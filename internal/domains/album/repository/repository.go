package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"folio/infras/otel"
	"folio/infras/postgres"
	"folio/internal/domains/album/model"
	gDto "folio/shared/dto"
	gRepo "folio/shared/repository"
)

type Album interface {
	Insert(ctx context.Context, model model.Album) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Album, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Album, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Album]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Album {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Album](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
