package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"folio/infras/otel"
	"folio/infras/postgres"
	"folio/internal/domains/user/model"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	gRepo "folio/shared/repository"

	"github.com/pkg/errors"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	CountActive(ctx context.Context, level string) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountActive counts active accounts of a level. It reads from the primary because it guards
// writes that must see the latest state.
func (r *repositoryImpl) CountActive(ctx context.Context, level string) (count int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".user.CountActive")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE %s = $1 AND %s", model.TableName, model.FieldLevel, model.FieldActive)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Write.GetContext(ctx, &count, query, level); err != nil {
		return 0, errors.Wrapf(err, "count active %s users", level)
	}

	return count, nil
}
