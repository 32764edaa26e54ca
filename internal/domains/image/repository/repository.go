package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"folio/infras/otel"
	"folio/infras/postgres"
	"folio/internal/domains/image/model"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/logger"
	gRepo "folio/shared/repository"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// imageOrderLockKey serialises display order assignment across concurrent uploads.
const imageOrderLockKey = 7_301_001

type Image interface {
	InsertWithNextOrder(ctx context.Context, image model.Image) (int, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Image, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Image, error)
	GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.ImageDetail, error)
	GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ImageDetail, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	ListAssetRefs(ctx context.Context) ([]model.AssetRef, error)
	GetAlbumCovers(ctx context.Context, albumIDs []string) ([]model.Image, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Image]
	detail gRepo.Repository[model.ImageDetail]
	db     *postgres.Connection
	otel   otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Image {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Image](model.EntityName, model.TableName, model.FieldID, db, otel),
		detail:     gRepo.NewRepository[model.ImageDetail](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// InsertWithNextOrder stores the image with display_order set to one past the current maximum.
// The computation and insert run under a transaction scoped advisory lock so two concurrent
// uploads never receive the same order.
func (r *repositoryImpl) InsertWithNextOrder(ctx context.Context, image model.Image) (order int, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".image.InsertWithNextOrder")
	defer scope.End()
	defer scope.TraceIfError(err)

	columns := slices.DeleteFunc(slices.Clone(r.InsertColumns), func(col string) bool {
		return col == model.FieldDisplayOrder
	})

	placeholders := make([]string, len(columns))
	for i, col := range columns {
		placeholders[i] = ":" + col
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s, %s) VALUES (%s, (SELECT COALESCE(MAX(%s), 0) + 1 FROM %s)) RETURNING %s",
		model.TableName, strings.Join(columns, ", "), model.FieldDisplayOrder,
		strings.Join(placeholders, ", "), model.FieldDisplayOrder, model.TableName, model.FieldDisplayOrder,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	tx, err := r.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", imageOrderLockKey); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to lock display order (%s): %w", model.EntityName, err)
	}

	rows, err := sqlx.NamedQueryContext(ctx, tx, query, image)
	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to insert data (%s): %w", model.EntityName, err)
	}

	if rows.Next() {
		err = rows.Scan(&order)
	}

	if closeErr := rows.Close(); err == nil {
		err = closeErr
	}

	if err == nil {
		err = rows.Err()
	}

	if err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to read display order (%s): %w", model.EntityName, err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return 0, fmt.Errorf("failed to commit transaction (%s): %w", model.EntityName, err)
	}

	return order, nil
}

func (r *repositoryImpl) GetDetail(ctx context.Context, filter gDto.FilterGroup) (model.ImageDetail, error) {
	return r.detail.Get(ctx, filter) //nolint:wrapcheck
}

func (r *repositoryImpl) GetAllDetail(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.ImageDetail, error) {
	return r.detail.GetAll(ctx, params, filter) //nolint:wrapcheck
}

// ListAssetRefs returns the storage id and URL of every row, for matching against the bucket.
func (r *repositoryImpl) ListAssetRefs(ctx context.Context) (refs []model.AssetRef, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".image.ListAssetRefs")
	defer scope.End()
	defer scope.TraceIfError(err)

	query := fmt.Sprintf("SELECT %s, %s FROM %s", model.FieldStorageID, model.FieldURL, model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.SelectContext(ctx, &refs, query); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to list asset refs (%s): %w", model.EntityName, err)
	}

	return refs, nil
}

// GetAlbumCovers returns the first active image of each album, by display order.
func (r *repositoryImpl) GetAlbumCovers(ctx context.Context, albumIDs []string) (covers []model.Image, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".image.GetAlbumCovers")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(albumIDs) == 0 {
		return []model.Image{}, nil
	}

	query := fmt.Sprintf(
		"SELECT DISTINCT ON (%[1]s) %[2]s FROM %[3]s WHERE %[1]s = ANY($1) AND %[4]s ORDER BY %[1]s, %[5]s ASC, %[6]s ASC",
		model.FieldAlbumID, strings.Join(r.InsertColumns, ", "), model.TableName,
		model.FieldIsActive, model.FieldDisplayOrder, model.FieldCreatedAt,
	)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	if err = r.db.Read.SelectContext(ctx, &covers, query, pq.Array(albumIDs)); err != nil {
		logger.ErrorWithStack(err)

		return nil, fmt.Errorf("failed to get album covers (%s): %w", model.EntityName, err)
	}

	return covers, nil
}
