package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"folio/infras/otel"
	"folio/internal/domains/analytics/model"

	"github.com/redis/go-redis/v9"
)

const (
	otelScopeName     = "analytics.repository"
	otelPathAttribute = "analytics.path"
)

type PageView interface {
	Record(ctx context.Context, path string) error
	Top(ctx context.Context, limit int) ([]model.PageCount, error)
	Total(ctx context.Context) (int64, error)
}

type pageViewImpl struct {
	client *redis.Client
	otel   otel.Otel
}

func New(client *redis.Client, otel otel.Otel) PageView {
	return &pageViewImpl{
		client: client,
		otel:   otel,
	}
}

// Record bumps the path score and the grand total in one MULTI/EXEC.
func (r *pageViewImpl) Record(ctx context.Context, path string) (err error) {
	ctx, scope := r.otel.NewScope(ctx, otelScopeName, otelScopeName+".Record")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(otelPathAttribute, path)

	_, err = r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZIncrBy(ctx, model.KeyPageViews, 1, path)
		pipe.Incr(ctx, model.KeyTotalViews)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record page view: %w", err)
	}

	return nil
}

func (r *pageViewImpl) Top(ctx context.Context, limit int) (res []model.PageCount, err error) {
	ctx, scope := r.otel.NewScope(ctx, otelScopeName, otelScopeName+".Top")
	defer scope.End()
	defer scope.TraceIfError(err)

	entries, err := r.client.ZRevRangeWithScores(ctx, model.KeyPageViews, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get top pages: %w", err)
	}

	res = make([]model.PageCount, 0, len(entries))
	for _, entry := range entries {
		path, ok := entry.Member.(string)
		if !ok {
			continue
		}

		res = append(res, model.PageCount{Path: path, Views: int64(entry.Score)})
	}

	return res, nil
}

func (r *pageViewImpl) Total(ctx context.Context) (res int64, err error) {
	ctx, scope := r.otel.NewScope(ctx, otelScopeName, otelScopeName+".Total")
	defer scope.End()
	defer scope.TraceIfError(err)

	res, err = r.client.Get(ctx, model.KeyTotalViews).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}

	if err != nil {
		return 0, fmt.Errorf("failed to get total page views: %w", err)
	}

	return res, nil
}
