package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/setting/model"
	"folio/internal/domains/setting/model/dto"
	"folio/internal/domains/setting/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"

	"github.com/rs/zerolog/log"
)

const cacheGetAllSetting = "setting:get_all"

type Setting interface {
	GetAll(ctx context.Context) (dto.Settings, error)
	GetByKeys(ctx context.Context, keys ...string) (dto.Settings, error)
	Upsert(ctx context.Context, req dto.UpsertSettingsRequest) (dto.Settings, error)
}

type serviceImpl struct {
	repo  repository.Setting
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Setting, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Setting {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context) (res dto.Settings, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAllSetting, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllSetting).Msg("cache hit for settings")

		return res, nil
	}

	res, err = s.load(ctx, gDto.FilterGroup{})
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllSetting, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save settings to cache")
		}
	}()

	return res, nil
}

// GetByKeys returns the requested settings; keys with no row are absent from the result.
func (s *serviceImpl) GetByKeys(ctx context.Context, keys ...string) (res dto.Settings, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByKeys")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(keys) == 0 {
		return dto.Settings{}, nil
	}

	return s.load(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldKey, Value: keys, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	})
}

func (s *serviceImpl) Upsert(ctx context.Context, req dto.UpsertSettingsRequest) (res dto.Settings, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upsert")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Upsert(ctx, req.ToModels(user)); err != nil {
		log.Error().Err(err).Msg("failed to upsert settings")

		return res, fmt.Errorf("failed to upsert settings: %w", err)
	}

	if err := s.cache.Delete(ctx, cacheGetAllSetting); err != nil {
		log.Error().Err(err).Msg("failed to delete settings cache")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, constant.CacheHomepage)
	}()

	return s.GetAll(ctx)
}

func (s *serviceImpl) load(ctx context.Context, filter gDto.FilterGroup) (dto.Settings, error) {
	settings, err := s.repo.GetAll(ctx, gDto.QueryParams{}, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get settings")

		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return dto.Settings{}.FromModels(settings), nil
}
