package service

//go:generate go run go.uber.org/mock/mockgen -source=./category.go -destination=./mocks/category_mock.go -package=mocks

import (
	"context"
	"fmt"
	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/blog/model"
	"folio/internal/domains/blog/model/dto"
	"folio/internal/domains/blog/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
)

const cacheGetAllCategory = "post:categories"

const errMsgCategoryTaken = "category name or slug already in use"

type Category interface {
	Create(ctx context.Context, req dto.CreateCategoryRequest) (dto.CategoryResponse, error)
	GetAll(ctx context.Context) ([]dto.CategoryResponse, error)
	Delete(ctx context.Context, id string) error
}

type categoryServiceImpl struct {
	repo  repository.Category
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func NewCategory(repo repository.Category, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Category {
	return &categoryServiceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *categoryServiceImpl) Create(ctx context.Context, req dto.CreateCategoryRequest) (res dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	categorySlug := slug.Make(req.Slug)
	if req.Slug == constant.Empty {
		categorySlug = slug.Make(req.Name)
	}

	if categorySlug == constant.Empty {
		return res, failure.BadRequestFromString("category slug could not be derived from name")
	}

	exist, err := s.repo.Exist(ctx, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{Field: model.FieldCategoryName, Value: req.Name, Operator: gDto.FilterOperatorEq, Table: model.CategoryTableName},
			gDto.Filter{Field: model.FieldCategorySlug, Value: categorySlug, Operator: gDto.FilterOperatorEq, Table: model.CategoryTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to check category existence")

		return res, fmt.Errorf("failed to check category existence: %w", err)
	}

	if exist {
		return res, failure.Conflict(errMsgCategoryTaken)
	}

	category := req.ToModel(user, categorySlug)

	if err = s.repo.Insert(ctx, category); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict(errMsgCategoryTaken)
		}

		log.Error().Err(err).Msg("failed to create category")

		return res, fmt.Errorf("failed to create category: %w", err)
	}

	res.FromModel(category)

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c)
	}()

	return res, nil
}

func (s *categoryServiceImpl) GetAll(ctx context.Context) (res []dto.CategoryResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAllCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, cacheGetAllCategory, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheGetAllCategory).Msg("cache hit for post categories")

		return res, nil
	}

	categories, err := s.repo.GetAll(ctx, gDto.QueryParams{
		Orders: []gDto.SortOrder{{Field: model.FieldCategoryName, Dir: gDto.SortDirAsc, Table: model.CategoryTableName}},
	}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get post categories")

		return res, fmt.Errorf("failed to get post categories: %w", err)
	}

	res = dto.FromCategories(categories)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheGetAllCategory, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save post categories to cache")
		}
	}()

	return res, nil
}

// Delete removes the category; posts in it become uncategorised.
func (s *categoryServiceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteCategory")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.CategoryTableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to check category existence")

		return fmt.Errorf("failed to check category existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errMsgCategoryNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete category")

		return fmt.Errorf("failed to delete category: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidate(c)
		shared.InvalidateCaches(c, s.cache, constant.CachePost)
	}()

	return nil
}

func (s *categoryServiceImpl) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cacheGetAllCategory); err != nil {
		log.Error().Err(err).Msg("failed to delete post categories cache")
	}
}
