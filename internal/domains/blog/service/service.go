package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/blog/markdown"
	"folio/internal/domains/blog/model"
	"folio/internal/domains/blog/model/dto"
	"folio/internal/domains/blog/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/timezone"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetPost       = "post:get"
	cacheGetPostBySlug = "post:slug"
	cacheGetAllPost    = "post:get_all"
	cacheCountPost     = "post:count"
)

const (
	errMsgPostNotFound     = "post not found"
	errMsgSlugTaken        = "slug already in use"
	errMsgCategoryNotFound = "category not found"
	fallbackSlug           = "post"
	maxSlugAttempts        = 20
)

type Post interface {
	Create(ctx context.Context, req dto.CreatePostRequest) (dto.PostResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPostsResponse, error)
	GetPublished(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPostsResponse, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PostResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.PostResponse, error)
	Update(ctx context.Context, req dto.UpdatePostRequest, id string) (dto.PostResponse, error)
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.Post
	renderer markdown.Renderer
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Post, renderer markdown.Renderer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Post {
	return &serviceImpl{
		repo:     repo,
		renderer: renderer,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePostRequest) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	postSlug, err := s.resolveSlug(ctx, req.Slug, req.Title, constant.Empty)
	if err != nil {
		return res, err
	}

	if req.Excerpt == nil || *req.Excerpt == constant.Empty {
		rendered, renderErr := s.renderer.Render(req.Content)
		if renderErr == nil && rendered.Snippet != constant.Empty {
			req.Excerpt = &rendered.Snippet
		}
	}

	post := req.ToModel(user, postSlug)

	if err = s.repo.Insert(ctx, post); err != nil {
		return res, s.mapWriteError(err, "failed to create post")
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateListings(c)
	}()

	return s.Get(ctx, post.ID)
}

// GetAll lists every post regardless of status, newest first.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Orders = []gDto.SortOrder{
		{Field: model.FieldCreatedAt, Dir: gDto.SortDirDesc, Table: model.TableName},
	}

	return s.list(ctx, req, filter)
}

// GetPublished lists published posts, most recently published first.
func (s *serviceImpl) GetPublished(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPostsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublished")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Orders = []gDto.SortOrder{
		{Field: model.FieldPublishedAt, Dir: gDto.SortDirDesc, Table: model.TableName},
		{Field: model.FieldCreatedAt, Dir: gDto.SortDirDesc, Table: model.TableName},
	}

	published := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{gDto.Filter{
			Field:    model.FieldStatus,
			Value:    model.StatusPublished,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		}},
	}

	if len(filter.Filters) > 0 {
		published.Filters = append(published.Filters, filter)
	}

	return s.list(ctx, req, published)
}

func (s *serviceImpl) Count(ctx context.Context, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPost, gDto.QueryParams{}, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for post count")

		return total, nil
	}

	total, err = s.repo.CountDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count posts")

		return total, fmt.Errorf("failed to count posts: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save post count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	return s.getDetail(ctx, shared.BuildCacheKey(cacheGetPost, id), shared.FilterByID(id, model.FieldID, model.TableName))
}

// GetBySlug returns a published post. Drafts and archived posts are reported as missing.
func (s *serviceImpl) GetBySlug(ctx context.Context, postSlug string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldSlug, Value: postSlug, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldStatus, Value: model.StatusPublished, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}

	return s.getDetail(ctx, shared.BuildCacheKey(cacheGetPostBySlug, postSlug), filter)
}

// Update applies the changed fields. The first transition to PUBLISHED stamps published_at;
// later transitions keep the original date.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePostRequest, id string) (res dto.PostResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	post, err := s.repo.Get(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to get post")

		return res, fmt.Errorf("failed to get post: %w", err)
	}

	if post.ID == constant.Empty {
		return res, failure.NotFound(errMsgPostNotFound)
	}

	if req.Slug != nil {
		resolved, err := s.resolveSlug(ctx, *req.Slug, post.Title, post.ID)
		if err != nil {
			return res, err
		}

		req.Slug = &resolved
	}

	updatedFields := shared.TransformFields(req, user)

	if req.Status != nil && *req.Status == model.StatusPublished && post.PublishedAt == nil {
		updatedFields[model.FieldPublishedAt] = timezone.Now()
	}

	if req.CategoryID != nil && *req.CategoryID == constant.Empty {
		updatedFields[model.FieldCategoryID] = nil
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		return res, s.mapWriteError(err, "failed to update post")
	}

	s.invalidatePost(ctx, post)

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateListings(c)
	}()

	return s.Get(ctx, id)
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	post, err := s.repo.Get(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to get post")

		return fmt.Errorf("failed to get post: %w", err)
	}

	if post.ID == constant.Empty {
		return failure.NotFound(errMsgPostNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete post")

		return fmt.Errorf("failed to delete post: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidatePost(c, post)
		s.invalidateListings(c)
	}()

	return nil
}

func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPostsResponse, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPost, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for posts")

		return res, nil
	}

	total, err := s.Count(ctx, filter)
	if err != nil {
		return res, err
	}

	posts, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get posts")

		return res, fmt.Errorf("failed to get posts: %w", err)
	}

	res.FromDetails(posts, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save posts to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) getDetail(ctx context.Context, cacheKey string, filter gDto.FilterGroup) (res dto.PostResponse, err error) {
	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for post")

		return res, nil
	}

	detail, err := s.repo.GetDetail(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to get post")

		return res, fmt.Errorf("failed to get post: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound(errMsgPostNotFound)
	}

	rendered, err := s.renderer.Render(detail.Content)
	if err != nil {
		log.Error().Err(err).Str("post", detail.ID).Msg("failed to render post content")

		return res, fmt.Errorf("failed to render post content: %w", err)
	}

	res.FromDetail(detail, rendered.HTML)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save post to cache")
		}
	}()

	return res, nil
}

// resolveSlug normalises the requested slug, or derives one from the title. A derived slug gets
// a numeric suffix until it is free; an explicitly requested slug that is taken is a conflict.
func (s *serviceImpl) resolveSlug(ctx context.Context, requested, title, excludeID string) (string, error) {
	explicit := requested != constant.Empty

	base := slug.Make(requested)
	if !explicit {
		base = slug.Make(title)
	}

	if base == constant.Empty {
		base = fallbackSlug
	}

	candidate := base

	for attempt := 2; attempt <= maxSlugAttempts+1; attempt++ {
		filter := gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{Field: model.FieldSlug, Value: candidate, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		}

		if excludeID != constant.Empty {
			filter.Filters = append(filter.Filters, gDto.Filter{
				Field:    model.FieldID,
				Value:    excludeID,
				Operator: gDto.FilterOperatorNotEq,
				Table:    model.TableName,
			})
		}

		exist, err := s.repo.Exist(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to check slug availability")

			return constant.Empty, fmt.Errorf("failed to check slug availability: %w", err)
		}

		if !exist {
			return candidate, nil
		}

		if explicit {
			return constant.Empty, failure.Conflict(errMsgSlugTaken)
		}

		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}

	return constant.Empty, failure.Conflict(errMsgSlugTaken)
}

func (s *serviceImpl) mapWriteError(err error, msg string) error {
	switch {
	case shared.IsPqError(err, constant.PqErrorCodeUniqueViolation):
		return failure.Conflict(errMsgSlugTaken)
	case shared.IsPqError(err, constant.PqErrorCodeFkViolation, constant.PqErrorCodeInvalidText):
		return failure.BadRequestFromString(errMsgCategoryNotFound)
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func (s *serviceImpl) invalidatePost(ctx context.Context, post model.Post) {
	keys := []string{
		shared.BuildCacheKey(cacheGetPost, post.ID),
		shared.BuildCacheKey(cacheGetPostBySlug, post.Slug),
	}

	for _, key := range keys {
		if err := s.cache.Delete(ctx, key); err != nil {
			log.Error().Err(err).Msg("failed to delete post cache")
		}
	}
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllPost)
	shared.InvalidateCaches(ctx, s.cache, cacheCountPost)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheHomepage)
}
