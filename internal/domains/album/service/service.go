package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/album/model"
	"folio/internal/domains/album/model/dto"
	"folio/internal/domains/album/repository"
	imageModel "folio/internal/domains/image/model"
	imageDto "folio/internal/domains/image/model/dto"
	imageRepository "folio/internal/domains/image/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAlbum       = "album:get"
	cacheGetPublicAlbum = "album:public"
	cacheGetAllAlbum    = "album:get_all"
	cacheCountAlbum     = "album:count"
)

const errMsgAlbumNotFound = "album not found"

type Album interface {
	Create(ctx context.Context, req dto.CreateAlbumRequest) (dto.AlbumResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAlbumsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.AlbumResponse, error)
	GetPublic(ctx context.Context, id string) (dto.AlbumDetailResponse, error)
	Update(ctx context.Context, req dto.UpdateAlbumRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Album
	imageRepo imageRepository.Image
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.Album, imageRepo imageRepository.Image, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Album {
	return &serviceImpl{
		repo:      repo,
		imageRepo: imageRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAlbumRequest) (res dto.AlbumResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	album := req.ToModel(user)

	if err = s.repo.Insert(ctx, album); err != nil {
		log.Error().Err(err).Msg("failed to create album")

		return res, fmt.Errorf("failed to create album: %w", err)
	}

	res.FromModel(album)

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateListings(c)
	}()

	return res, nil
}

// GetAll lists albums by display order, newest first on ties, each with its first active image
// as cover.
func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAlbumsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Orders = []gDto.SortOrder{
		{Field: model.FieldDisplayOrder, Dir: gDto.SortDirAsc, Table: model.TableName},
		{Field: model.FieldCreatedAt, Dir: gDto.SortDirDesc, Table: model.TableName},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAlbum, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for albums")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count albums")

		return res, err
	}

	albums, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get albums")

		return res, fmt.Errorf("failed to get albums: %w", err)
	}

	res.FromModels(albums, total, req.Limit)

	if err = s.attachCovers(ctx, res.Albums); err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save albums to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountAlbum, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for album count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count albums")

		return total, fmt.Errorf("failed to count albums: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save album count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AlbumResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAlbum, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for album")

		return res, nil
	}

	album, err := s.get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(album)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save album to cache")
		}
	}()

	return res, nil
}

// GetPublic returns an active album with its active images. Inactive albums are reported as missing.
func (s *serviceImpl) GetPublic(ctx context.Context, id string) (res dto.AlbumDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetPublic")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetPublicAlbum, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for public album")

		return res, nil
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)
	filter.Operator = gDto.FilterGroupOperatorAnd
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldIsActive,
		Value:    true,
		Operator: gDto.FilterOperatorEq,
		Table:    model.TableName,
	})

	album, err := s.get(ctx, filter)
	if err != nil {
		return res, err
	}

	images, err := s.imageRepo.GetAllDetail(ctx, gDto.QueryParams{
		Orders: []gDto.SortOrder{
			{Field: imageModel.FieldDisplayOrder, Dir: gDto.SortDirAsc, Table: imageModel.TableName},
			{Field: imageModel.FieldCreatedAt, Dir: gDto.SortDirDesc, Table: imageModel.TableName},
		},
	}, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: imageModel.FieldAlbumID, Value: album.ID, Operator: gDto.FilterOperatorEq, Table: imageModel.TableName},
			gDto.Filter{Field: imageModel.FieldIsActive, Value: true, Operator: gDto.FilterOperatorEq, Table: imageModel.TableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get album images")

		return res, fmt.Errorf("failed to get album images: %w", err)
	}

	res.FromModel(album)

	res.Images = make([]imageDto.ImageResponse, len(images))
	for i, image := range images {
		res.Images[i].FromDetail(image)
	}

	if len(res.Images) > 0 {
		first := res.Images[0]
		res.Cover = &dto.CoverImage{ID: first.ID, URL: first.URL, Width: first.Width, Height: first.Height}
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save public album to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAlbumRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to check album existence")

		return fmt.Errorf("failed to check album existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errMsgAlbumNotFound)
	}

	updatedFields := shared.TransformFields(req, user)
	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update album")

		return fmt.Errorf("failed to update album: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateAlbum(c, id)
		s.invalidateListings(c)
	}()

	return nil
}

// Delete removes the album; its images stay in the catalog without an album.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to check album existence")

		return fmt.Errorf("failed to check album existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errMsgAlbumNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete album")

		return fmt.Errorf("failed to delete album: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateAlbum(c, id)
		s.invalidateListings(c)
	}()

	return nil
}

func (s *serviceImpl) get(ctx context.Context, filter gDto.FilterGroup) (model.Album, error) {
	album, err := s.repo.Get(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to get album")

		return album, fmt.Errorf("failed to get album: %w", err)
	}

	if album.ID == constant.Empty {
		return album, failure.NotFound(errMsgAlbumNotFound)
	}

	return album, nil
}

func (s *serviceImpl) attachCovers(ctx context.Context, albums []dto.AlbumResponse) error {
	if len(albums) == 0 {
		return nil
	}

	ids := make([]string, len(albums))
	for i, album := range albums {
		ids[i] = album.ID
	}

	covers, err := s.imageRepo.GetAlbumCovers(ctx, ids)
	if err != nil {
		log.Error().Err(err).Msg("failed to get album covers")

		return fmt.Errorf("failed to get album covers: %w", err)
	}

	byAlbum := make(map[string]imageModel.Image, len(covers))
	for _, cover := range covers {
		if cover.AlbumID != nil {
			byAlbum[*cover.AlbumID] = cover
		}
	}

	for i := range albums {
		if cover, ok := byAlbum[albums[i].ID]; ok {
			albums[i].Cover = &dto.CoverImage{ID: cover.ID, URL: cover.URL, Width: cover.Width, Height: cover.Height}
		}
	}

	return nil
}

func (s *serviceImpl) invalidateAlbum(ctx context.Context, id string) {
	for _, prefix := range []string{cacheGetAlbum, cacheGetPublicAlbum} {
		if err := s.cache.Delete(ctx, shared.BuildCacheKey(prefix, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete album cache")
		}
	}
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllAlbum)
	shared.InvalidateCaches(ctx, s.cache, cacheCountAlbum)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheImage)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheHomepage)
}
