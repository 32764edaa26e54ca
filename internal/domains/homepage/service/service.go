package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"folio/config"
	"folio/infras/otel"
	albumModel "folio/internal/domains/album/model"
	albumService "folio/internal/domains/album/service"
	blogService "folio/internal/domains/blog/service"
	"folio/internal/domains/homepage/model/dto"
	imageModel "folio/internal/domains/image/model"
	imageService "folio/internal/domains/image/service"
	settingService "folio/internal/domains/setting/service"
	testimonialModel "folio/internal/domains/testimonial/model"
	testimonialService "folio/internal/domains/testimonial/service"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	featuredAlbumLimit       = 6
	heroImageLimit           = 5
	recentPostLimit          = 3
	featuredTestimonialLimit = 6
)

type Homepage interface {
	Get(ctx context.Context) (dto.HomepageResponse, error)
}

type serviceImpl struct {
	album       albumService.Album
	image       imageService.Image
	post        blogService.Post
	testimonial testimonialService.Testimonial
	setting     settingService.Setting
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	album albumService.Album,
	image imageService.Image,
	post blogService.Post,
	testimonial testimonialService.Testimonial,
	setting settingService.Setting,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Homepage {
	return &serviceImpl{
		album:       album,
		image:       image,
		post:        post,
		testimonial: testimonial,
		setting:     setting,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

// Get assembles the public landing page. Every section is loaded concurrently and the whole
// document is cached until some content changes.
func (s *serviceImpl) Get(ctx context.Context) (res dto.HomepageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Homepage")
	defer scope.End()
	defer scope.TraceIfError(err)

	err = s.cache.Get(ctx, constant.CacheHomepage, &res)
	if err == nil {
		log.Info().Str("cacheKey", constant.CacheHomepage).Msg("cache hit for homepage")

		return res, nil
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		albums, err := s.album.GetAll(gctx, gDto.QueryParams{Limit: featuredAlbumLimit}, activeFeatured(albumModel.TableName, albumModel.FieldIsActive, albumModel.FieldIsFeatured))
		if err != nil {
			return fmt.Errorf("featured albums: %w", err)
		}

		res.FeaturedAlbums = albums.Albums

		return nil
	})

	group.Go(func() error {
		images, err := s.image.GetAll(gctx, gDto.QueryParams{Limit: heroImageLimit}, activeFeatured(imageModel.TableName, imageModel.FieldIsActive, imageModel.FieldIsFeatured))
		if err != nil {
			return fmt.Errorf("hero images: %w", err)
		}

		res.HeroImages = images.Images

		return nil
	})

	group.Go(func() error {
		posts, err := s.post.GetPublished(gctx, gDto.QueryParams{Limit: recentPostLimit}, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("recent posts: %w", err)
		}

		res.RecentPosts = posts.Posts

		return nil
	})

	group.Go(func() error {
		testimonials, err := s.testimonial.GetAll(gctx, gDto.QueryParams{Limit: featuredTestimonialLimit}, activeFeatured(testimonialModel.TableName, testimonialModel.FieldIsActive, testimonialModel.FieldIsFeatured))
		if err != nil {
			return fmt.Errorf("testimonials: %w", err)
		}

		res.Testimonials = testimonials.Testimonials

		return nil
	})

	group.Go(func() error {
		settings, err := s.setting.GetByKeys(gctx, dto.SettingKeys...)
		if err != nil {
			return fmt.Errorf("settings: %w", err)
		}

		res.Settings = settings

		return nil
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to load homepage")

		return dto.HomepageResponse{}, fmt.Errorf("failed to load homepage: %w", err)
	}

	res.Stats.FromSettings(res.Settings)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, constant.CacheHomepage, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save homepage to cache")
		}
	}()

	return res, nil
}

func activeFeatured(table, activeField, featuredField string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: activeField, Value: true, Operator: gDto.FilterOperatorEq, Table: table},
			gDto.Filter{Field: featuredField, Value: true, Operator: gDto.FilterOperatorEq, Table: table},
		},
	}
}
