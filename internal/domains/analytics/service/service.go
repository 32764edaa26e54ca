package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"folio/config"
	"folio/infras/otel"
	albumRepo "folio/internal/domains/album/repository"
	"folio/internal/domains/analytics/model/dto"
	"folio/internal/domains/analytics/repository"
	blogModel "folio/internal/domains/blog/model"
	blogRepo "folio/internal/domains/blog/repository"
	imageRepo "folio/internal/domains/image/repository"
	testimonialRepo "folio/internal/domains/testimonial/repository"
	userRepo "folio/internal/domains/user/repository"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultTopPagesLimit = 10
	MaxTopPagesLimit     = 100

	maxPathLength = 255
)

// Analytics is the read side of the admin dashboard plus the page view recorder fed by the
// HTTP middleware.
type Analytics interface {
	FetchOverviewStats(ctx context.Context) (dto.OverviewStats, error)
	FetchTopPages(ctx context.Context, limit int) (dto.TopPagesResponse, error)
	RecordPageView(ctx context.Context, path string) error
}

type serviceImpl struct {
	pageViews   repository.PageView
	images      imageRepo.Image
	albums      albumRepo.Album
	posts       blogRepo.Post
	testimonial testimonialRepo.Testimonial
	users       userRepo.User
	cfg         *config.Config
	otel        otel.Otel
}

func New(
	pageViews repository.PageView,
	images imageRepo.Image,
	albums albumRepo.Album,
	posts blogRepo.Post,
	testimonial testimonialRepo.Testimonial,
	users userRepo.User,
	cfg *config.Config,
	otel otel.Otel,
) Analytics {
	return &serviceImpl{
		pageViews:   pageViews,
		images:      images,
		albums:      albums,
		posts:       posts,
		testimonial: testimonial,
		users:       users,
		cfg:         cfg,
		otel:        otel,
	}
}

func (s *serviceImpl) FetchOverviewStats(ctx context.Context) (res dto.OverviewStats, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FetchOverviewStats")
	defer scope.End()
	defer scope.TraceIfError(err)

	all := gDto.FilterGroup{}
	published := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    blogModel.FieldStatus,
				Operator: gDto.FilterOperatorEq,
				Value:    blogModel.StatusPublished,
				Table:    blogModel.TableName,
			},
		},
	}

	group, gctx := errgroup.WithContext(ctx)

	group.Go(func() (err error) {
		res.Images, err = s.images.Count(gctx, all)

		return wrap("images", err)
	})

	group.Go(func() (err error) {
		res.Albums, err = s.albums.Count(gctx, all)

		return wrap("albums", err)
	})

	group.Go(func() (err error) {
		res.PublishedPosts, err = s.posts.CountDetail(gctx, published)

		return wrap("published posts", err)
	})

	group.Go(func() (err error) {
		res.Testimonials, err = s.testimonial.Count(gctx, all)

		return wrap("testimonials", err)
	})

	group.Go(func() (err error) {
		res.Users, err = s.users.Count(gctx, all)

		return wrap("users", err)
	})

	group.Go(func() (err error) {
		res.PageViews, err = s.pageViews.Total(gctx)

		return wrap("page views", err)
	})

	if err = group.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to fetch overview stats")

		return dto.OverviewStats{}, err
	}

	return res, nil
}

func (s *serviceImpl) FetchTopPages(ctx context.Context, limit int) (res dto.TopPagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FetchTopPages")
	defer scope.End()
	defer scope.TraceIfError(err)

	switch {
	case limit <= 0:
		limit = DefaultTopPagesLimit
	case limit > MaxTopPagesLimit:
		limit = MaxTopPagesLimit
	}

	pages, err := s.pageViews.Top(ctx, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to get top pages")

		return res, fmt.Errorf("failed to get top pages: %w", err)
	}

	res.FromModels(pages)

	return res, nil
}

func (s *serviceImpl) RecordPageView(ctx context.Context, path string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RecordPageView")
	defer scope.End()
	defer scope.TraceIfError(err)

	path = NormalizePath(path)
	if path == constant.Empty {
		return nil
	}

	return s.pageViews.Record(ctx, path) //nolint:wrapcheck
}

// NormalizePath drops the trailing slash so /v1/albums and /v1/albums/ share one counter.
// Overlong paths are not recorded.
func NormalizePath(path string) string {
	if len(path) > maxPathLength {
		return constant.Empty
	}

	if trimmed := strings.TrimRight(path, "/"); trimmed != constant.Empty {
		return trimmed
	}

	if path == constant.Empty {
		return constant.Empty
	}

	return "/"
}

func wrap(section string, err error) error {
	if err != nil {
		return fmt.Errorf("failed to count %s: %w", section, err)
	}

	return nil
}
