package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/otel/mocks"
	albumMocks "folio/internal/domains/album/mocks"
	analyticsMocks "folio/internal/domains/analytics/mocks"
	"folio/internal/domains/analytics/model"
	"folio/internal/domains/analytics/service"
	blogMocks "folio/internal/domains/blog/mocks"
	imageMocks "folio/internal/domains/image/mocks"
	testimonialMocks "folio/internal/domains/testimonial/mocks"
	userMocks "folio/internal/domains/user/mocks"
	gDto "folio/shared/dto"
)

type fixture struct {
	pageViews    *analyticsMocks.MockPageView
	images       *imageMocks.MockImage
	albums       *albumMocks.MockAlbum
	posts        *blogMocks.MockPost
	testimonials *testimonialMocks.MockTestimonial
	users        *userMocks.MockUser
	svc          service.Analytics
}

func newFixture(ctrl *gomock.Controller) fixture {
	f := fixture{
		pageViews:    analyticsMocks.NewMockPageView(ctrl),
		images:       imageMocks.NewMockImage(ctrl),
		albums:       albumMocks.NewMockAlbum(ctrl),
		posts:        blogMocks.NewMockPost(ctrl),
		testimonials: testimonialMocks.NewMockTestimonial(ctrl),
		users:        userMocks.NewMockUser(ctrl),
	}

	f.svc = service.New(f.pageViews, f.images, f.albums, f.posts, f.testimonials, f.users, &config.Config{}, mocks.NewOtel())

	return f
}

func TestAnalyticsService_FetchOverviewStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.images.EXPECT().Count(gomock.Any(), gomock.Any()).Return(42, nil)
	f.albums.EXPECT().Count(gomock.Any(), gomock.Any()).Return(6, nil)
	f.posts.EXPECT().
		CountDetail(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, _ := filter.GetWhereClause()
			assert.Contains(t, where, "status")

			return 3, nil
		})
	f.testimonials.EXPECT().Count(gomock.Any(), gomock.Any()).Return(8, nil)
	f.users.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.pageViews.EXPECT().Total(gomock.Any()).Return(int64(1234), nil)

	res, err := f.svc.FetchOverviewStats(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 42, res.Images)
	assert.Equal(t, 6, res.Albums)
	assert.Equal(t, 3, res.PublishedPosts)
	assert.Equal(t, 8, res.Testimonials)
	assert.Equal(t, 2, res.Users)
	assert.Equal(t, int64(1234), res.PageViews)
}

func TestAnalyticsService_FetchOverviewStats_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.images.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("database error"))
	f.albums.EXPECT().Count(gomock.Any(), gomock.Any()).Return(6, nil).AnyTimes()
	f.posts.EXPECT().CountDetail(gomock.Any(), gomock.Any()).Return(3, nil).AnyTimes()
	f.testimonials.EXPECT().Count(gomock.Any(), gomock.Any()).Return(8, nil).AnyTimes()
	f.users.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil).AnyTimes()
	f.pageViews.EXPECT().Total(gomock.Any()).Return(int64(0), nil).AnyTimes()

	res, err := f.svc.FetchOverviewStats(context.Background())

	assert.ErrorContains(t, err, "images")
	assert.Zero(t, res)
}

func TestAnalyticsService_FetchTopPages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	tests := []struct {
		name      string
		limit     int
		wantLimit int
	}{
		{name: "default limit", limit: 0, wantLimit: service.DefaultTopPagesLimit},
		{name: "explicit limit", limit: 5, wantLimit: 5},
		{name: "capped limit", limit: 1000, wantLimit: service.MaxTopPagesLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f.pageViews.EXPECT().
				Top(gomock.Any(), tt.wantLimit).
				Return([]model.PageCount{{Path: "/v1/homepage", Views: 10}, {Path: "/v1/albums", Views: 4}}, nil)

			res, err := f.svc.FetchTopPages(context.Background(), tt.limit)

			assert.NoError(t, err)

			if assert.Len(t, res.Pages, 2) {
				assert.Equal(t, "/v1/homepage", res.Pages[0].Path)
				assert.Equal(t, int64(10), res.Pages[0].Views)
			}
		})
	}
}

func TestAnalyticsService_RecordPageView(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	f := newFixture(ctrl)

	f.pageViews.EXPECT().Record(gomock.Any(), "/v1/albums").Return(nil)

	assert.NoError(t, f.svc.RecordPageView(context.Background(), "/v1/albums/"))
	assert.NoError(t, f.svc.RecordPageView(context.Background(), ""))
}

func TestNormalizePath(t *testing.T) {
	long := "/" + string(make([]byte, 300))

	assert.Equal(t, "/", service.NormalizePath("/"))
	assert.Equal(t, "/", service.NormalizePath("///"))
	assert.Equal(t, "/v1/posts/hello", service.NormalizePath("/v1/posts/hello/"))
	assert.Empty(t, service.NormalizePath(""))
	assert.Empty(t, service.NormalizePath(long))
}
