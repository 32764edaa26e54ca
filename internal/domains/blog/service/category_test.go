package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/otel/mocks"
	blogMocks "folio/internal/domains/blog/mocks"
	"folio/internal/domains/blog/model"
	"folio/internal/domains/blog/model/dto"
	"folio/internal/domains/blog/service"
	cacheMocks "folio/shared/cache/mocks"
	gDto "folio/shared/dto"
	"folio/shared/failure"
)

func TestCategoryService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := blogMocks.NewMockCategory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.NewCategory(mockRepo, cfg, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	tests := []struct {
		name      string
		req       dto.CreateCategoryRequest
		setupMock func()
		wantSlug  string
		wantCode  int
	}{
		{
			name: "slug derived from name",
			req:  dto.CreateCategoryRequest{Name: "Behind The Scenes"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
			},
			wantSlug: "behind-the-scenes",
		},
		{
			name: "duplicate name",
			req:  dto.CreateCategoryRequest{Name: "Weddings"},
			setupMock: func() {
				mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:      "name without sluggable characters",
			req:       dto.CreateCategoryRequest{Name: "!!!"},
			setupMock: func() {},
			wantCode:  http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setupMock()

			res, err := svc.Create(context.Background(), tt.req)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantSlug, res.Slug)
			assert.NotEmpty(t, res.ID)
		})
	}
}

func TestCategoryService_GetAll(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := blogMocks.NewMockCategory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	svc := service.NewCategory(mockRepo, cfg, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	mockCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockRepo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Category, error) {
			assert.Equal(t, "post_categories.name ASC", params.Orders[0].String())

			return []model.Category{{ID: "cat-1", Name: "Weddings", Slug: "weddings"}}, nil
		})

	res, err := svc.GetAll(context.Background())

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, "weddings", res[0].Slug)
}

func TestCategoryService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := blogMocks.NewMockCategory(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	svc := service.NewCategory(mockRepo, cfg, mockCache, mocks.NewOtel())

	mockCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := svc.Delete(context.Background(), "missing")
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

	err = svc.Delete(context.Background(), "cat-1")

	time.Sleep(10 * time.Millisecond)

	assert.NoError(t, err)
}
