package service_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/kafka"
	kafkaMocks "folio/infras/kafka/mocks"
	"folio/infras/otel/mocks"
	"folio/infras/s3"
	s3Mocks "folio/infras/s3/mocks"
	albumMocks "folio/internal/domains/album/mocks"
	imageMocks "folio/internal/domains/image/mocks"
	"folio/internal/domains/image/model"
	"folio/internal/domains/image/model/dto"
	"folio/internal/domains/image/service"
	cacheMocks "folio/shared/cache/mocks"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/timezone"
)

type fixture struct {
	repo  *imageMocks.MockImage
	album *albumMocks.MockAlbum
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	kafka *kafkaMocks.MockClient
	cfg   *config.Config
	svc   service.Image
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:  imageMocks.NewMockImage(ctrl),
		album: albumMocks.NewMockAlbum(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
		kafka: kafkaMocks.NewMockClient(ctrl),
		cfg:   &config.Config{},
	}

	f.cfg.Cache.TTL = 3600
	f.cfg.External.S3.BucketName = "folio"

	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	f.svc = service.New(f.repo, f.album, f.cfg, f.cache, mocks.NewOtel(), f.s3, f.kafka)

	return f
}

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))))

	return buf.Bytes()
}

func uploadFile(name, contentType string, data []byte) dto.UploadFile {
	return dto.UploadFile{
		Filename:    name,
		ContentType: contentType,
		Size:        int64(len(data)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(data)), nil
		},
	}
}

func userContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-id")
}

func TestImageService_Upload_NoFiles(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Upload(userContext(), dto.UploadRequest{})

	assert.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Equal(t, "No files provided", err.Error())
}

func TestImageService_Upload_TooManyFiles(t *testing.T) {
	f := newFixture(t)
	f.cfg.App.Upload.MaxFiles = 2

	data := pngBytes(t, 1, 1)
	req := dto.UploadRequest{Files: []dto.UploadFile{
		uploadFile("a.png", "image/png", data),
		uploadFile("b.png", "image/png", data),
		uploadFile("c.png", "image/png", data),
	}}

	_, err := f.svc.Upload(userContext(), req)

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestImageService_Upload_PartialSuccessKeepsOrder(t *testing.T) {
	f := newFixture(t)

	data := pngBytes(t, 3, 2)
	oversized := dto.UploadFile{
		Filename:    "huge.png",
		ContentType: "image/png",
		Size:        11 * constant.BytesPerMegabyte,
		Open: func() (io.ReadCloser, error) {
			t.Fatal("oversized file must not be read")

			return nil, nil
		},
	}

	req := dto.UploadRequest{
		Files: []dto.UploadFile{
			uploadFile("sunset.png", "image/png", data),
			uploadFile("notes.txt", "text/plain", []byte("hello")),
			oversized,
			uploadFile("fake.png", "image/png", []byte("definitely not an image")),
		},
		IsActive: true,
	}

	f.s3.EXPECT().
		Put(gomock.Any(), gomock.Any(), "image/png", data).
		Return("https://cdn.example.com/images/abc.png", nil)

	var inserted model.Image

	f.repo.EXPECT().
		InsertWithNextOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, img model.Image) (int, error) {
			inserted = img

			return 7, nil
		})

	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := f.svc.Upload(userContext(), req)
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "Uploaded 1 of 4 images", res.Message)
	require.Len(t, res.Results, 4)

	assert.True(t, res.Results[0].Success)
	assert.Equal(t, "sunset", res.Results[0].Image.Title)
	assert.Equal(t, 3, res.Results[0].Image.Width)
	assert.Equal(t, 2, res.Results[0].Image.Height)
	assert.Equal(t, 7, res.Results[0].Image.Order)

	assert.Equal(t, dto.UploadResult{Filename: "notes.txt", Error: "Invalid file type"}, res.Results[1])
	assert.Equal(t, dto.UploadResult{Filename: "huge.png", Error: "File exceeds maximum size of 10MB"}, res.Results[2])
	assert.Equal(t, dto.UploadResult{Filename: "fake.png", Error: "Invalid file type"}, res.Results[3])

	require.NotNil(t, inserted.StorageID)
	assert.Regexp(t, `^images/[0-9a-f-]{36}\.png$`, *inserted.StorageID)
	assert.Equal(t, "png", inserted.Format)
	assert.Equal(t, "admin-id", inserted.CreatedBy)
	assert.True(t, inserted.IsActive)
	assert.False(t, inserted.IsFeatured)
}

func TestImageService_Upload_DistinctOrders(t *testing.T) {
	f := newFixture(t)

	data := pngBytes(t, 1, 1)
	req := dto.UploadRequest{Files: []dto.UploadFile{
		uploadFile("one.png", "image/png", data),
		uploadFile("two.png", "image/png", data),
		uploadFile("three.png", "image/png", data),
	}}

	f.s3.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("https://cdn.example.com/images/x.png", nil).
		Times(3)

	next := 4
	f.repo.EXPECT().
		InsertWithNextOrder(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, model.Image) (int, error) {
			next++

			return next, nil
		}).
		Times(3)

	f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := f.svc.Upload(userContext(), req)
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, "Uploaded 3 of 3 images", res.Message)

	orders := []int{}
	for _, result := range res.Results {
		orders = append(orders, result.Image.Order)
	}

	assert.Equal(t, []int{5, 6, 7}, orders)
}

func TestImageService_Upload_InsertFailureRemovesAsset(t *testing.T) {
	tests := []struct {
		name      string
		deleteErr error
		setupMock func(f *fixture)
	}{
		{
			name: "asset removed",
		},
		{
			name:      "asset removal fails and orphan event is published",
			deleteErr: errors.New("storage unavailable"),
			setupMock: func(f *fixture) {
				f.kafka.EXPECT().
					SendMessages(gomock.Any(), constant.DefaultTopicImageEvents, gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
						require.Len(t, messages, 1)

						event, ok := messages[0].Value.(dto.Event)
						require.True(t, ok)
						assert.Equal(t, constant.EventImageOrphaned, event.Type)
						assert.Regexp(t, `^images/`, event.StorageID)

						return nil
					})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			data := pngBytes(t, 1, 1)

			f.s3.EXPECT().
				Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return("https://cdn.example.com/images/x.png", nil)

			f.repo.EXPECT().
				InsertWithNextOrder(gomock.Any(), gomock.Any()).
				Return(0, errors.New("database error"))

			var removed string

			f.s3.EXPECT().
				Delete(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, objectName string) error {
					removed = objectName

					return tt.deleteErr
				})

			if tt.setupMock != nil {
				tt.setupMock(f)
			}

			res, err := f.svc.Upload(userContext(), dto.UploadRequest{Files: []dto.UploadFile{
				uploadFile("lost.png", "image/png", data),
			}})

			require.NoError(t, err)
			assert.Equal(t, "Uploaded 0 of 1 images", res.Message)
			assert.Equal(t, dto.UploadResult{Filename: "lost.png", Error: "Upload failed"}, res.Results[0])
			assert.Regexp(t, `^images/[0-9a-f-]{36}\.png$`, removed)
		})
	}
}

func TestImageService_Upload_StorageFailure(t *testing.T) {
	f := newFixture(t)

	f.s3.EXPECT().
		Put(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return("", errors.New("bucket unreachable"))

	res, err := f.svc.Upload(userContext(), dto.UploadRequest{Files: []dto.UploadFile{
		uploadFile("a.png", "image/png", pngBytes(t, 1, 1)),
	}})

	require.NoError(t, err)
	assert.Equal(t, "Upload failed", res.Results[0].Error)
}

func TestImageService_Upload_UnknownAlbum(t *testing.T) {
	f := newFixture(t)
	albumID := "6f9d3a2e-51c1-4a0e-9a43-6a2b8f1e0c11"

	f.album.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := f.svc.Upload(userContext(), dto.UploadRequest{
		Files:   []dto.UploadFile{uploadFile("a.png", "image/png", pngBytes(t, 1, 1))},
		AlbumID: &albumID,
	})

	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestImageService_Upload_DeadlineExceeded(t *testing.T) {
	f := newFixture(t)

	ctx, cancel := context.WithDeadline(userContext(), time.Now().Add(-time.Second))
	defer cancel()

	_, err := f.svc.Upload(ctx, dto.UploadRequest{Files: []dto.UploadFile{
		uploadFile("a.png", "image/png", pngBytes(t, 1, 1)),
	}})

	assert.Equal(t, http.StatusGatewayTimeout, failure.GetCode(err))
}

func TestImageService_Update(t *testing.T) {
	title := "Golden hour"
	empty := ""
	albumID := "6f9d3a2e-51c1-4a0e-9a43-6a2b8f1e0c11"

	tests := []struct {
		name      string
		req       dto.UpdateImageRequest
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "image not found",
			req:  dto.UpdateImageRequest{Title: &title},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "unknown album",
			req:  dto.UpdateImageRequest{AlbumID: &albumID},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.album.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "empty album id detaches image",
			req:  dto.UpdateImageRequest{Title: &title, AlbumID: &empty},
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
						assert.Nil(t, fields[model.FieldAlbumID])
						assert.Contains(t, fields, model.FieldAlbumID)
						assert.Equal(t, &title, fields[model.FieldTitle])
						assert.NotContains(t, fields, model.FieldIsFeatured)

						return nil
					})
				f.repo.EXPECT().
					GetDetail(gomock.Any(), gomock.Any()).
					Return(model.ImageDetail{Image: model.Image{ID: "img-1", Title: &title}}, nil)
				f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Update(userContext(), tt.req, "img-1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, "img-1", res.ID)
			assert.Nil(t, res.Album)
		})
	}
}

func TestImageService_Get_WithAlbum(t *testing.T) {
	f := newFixture(t)
	albumID := "album-1"
	albumTitle := "Weddings"

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
	f.repo.EXPECT().
		GetDetail(gomock.Any(), gomock.Any()).
		Return(model.ImageDetail{
			Image:      model.Image{ID: "img-1", AlbumID: &albumID},
			AlbumTitle: &albumTitle,
		}, nil)

	res, err := f.svc.Get(context.Background(), "img-1")
	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.NotNil(t, res.Album)
	assert.Equal(t, "Weddings", res.Album.Title)
	assert.Equal(t, []string{}, res.Tags)
}

func TestImageService_Delete(t *testing.T) {
	storageID := "images/abc.png"

	tests := []struct {
		name      string
		setupMock func(f *fixture)
		wantCode  int
	}{
		{
			name: "image not found deletes nothing",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Image{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "asset deleted before row",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Image{ID: "img-1", StorageID: &storageID}, nil)
				gomock.InOrder(
					f.s3.EXPECT().Delete(gomock.Any(), storageID).Return(nil),
					f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil),
				)
				f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "asset failure is swallowed",
			setupMock: func(f *fixture) {
				f.repo.EXPECT().
					Get(gomock.Any(), gomock.Any()).
					Return(model.Image{ID: "img-1", URL: "https://cdn.example.com/images/legacy.jpg"}, nil)
				f.s3.EXPECT().
					KeyFromURL("https://cdn.example.com/images/legacy.jpg").
					Return("images/legacy.jpg")
				f.s3.EXPECT().Delete(gomock.Any(), "images/legacy.jpg").Return(errors.New("boom"))
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
				f.kafka.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Delete(userContext(), "img-1")
			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}

func TestImageService_ReconcileAssets(t *testing.T) {
	f := newFixture(t)

	old := timezone.Now().Add(-2 * time.Hour)
	recent := timezone.Now().Add(-time.Minute)
	kept := "images/kept.png"

	f.s3.EXPECT().
		List(gomock.Any(), constant.ImageStorageDirectory).
		Return([]s3.Object{
			{Key: "images/kept.png", LastModified: old},
			{Key: "images/legacy.png", LastModified: old},
			{Key: "images/orphan.png", LastModified: old},
			{Key: "images/in-flight.png", LastModified: recent},
			{Key: "images/stuck.png", LastModified: old},
		}, nil)
	f.repo.EXPECT().
		ListAssetRefs(gomock.Any()).
		Return([]model.AssetRef{
			{StorageID: &kept, URL: "https://cdn.example.com/images/kept.png"},
			{URL: "https://cdn.example.com/images/legacy.png"},
			{URL: "https://elsewhere.example.com/photo.png"},
		}, nil)
	f.s3.EXPECT().KeyFromURL("https://cdn.example.com/images/legacy.png").Return("images/legacy.png")
	f.s3.EXPECT().KeyFromURL("https://elsewhere.example.com/photo.png").Return("")
	f.s3.EXPECT().Delete(gomock.Any(), "images/orphan.png").Return(nil)
	f.s3.EXPECT().Delete(gomock.Any(), "images/stuck.png").Return(errors.New("denied"))

	res, err := f.svc.ReconcileAssets(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.ReconcileResponse{Scanned: 5, Orphaned: 2, Deleted: 1, Failed: 1}, res)
}

func TestImageService_RemoveOrphan(t *testing.T) {
	t.Run("referenced asset is kept", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "images.storage_id = ")
				assert.Contains(t, where, "images.url ILIKE ")
				assert.Contains(t, where, " OR ")
				assert.Contains(t, args, "storage_id")

				return true, nil
			})

		assert.NoError(t, f.svc.RemoveOrphan(context.Background(), "images/a.png"))
	})

	t.Run("unreferenced asset is deleted", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.s3.EXPECT().Delete(gomock.Any(), "images/b.png").Return(nil)

		assert.NoError(t, f.svc.RemoveOrphan(context.Background(), "images/b.png"))
	})

	t.Run("catalog failure keeps the asset", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("connection reset"))

		assert.Error(t, f.svc.RemoveOrphan(context.Background(), "images/c.png"))
	})
}
