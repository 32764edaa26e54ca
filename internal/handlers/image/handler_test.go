package image_test

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/otel/mocks"
	"folio/internal/domains/image/model/dto"
	imageMocks "folio/internal/domains/image/service/mocks"
	"folio/internal/handlers/image"
	"folio/shared/constant"
	"folio/shared/failure"
)

type formFile struct {
	name        string
	contentType string
	size        int
}

type uploadForm struct {
	files  []formFile
	fields map[string]string
}

func (f uploadForm) encode(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for key, value := range f.fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	for _, file := range f.files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="files"; filename="`+file.name+`"`)
		header.Set("Content-Type", file.contentType)

		part, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = part.Write(bytes.Repeat([]byte{0xAB}, file.size))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func newRouter(svc *imageMocks.MockImage, cfg *config.Config) http.Handler {
	handler := image.New(svc, cfg, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router
}

func postUpload(t *testing.T, router http.Handler, form uploadForm) *httptest.ResponseRecorder {
	t.Helper()

	body, contentType := form.encode(t)

	req := httptest.NewRequest(http.MethodPost, "/images/upload", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func readAll(t *testing.T, file dto.UploadFile) []byte {
	t.Helper()

	reader, err := file.Open()
	require.NoError(t, err)

	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)

	return data
}

func TestHandler_UploadImages_MixedBatch(t *testing.T) {
	const mib = constant.BytesPerMegabyte

	svc := imageMocks.NewMockImage(gomock.NewController(t))
	router := newRouter(svc, &config.Config{})

	svc.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.UploadRequest) (dto.UploadResponse, error) {
			require.Len(t, req.Files, 3)

			assert.Equal(t, "beach.jpg", req.Files[0].Filename)
			assert.Equal(t, "image/jpeg", req.Files[0].ContentType)
			assert.EqualValues(t, 2*mib, req.Files[0].Size)
			assert.Len(t, readAll(t, req.Files[0]), 2*mib)

			assert.Equal(t, "panorama.jpg", req.Files[1].Filename)
			assert.EqualValues(t, 15*mib, req.Files[1].Size)

			_, err := req.Files[1].Open()
			assert.Error(t, err)

			assert.Equal(t, "notes.txt", req.Files[2].Filename)
			assert.Equal(t, "text/plain", req.Files[2].ContentType)
			assert.EqualValues(t, 512, req.Files[2].Size)

			return dto.UploadResponse{
				Message: "Uploaded 1 of 3 images",
				Results: []dto.UploadResult{
					{Success: true, Image: &dto.UploadedImage{ID: "img-1", Title: "beach"}},
					{Filename: "panorama.jpg", Error: "File exceeds maximum size of 10MB"},
					{Filename: "notes.txt", Error: "Invalid file type"},
				},
			}, nil
		})

	rec := postUpload(t, router, uploadForm{files: []formFile{
		{name: "beach.jpg", contentType: "image/jpeg", size: 2 * mib},
		{name: "panorama.jpg", contentType: "image/jpeg", size: 15 * mib},
		{name: "notes.txt", contentType: "text/plain", size: 512},
	}})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"message":"Uploaded 1 of 3 images"`)
}

func TestHandler_UploadImages_OversizedFileDoesNotRejectBatch(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Upload.MaxFiles = 2
	cfg.App.Upload.MaxFileSizeMB = 1

	svc := imageMocks.NewMockImage(gomock.NewController(t))
	router := newRouter(svc, cfg)

	svc.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req dto.UploadRequest) (dto.UploadResponse, error) {
			require.Len(t, req.Files, 2)
			assert.EqualValues(t, 100<<10, req.Files[0].Size)
			assert.EqualValues(t, 4*constant.BytesPerMegabyte, req.Files[1].Size)

			return dto.UploadResponse{Message: "Uploaded 1 of 2 images"}, nil
		})

	rec := postUpload(t, router, uploadForm{files: []formFile{
		{name: "small.jpg", contentType: "image/jpeg", size: 100 << 10},
		{name: "huge.jpg", contentType: "image/jpeg", size: 4 * constant.BytesPerMegabyte},
	}})

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_UploadImages_FormFields(t *testing.T) {
	albumID := "album-1"

	tests := []struct {
		name     string
		fields   map[string]string
		expected dto.UploadRequest
	}{
		{
			name:     "defaults",
			expected: dto.UploadRequest{IsActive: true},
		},
		{
			name: "explicit flags",
			fields: map[string]string{
				constant.FormIsFeatured: "true",
				constant.FormIsActive:   "false",
			},
			expected: dto.UploadRequest{IsFeatured: true, IsActive: false},
		},
		{
			name: "malformed flags keep defaults",
			fields: map[string]string{
				constant.FormIsFeatured: "yes",
				constant.FormIsActive:   "maybe",
			},
			expected: dto.UploadRequest{IsActive: true},
		},
		{
			name:     "album id is trimmed",
			fields:   map[string]string{constant.FormAlbumID: "  album-1 "},
			expected: dto.UploadRequest{AlbumID: &albumID, IsActive: true},
		},
		{
			name:     "blank album id is ignored",
			fields:   map[string]string{constant.FormAlbumID: "   "},
			expected: dto.UploadRequest{IsActive: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := imageMocks.NewMockImage(gomock.NewController(t))
			router := newRouter(svc, &config.Config{})

			svc.EXPECT().
				Upload(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, req dto.UploadRequest) (dto.UploadResponse, error) {
					assert.Equal(t, tt.expected.AlbumID, req.AlbumID)
					assert.Equal(t, tt.expected.IsFeatured, req.IsFeatured)
					assert.Equal(t, tt.expected.IsActive, req.IsActive)

					return dto.UploadResponse{Message: "Uploaded 1 of 1 images"}, nil
				})

			rec := postUpload(t, router, uploadForm{
				files:  []formFile{{name: "a.png", contentType: "image/png", size: 64}},
				fields: tt.fields,
			})

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestHandler_UploadImages_Rejected(t *testing.T) {
	tests := []struct {
		name     string
		maxFiles int
		form     *uploadForm
		setup    func(svc *imageMocks.MockImage)
		wantCode int
		wantBody string
	}{
		{
			name:     "not a multipart body",
			setup:    func(*imageMocks.MockImage) {},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"No files provided"}`,
		},
		{
			name:     "no files",
			form:     &uploadForm{fields: map[string]string{constant.FormIsFeatured: "true"}},
			setup:    func(*imageMocks.MockImage) {},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"No files provided"}`,
		},
		{
			name:     "more files than allowed",
			maxFiles: 2,
			form: &uploadForm{files: []formFile{
				{name: "1.jpg", contentType: "image/jpeg", size: 8},
				{name: "2.jpg", contentType: "image/jpeg", size: 8},
				{name: "3.jpg", contentType: "image/jpeg", size: 8},
			}},
			setup:    func(*imageMocks.MockImage) {},
			wantCode: http.StatusBadRequest,
			wantBody: `{"error":"Too many files, at most 2 per upload"}`,
		},
		{
			name: "batch deadline",
			form: &uploadForm{files: []formFile{{name: "1.jpg", contentType: "image/jpeg", size: 8}}},
			setup: func(svc *imageMocks.MockImage) {
				svc.EXPECT().
					Upload(gomock.Any(), gomock.Any()).
					Return(dto.UploadResponse{}, failure.Timeout("Upload timed out"))
			},
			wantCode: http.StatusGatewayTimeout,
			wantBody: `{"error":"Upload timed out"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.App.Upload.MaxFiles = tt.maxFiles

			svc := imageMocks.NewMockImage(gomock.NewController(t))
			tt.setup(svc)
			router := newRouter(svc, cfg)

			var rec *httptest.ResponseRecorder

			if tt.form != nil {
				rec = postUpload(t, router, *tt.form)
			} else {
				req := httptest.NewRequest(http.MethodPost, "/images/upload", strings.NewReader(`{"files":[]}`))
				req.Header.Set("Content-Type", constant.ContentTypeJSON)

				rec = httptest.NewRecorder()
				router.ServeHTTP(rec, req)
			}

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.JSONEq(t, tt.wantBody, rec.Body.String())
		})
	}
}
