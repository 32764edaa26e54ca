package router_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/jwt"
	jwtMocks "folio/infras/jwt/mocks"
	"folio/infras/otel/mocks"
	albumMocks "folio/internal/domains/album/service/mocks"
	analyticsMocks "folio/internal/domains/analytics/service/mocks"
	homepageDto "folio/internal/domains/homepage/model/dto"
	homepageMocks "folio/internal/domains/homepage/service/mocks"
	imageDto "folio/internal/domains/image/model/dto"
	imageMocks "folio/internal/domains/image/service/mocks"
	albumHandler "folio/internal/handlers/album"
	homepageHandler "folio/internal/handlers/homepage"
	imageHandler "folio/internal/handlers/image"
	"folio/permissions"
	cacheMocks "folio/shared/cache/mocks"
	"folio/shared/constant"
	"folio/transport/http/middleware"
	"folio/transport/http/router"
)

type fixture struct {
	mux       *chi.Mux
	jwt       *jwtMocks.MockJWT
	images    *imageMocks.MockImage
	albums    *albumMocks.MockAlbum
	homepage  *homepageMocks.MockHomepage
	analytics *analyticsMocks.MockAnalytics
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := fixture{
		mux:       chi.NewRouter(),
		jwt:       jwtMocks.NewMockJWT(ctrl),
		images:    imageMocks.NewMockImage(ctrl),
		albums:    albumMocks.NewMockAlbum(ctrl),
		homepage:  homepageMocks.NewMockHomepage(ctrl),
		analytics: analyticsMocks.NewMockAnalytics(ctrl),
	}

	cfg := &config.Config{}
	otel := mocks.NewOtel()

	f.analytics.EXPECT().RecordPageView(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	r := router.New(
		router.DomainHandlers{
			Image:    imageHandler.New(f.images, cfg, otel),
			Album:    albumHandler.New(f.albums, otel),
			Homepage: homepageHandler.New(f.homepage, otel),
		},
		middleware.NewAppMiddleware(otel, cfg, cacheMocks.NewMockRedisCache(ctrl), f.analytics),
		middleware.NewAuthRoleMiddleware(f.jwt, otel, permissions.Get(), cfg),
		cfg,
	)
	r.SetupRoutes(f.mux)

	return f
}

func (f fixture) do(method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)

	return rec
}

func TestRouter_ImagesRequireToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodGet, "/v1/images", "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestRouter_InvalidTokenRejected(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().
		ValidateToken(gomock.Any(), "bad-token", jwt.AccessToken).
		Return(nil, jwt.ErrInvalidToken)

	rec := f.do(http.MethodGet, "/v1/images", "bad-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_RoleMismatchRejected(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().
		ValidateToken(gomock.Any(), "user-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "user-1", Email: "user@example.com", Role: constant.RoleUser}, nil)

	rec := f.do(http.MethodPatch, "/v1/admin/albums/album-1", "user-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_AdminReachesImages(t *testing.T) {
	f := newFixture(t)

	f.jwt.EXPECT().
		ValidateToken(gomock.Any(), "admin-token", jwt.AccessToken).
		Return(&jwt.Claims{UserID: "admin-1", Email: "admin@example.com", Role: constant.RoleAdmin}, nil)

	f.images.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(imageDto.GetImagesResponse{}, nil)

	rec := f.do(http.MethodGet, "/v1/images", "admin-token")

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_PublicHomepage(t *testing.T) {
	f := newFixture(t)

	f.homepage.EXPECT().
		Get(gomock.Any()).
		Return(homepageDto.HomepageResponse{Stats: homepageDto.Stats{PhotosTaken: "10K+"}}, nil)

	rec := f.do(http.MethodGet, "/v1/homepage", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "10K+")
}
