package middleware_test

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
	"folio/permissions"
	"folio/shared/constant"
	"folio/transport/http/middleware"
)

func newGuardedRouter(t *testing.T, jwtService jwt.JWT, apiKey string) http.Handler {
	t.Helper()

	cfg := &config.Config{}
	cfg.App.APIKey = apiKey

	perms := &permissions.PermissionData{Endpoints: []permissions.Permission{
		{Path: "/v1/albums*", Method: http.MethodGet, Skip: true},
		{Path: "/v1/auth/me", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin, constant.RoleUser}},
		{Path: "/v1/*", Method: "*", Permissions: []string{constant.RoleAdmin}},
	}}

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), perms, cfg)

	echo := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(userID))
	}

	router := chi.NewRouter()
	router.Route("/v1", func(v1 chi.Router) {
		v1.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
		v1.Get("/albums/{id}", echo)
		v1.Get("/auth/me", echo)
		v1.Delete("/admin/albums/{id}", echo)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	userClaims := &jwt.Claims{UserID: "user-1", Email: "editor@example.com", Role: constant.RoleUser}

	tests := []struct {
		name     string
		method   string
		path     string
		headers  map[string]string
		setup    func(m *jwtMocks.MockJWT)
		wantCode int
		wantBody string
	}{
		{
			name:     "public route without token",
			method:   http.MethodGet,
			path:     "/v1/albums/a1",
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			method:   http.MethodGet,
			path:     "/v1/auth/me",
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/v1/auth/me",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
			wantBody: `{"error":"Token has expired"}`,
		},
		{
			name:    "user role on a shared route",
			method:  http.MethodGet,
			path:    "/v1/auth/me",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(userClaims, nil)
			},
			wantCode: http.StatusOK,
			wantBody: "user-1",
		},
		{
			name:    "user role on an admin route",
			method:  http.MethodDelete,
			path:    "/v1/admin/albums/a1",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer good"},
			setup: func(m *jwtMocks.MockJWT) {
				m.EXPECT().ValidateToken(gomock.Any(), "good", jwt.AccessToken).Return(userClaims, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:     "api key acts as system admin",
			method:   http.MethodDelete,
			path:     "/v1/admin/albums/a1",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "secret-key"},
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusOK,
			wantBody: constant.ContextSystem,
		},
		{
			name:     "wrong api key",
			method:   http.MethodDelete,
			path:     "/v1/admin/albums/a1",
			headers:  map[string]string{constant.RequestHeaderAPIKey: "guess"},
			setup:    func(*jwtMocks.MockJWT) {},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
			tt.setup(jwtService)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()
			newGuardedRouter(t, jwtService, "secret-key").ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
