package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"folio/infras/otel/mocks"
	"folio/internal/domains/auth/model/dto"
	authMocks "folio/internal/domains/auth/service/mocks"
	userDto "folio/internal/domains/user/model/dto"
	"folio/internal/handlers/auth"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
)

func newRouter(svc *authMocks.MockAuth) http.Handler {
	handler := auth.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id := r.Header.Get("X-Test-User"); id != "" {
				r = r.WithContext(context.WithValue(r.Context(), constant.ContextKeyUserID, id))
			}

			next.ServeHTTP(w, r)
		})
	})
	handler.Router(router)

	return router
}

func TestHandler_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := authMocks.NewMockAuth(ctrl)
	router := newRouter(svc)

	svc.EXPECT().
		Me(gomock.Any(), "user-1").
		Return(userDto.UserResponse{
			ID:     "user-1",
			Email:  "admin@example.com",
			Level:  constant.RoleAdmin,
			Active: true,
			Metadata: gDto.Metadata{
				CreatedAt: "2024-06-01T12:00:00Z",
				CreatedBy: constant.ContextSystem,
			},
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header.Set("X-Test-User", "user-1")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{
		"id":"user-1",
		"email":"admin@example.com",
		"level":"admin",
		"active":true,
		"created_at":"2024-06-01T12:00:00Z",
		"created_by":"system"
	}}`, rec.Body.String())
}

func TestHandler_Logout(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		setup    func(svc *authMocks.MockAuth)
		wantCode int
	}{
		{
			name: "revokes token",
			body: `{"refresh_token":"refresh"}`,
			setup: func(svc *authMocks.MockAuth) {
				svc.EXPECT().
					Logout(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "refresh"}, "user-1").
					Return(nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:     "missing token",
			body:     `{}`,
			setup:    func(*authMocks.MockAuth) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "token of another user",
			body: `{"refresh_token":"refresh"}`,
			setup: func(svc *authMocks.MockAuth) {
				svc.EXPECT().
					Logout(gomock.Any(), gomock.Any(), "user-1").
					Return(failure.Forbidden("refresh token belongs to another user"))
			},
			wantCode: http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := authMocks.NewMockAuth(ctrl)
			tt.setup(svc)

			req := httptest.NewRequest(http.MethodPost, "/auth/logout", strings.NewReader(tt.body))
			req.Header.Set("X-Test-User", "user-1")

			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}
