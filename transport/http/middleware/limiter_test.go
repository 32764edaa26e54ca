package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"folio/config"
	"folio/infras/otel/mocks"
	analyticsMocks "folio/internal/domains/analytics/service/mocks"
	cacheMocks "folio/shared/cache/mocks"
	"folio/shared/constant"
	"folio/transport/http/middleware"
)

func TestAppMiddleware_RateLimit(t *testing.T) {
	tests := []struct {
		name          string
		enable        bool
		count         int64
		cacheErr      error
		wantStatus    int
		wantRemaining string
	}{
		{
			name:       "disabled",
			wantStatus: http.StatusOK,
		},
		{
			name:          "under the limit",
			enable:        true,
			count:         2,
			wantStatus:    http.StatusOK,
			wantRemaining: "1",
		},
		{
			name:          "over the limit",
			enable:        true,
			count:         4,
			wantStatus:    http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name:       "redis unavailable",
			enable:     true,
			cacheErr:   errors.New("connection refused"),
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockCache := cacheMocks.NewMockRedisCache(ctrl)

			cfg := &config.Config{}
			cfg.App.RateLimiter.Enable = tt.enable
			cfg.App.RateLimiter.MaxRequests = 3
			cfg.App.RateLimiter.WindowSeconds = 60

			if tt.enable {
				mockCache.EXPECT().
					Increment(gomock.Any(), "limiter:203.0.113.7", 60).
					Return(tt.count, tt.cacheErr)
			}

			app := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, mockCache, analyticsMocks.NewMockAnalytics(ctrl))

			handler := app.RateLimit()(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/homepage", nil)
			req.RemoteAddr = "203.0.113.7:51234"

			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}
