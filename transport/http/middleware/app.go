package middleware

import (
	"context"
	"fmt"
	"folio/config"
	"folio/infras/otel"
	analyticsService "folio/internal/domains/analytics/service"
	"folio/shared/cache"
	"folio/shared/constant"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	otelHTTPScopeName = "http"

	pageViewPrefix      = "/v1/"
	pageViewAdminPrefix = "/v1/admin"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	PageView(next http.Handler) http.Handler
}

type appMiddleware struct {
	otel      otel.Otel
	config    *config.Config
	cache     cache.RedisCache
	analytics analyticsService.Analytics
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache, analytics analyticsService.Analytics) AppMiddleware {
	return &appMiddleware{
		otel:      otel,
		config:    config,
		cache:     cache,
		analytics: analytics,
	}
}

func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := a.otel.NewScope(r.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", r.Method, r.URL.Path))
		defer scope.End()

		scope.SetAttributes(map[string]any{
			"app.name":        a.config.App.Name,
			"http.path":       r.URL.Path,
			"http.method":     r.Method,
			"http.user_agent": r.Header.Get(constant.RequestHeaderUserAgent),
			"http.host":       r.Host,
			"http.source":     a.getClientIP(r),
		})

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(ctx))

		attributes := map[string]any{
			"http.status_code": ww.Status(),
		}

		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			attributes["http.route"] = rctx.RoutePattern()
		}

		scope.SetAttributes(attributes)

		if ww.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s responded %d", r.Method, r.URL.Path, ww.Status()))
		}
	})
}

// PageView counts successful public GET requests under /v1. Recording happens after the response
// is written and never delays or fails the request.
func (a *appMiddleware) PageView(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || !isPublicPath(r.URL.Path) {
			next.ServeHTTP(w, r)

			return
		}

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		if ww.Status() >= http.StatusBadRequest {
			return
		}

		go func(ctx context.Context, path string) {
			if err := a.analytics.RecordPageView(ctx, path); err != nil {
				log.Warn().Err(err).Str("path", path).Msg("failed to record page view")
			}
		}(context.WithoutCancel(r.Context()), r.URL.Path)
	})
}

func isPublicPath(path string) bool {
	return strings.HasPrefix(path, pageViewPrefix) && !strings.HasPrefix(path, pageViewAdminPrefix)
}
