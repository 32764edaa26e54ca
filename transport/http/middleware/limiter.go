package middleware

import (
	"folio/shared"
	"folio/shared/constant"
	"folio/transport/http/response"
	"net"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheKeyRateLimit = "limiter"

	unknownClient = "unknown"
)

// RateLimit counts requests per client IP in a fixed window. Redis failures let the request
// through.
func (a *appMiddleware) RateLimit() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			limiter := a.config.App.RateLimiter
			if !limiter.Enable {
				next.ServeHTTP(w, r)

				return
			}

			clientIP := a.getClientIP(r)

			count, err := a.cache.Increment(r.Context(), shared.BuildCacheKey(cacheKeyRateLimit, clientIP), limiter.WindowSeconds)
			if err != nil {
				log.Warn().Err(err).Str("client", clientIP).Msg("rate limiter unavailable")

				next.ServeHTTP(w, r)

				return
			}

			remaining := max(0, int64(limiter.MaxRequests)-count)

			w.Header().Set(constant.RequestHeaderRateLimit, strconv.Itoa(limiter.MaxRequests))
			w.Header().Set(constant.RequestHeaderRateLimitRemaining, strconv.FormatInt(remaining, 10))
			w.Header().Set(constant.RequestHeaderRateLimitWindow, strconv.Itoa(limiter.WindowSeconds))

			if count > int64(limiter.MaxRequests) {
				response.WithRequestLimitExceeded(w)

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// getClientIP strips the port from RemoteAddr, which chi's RealIP has already replaced with the
// forwarded address when a proxy sent one.
func (a *appMiddleware) getClientIP(r *http.Request) string {
	if r.RemoteAddr == constant.Empty {
		return unknownClient
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}

	return host
}
