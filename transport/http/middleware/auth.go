package middleware

import (
	"context"
	"crypto/subtle"
	"errors"
	"folio/config"
	"folio/infras/jwt"
	"folio/infras/otel"
	"folio/permissions"
	"folio/shared/constant"
	"folio/shared/failure"
	"folio/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const skipAuthKey = SkipAuthKey("skip")

type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

type Role interface {
	RBAC(http.Handler) http.Handler
}

type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(jwtService jwt.JWT, otel otel.Otel, permissions *permissions.PermissionData, cfg *config.Config) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// tokenErrorMessages maps validation errors to what the client is told.
var tokenErrorMessages = map[error]string{
	jwt.ErrExpiredToken: "Token has expired",
	jwt.ErrInvalidToken: "Invalid token",
	jwt.ErrInvalidClaim: "Invalid token claims",
}

func tokenErrorMessage(err error) string {
	for target, message := range tokenErrorMessages {
		if errors.Is(err, target) {
			return message
		}
	}

	return "Token validation failed"
}

func skipped(ctx context.Context) bool {
	skip, _ := ctx.Value(skipAuthKey).(bool)

	return skip
}

// Auth validates the bearer access token unless the route is public or an API key already
// authenticated the request. The identity from the token is put on the request context.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		path := routePattern(r)
		if skipped(ctx) || m.findPermission(path, r.Method).Skip {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttributes(map[string]any{
			"http.path":   path,
			"http.method": r.Method,
		})

		token, err := jwt.ExtractTokenFromHeader(r.Header.Get(constant.RequestHeaderAuthorization))
		if err != nil {
			m.reject(w, scope, failure.Unauthorized("Missing or malformed bearer token"))

			return
		}

		claims, err := m.jwtService.ValidateToken(ctx, token, jwt.AccessToken)
		if err != nil {
			m.reject(w, scope, failure.Unauthorized(tokenErrorMessage(err)))

			return
		}

		if claims.UserID == "" || claims.Email == "" {
			log.Warn().Str("token_id", claims.ID).Msg("access token without user id or email")
			m.reject(w, scope, failure.Unauthorized(tokenErrorMessages[jwt.ErrInvalidClaim]))

			return
		}

		scope.End()

		ctx = r.Context()
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
		ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, claims.Email)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
		ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RBAC checks the role set by Auth against the roles the route allows. A role mismatch is
// answered with 401 like a missing token.
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "rbac.middleware")

		if skipped(r.Context()) {
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		if m.permission == nil {
			m.reject(w, scope, failure.ForbiddenError)

			return
		}

		permission := m.findPermission(routePattern(r), r.Method)
		role, _ := r.Context().Value(constant.ContextKeyUserRole).(string)

		if !permission.Skip && !permission.Allows(role) {
			scope.SetAttributes(map[string]any{
				"user_role":     role,
				"allowed_roles": permission.Permissions,
			})
			m.reject(w, scope, failure.Unauthorized("Insufficient role for this resource"))

			return
		}

		scope.End()
		next.ServeHTTP(w, r)
	})
}

// APIKey lets internal callers holding the configured key through as the system admin. Requests
// without the header continue to Auth; a wrong key is refused outright.
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, scope := m.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, "api_key.middleware")

		presented := r.Header.Get(constant.RequestHeaderAPIKey)
		if presented == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(w, r)

			return
		}

		scope.SetAttribute("http.source", "internal")

		configured := m.cfg.App.APIKey
		if configured == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(configured)) != 1 {
			m.reject(w, scope, failure.ForbiddenError)

			return
		}

		scope.End()

		ctx = context.WithValue(ctx, skipAuthKey, true)
		ctx = context.WithValue(ctx, constant.ContextKeyUserID, constant.ContextSystem)
		ctx = context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *authRoleImpl) reject(w http.ResponseWriter, scope otel.Scope, err error) {
	scope.TraceError(err)
	scope.End()

	response.WithError(w, err)
}

func (m *authRoleImpl) findPermission(path, method string) permissions.Permission {
	switch {
	case m.permission == nil:
		return permissions.Permission{}
	case m.permission.Skip:
		return permissions.Permission{Skip: true}
	default:
		return m.permission.FindPermissions(path, method)
	}
}

// routePattern resolves the registered chi pattern, e.g. /v1/admin/albums/{id}, falling back to
// the raw path when no route matches.
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return r.URL.Path
	}

	if pattern := rctx.Routes.Find(chi.NewRouteContext(), r.Method, r.URL.Path); pattern != "" {
		return pattern
	}

	return r.URL.Path
}
