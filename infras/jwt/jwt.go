package jwt

//go:generate go run go.uber.org/mock/mockgen -source=./jwt.go -destination=./mocks/jwt_mock.go -package=mocks

import (
	"context"
	"folio/config"
	"folio/infras/otel"
	"folio/shared/cache"
	"folio/shared/timezone"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
	ErrInvalidClaim = errors.New("invalid token claim")
	ErrRevokedToken = errors.New("token has been revoked")
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"

	bearerPrefix     = "Bearer "
	otelScopeName    = "jwt"
	revokedKeyPrefix = "jwt:revoked"
)

// Claims carries the user identity. The token id lives in RegisteredClaims.ID.
type Claims struct {
	UserID string    `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role,omitempty"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type JWT interface {
	GenerateTokenPair(ctx context.Context, userID, email, role string) (*TokenPair, error)
	ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (*Claims, error)
	Revoke(ctx context.Context, claims *Claims) error
}

type Service struct {
	config *config.Config
	cache  cache.RedisCache
	otel   otel.Otel
}

func New(cfg *config.Config, redisCache cache.RedisCache, otel otel.Otel) JWT {
	return &Service{
		config: cfg,
		cache:  redisCache,
		otel:   otel,
	}
}

func (s *Service) secret(tokenType TokenType) ([]byte, error) {
	switch tokenType {
	case AccessToken:
		return []byte(s.config.JWT.AccessSecret), nil
	case RefreshToken:
		return []byte(s.config.JWT.RefreshSecret), nil
	default:
		return nil, errors.Errorf("unknown token type: %s", tokenType)
	}
}

func (s *Service) lifetime(tokenType TokenType) time.Duration {
	if tokenType == RefreshToken {
		return time.Duration(s.config.JWT.RefreshExpireMin) * time.Minute
	}

	return time.Duration(s.config.JWT.AccessExpireMin) * time.Minute
}

// GenerateTokenPair signs an access and a refresh token sharing the same issue time.
func (s *Service) GenerateTokenPair(ctx context.Context, userID, email, role string) (*TokenPair, error) {
	_, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".GenerateTokenPair")
	defer scope.End()

	now := timezone.Now()
	pair := &TokenPair{
		TokenType: strings.TrimSpace(bearerPrefix),
		ExpiresIn: int64(s.lifetime(AccessToken).Seconds()),
	}

	for tokenType, target := range map[TokenType]*string{
		AccessToken:  &pair.AccessToken,
		RefreshToken: &pair.RefreshToken,
	} {
		signed, err := s.sign(Claims{UserID: userID, Email: email, Role: role, Type: tokenType}, now)
		if err != nil {
			scope.TraceError(err)

			return nil, errors.Wrapf(err, "failed to generate %s token", tokenType)
		}

		*target = signed
	}

	return pair, nil
}

func (s *Service) sign(claims Claims, issuedAt time.Time) (string, error) {
	secret, err := s.secret(claims.Type)
	if err != nil {
		return "", err
	}

	claims.RegisteredClaims = jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    s.config.App.Name,
		Subject:   claims.UserID,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		NotBefore: jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.lifetime(claims.Type))),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken parses the token with the secret of the expected type. Refresh tokens are also
// checked against the revocation list.
func (s *Service) ValidateToken(ctx context.Context, tokenString string, tokenType TokenType) (*Claims, error) {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".ValidateToken")
	defer scope.End()

	secret, err := s.secret(tokenType)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}

	_, err = jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpiredToken
	case err != nil:
		return nil, ErrInvalidToken
	case claims.Type != tokenType || claims.ID == "":
		return nil, ErrInvalidClaim
	}

	if tokenType == RefreshToken {
		var revoked string

		err = s.cache.Get(ctx, revokedKey(claims.ID), &revoked)
		if err == nil {
			return nil, ErrRevokedToken
		}

		if !errors.Is(err, cache.Nil) {
			scope.TraceError(err)

			return nil, errors.Wrap(err, "failed to check token revocation")
		}
	}

	return claims, nil
}

// Revoke denies the token id until the token would have expired anyway.
func (s *Service) Revoke(ctx context.Context, claims *Claims) error {
	ctx, scope := s.otel.NewScope(ctx, otelScopeName, otelScopeName+".Revoke")
	defer scope.End()

	if claims == nil || claims.ID == "" {
		return ErrInvalidClaim
	}

	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if ttl <= 0 {
		return nil
	}

	if err := s.cache.Save(ctx, revokedKey(claims.ID), claims.UserID, int(ttl.Seconds())+1); err != nil {
		scope.TraceError(err)

		return errors.Wrap(err, "failed to revoke token")
	}

	return nil
}

func revokedKey(tokenID string) string {
	return revokedKeyPrefix + ":" + tokenID
}

// ExtractTokenFromHeader returns the token of a "Bearer <token>" header value.
func ExtractTokenFromHeader(authHeader string) (string, error) {
	token, ok := strings.CutPrefix(authHeader, bearerPrefix)
	if !ok || strings.TrimSpace(token) == "" {
		return "", errors.New("authorization header must be a bearer token")
	}

	return strings.TrimSpace(token), nil
}
