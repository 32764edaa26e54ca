package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"folio/config"
	"folio/infras/jwt"
	"folio/infras/otel"
	"folio/internal/domains/auth/model/dto"
	userModel "folio/internal/domains/user/model"
	userDto "folio/internal/domains/user/model/dto"
	userRepo "folio/internal/domains/user/repository"
	"folio/shared"
	"folio/shared/constant"
	"folio/shared/failure"
	"folio/shared/password"
	"folio/shared/timezone"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	errMsgInvalidCredentials = "invalid email or password"
	errMsgInvalidRefresh     = "invalid refresh token"
)

type Auth interface {
	Login(ctx context.Context, req dto.LoginRequest) (dto.LoginResponse, error)
	RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (dto.RefreshTokenResponse, error)
	Logout(ctx context.Context, req dto.RefreshTokenRequest, userID string) error
	Me(ctx context.Context, userID string) (userDto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

// lookup returns the zero user, not an error, when nothing matches.
func (s *serviceImpl) lookup(ctx context.Context, field, value string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(value, field, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Str(field, value).Msg("failed to get user")

		return user, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

func (s *serviceImpl) issue(ctx context.Context, user userModel.User) (*jwt.TokenPair, error) {
	pair, err := s.jwtService.GenerateTokenPair(ctx, user.ID, user.Email, user.Level)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to generate tokens")

		return nil, errors.Wrap(err, "failed to generate tokens")
	}

	return pair, nil
}

// Login answers every credential problem with the same 401 so that the response does not reveal
// which emails exist.
func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest) (res dto.LoginResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer scope.TraceIfError(err)

	email := userDto.NormalizeEmail(req.Email)

	user, err := s.lookup(ctx, userModel.FieldEmail, email)
	if err != nil {
		return res, err
	}

	switch {
	case user.ID == constant.Empty:
		log.Warn().Str("email", email).Msg("login attempt with unknown email")

		return res, failure.Unauthorized(errMsgInvalidCredentials)
	case password.Verify(req.Password, user.Password) != nil:
		log.Warn().Str("email", email).Msg("login attempt with wrong password")

		return res, failure.Unauthorized(errMsgInvalidCredentials)
	case !user.Active:
		return res, failure.Unauthorized("user account is deactivated")
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return res, err
	}

	now := timezone.Now()
	fields := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: now, Password: s.upgradedHash(req.Password, user)}, user.ID)

	if err = s.userRepo.Update(ctx, fields, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to update last login")

		return res, errors.Wrap(err, "failed to update last login")
	}

	user.LastLogin = &now

	res.FromTokenPair(pair)
	res.User.FromModel(user)

	return res, nil
}

// RefreshToken rotates the refresh token: the presented one is revoked and a new pair issued.
// The user is reloaded so that a deactivated account or a changed role takes effect.
func (s *serviceImpl) RefreshToken(ctx context.Context, req dto.RefreshTokenRequest) (res dto.RefreshTokenResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RefreshToken")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Warn().Err(err).Msg("refresh token rejected")

		return res, failure.Unauthorized(errMsgInvalidRefresh)
	}

	user, err := s.lookup(ctx, userModel.FieldID, claims.UserID)
	if err != nil {
		return res, err
	}

	if user.ID == constant.Empty || !user.Active {
		return res, failure.Unauthorized(errMsgInvalidRefresh)
	}

	if err = s.jwtService.Revoke(ctx, claims); err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("failed to revoke refresh token")

		return res, errors.Wrap(err, "failed to revoke refresh token")
	}

	pair, err := s.issue(ctx, user)
	if err != nil {
		return res, err
	}

	res.FromTokenPair(pair)

	return res, nil
}

// Logout revokes the refresh token. A token that is already invalid is not an error, but one
// belonging to another user is.
func (s *serviceImpl) Logout(ctx context.Context, req dto.RefreshTokenRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer scope.TraceIfError(err)

	claims, err := s.jwtService.ValidateToken(ctx, req.RefreshToken, jwt.RefreshToken)
	if err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("logout with unusable refresh token")

		return nil
	}

	if claims.UserID != userID {
		return failure.Forbidden("refresh token belongs to another user")
	}

	if err = s.jwtService.Revoke(ctx, claims); err != nil {
		return errors.Wrap(err, "failed to revoke refresh token")
	}

	return nil
}

func (s *serviceImpl) Me(ctx context.Context, userID string) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer scope.TraceIfError(err)

	if userID == constant.Empty {
		return res, failure.Unauthorized("user is not authenticated")
	}

	user, err := s.lookup(ctx, userModel.FieldID, userID)
	if err != nil {
		return res, err
	}

	if user.ID == constant.Empty || !user.Active {
		return res, failure.Unauthorized("user account is not available")
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer scope.TraceIfError(err)

	if userID == constant.Empty {
		return failure.Unauthorized("user is not authenticated")
	}

	user, err := s.lookup(ctx, userModel.FieldID, userID)
	if err != nil {
		return err
	}

	if user.ID == constant.Empty {
		return failure.NotFound("user not found")
	}

	if password.Verify(req.CurrentPassword, user.Password) != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashed, err := password.Hash(req.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	fields := shared.TransformFields(userDto.UpdatePasswordRequest{Password: hashed}, userID)

	if err = s.userRepo.Update(ctx, fields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to update password")

		return errors.Wrap(err, "failed to update password")
	}

	return nil
}

// upgradedHash rehashes the password when the stored hash predates the current cost. A failure
// only means the upgrade waits for the next login.
func (s *serviceImpl) upgradedHash(plain string, user userModel.User) string {
	rehash, err := password.NeedsRehash(user.Password)
	if err != nil || !rehash {
		return constant.Empty
	}

	hashed, err := password.Hash(plain)
	if err != nil {
		log.Warn().Err(err).Str("user_id", user.ID).Msg("failed to upgrade password hash")

		return constant.Empty
	}

	return hashed
}
