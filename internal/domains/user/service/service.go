package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/user/model"
	"folio/internal/domains/user/model/dto"
	"folio/internal/domains/user/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/password"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"

	errMsgEmailTaken     = "email already registered"
	errMsgUserNotFound   = "user not found"
	errMsgLastAdmin      = "at least one active admin must remain"
	errMsgDeleteYourself = "cannot delete your own account"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id string) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.ensureEmailAvailable(ctx, dto.NormalizeEmail(req.Email), constant.Empty); err != nil {
		return res, err
	}

	hashed, err := password.Hash(req.Password)
	if err != nil {
		return res, errors.Wrap(err, "hash password")
	}

	data := req.ToModel(actor, hashed)

	if err = s.repo.Insert(ctx, data); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return res, failure.Conflict(errMsgEmailTaken)
		}

		log.Error().Err(err).Str("email", data.Email).Msg("failed to create user")

		return res, errors.Wrap(err, "create user")
	}

	s.invalidate(ctx, constant.Empty)

	res.FromModel(data)

	log.Info().Str("id", data.ID).Str("level", data.Level).Str("by", actor).Msg("user created")

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return res, errors.Wrap(err, "count users")
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		return res, errors.Wrap(err, "list users")
	}

	res.FromModels(models, total, req.Limit)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetUser, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	s.save(ctx, cacheKey, res)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateUserRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	demoted := req.Level != nil && *req.Level != constant.RoleAdmin
	deactivated := req.Active != nil && !*req.Active

	if demoted || deactivated {
		if err = s.ensureAdminRemains(ctx, current); err != nil {
			return err
		}
	}

	if req.Email != nil {
		email := dto.NormalizeEmail(*req.Email)
		req.Email = &email

		if err = s.ensureEmailAvailable(ctx, email, id); err != nil {
			return err
		}
	}

	fields := shared.TransformFields(req, actor)

	if req.Password != nil {
		hashed, err := password.Hash(*req.Password)
		if err != nil {
			return errors.Wrap(err, "hash password")
		}

		fields[model.FieldPassword] = hashed
	}

	if err = s.repo.Update(ctx, fields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeUniqueViolation) {
			return failure.Conflict(errMsgEmailTaken)
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update user")

		return errors.Wrap(err, "update user")
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".user.Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	if actor, _ := ctx.Value(constant.ContextKeyUserID).(string); actor == id {
		return failure.BadRequestFromString(errMsgDeleteYourself)
	}

	current, err := s.load(ctx, id)
	if err != nil {
		return err
	}

	if err = s.ensureAdminRemains(ctx, current); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete user")

		return errors.Wrap(err, "delete user")
	}

	s.invalidate(ctx, id)

	return nil
}

// load returns the user or a 404. A malformed uuid is reported as missing.
func (s *serviceImpl) load(ctx context.Context, id string) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		if shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
			return user, failure.NotFound(errMsgUserNotFound)
		}

		return user, errors.Wrap(err, "get user")
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound(errMsgUserNotFound)
	}

	return user, nil
}

// ensureAdminRemains refuses to take away the last active admin, which would lock everyone out
// of the admin API.
func (s *serviceImpl) ensureAdminRemains(ctx context.Context, target model.User) error {
	if target.Level != constant.RoleAdmin || !target.Active {
		return nil
	}

	admins, err := s.repo.CountActive(ctx, constant.RoleAdmin)
	if err != nil {
		return errors.Wrap(err, "count active admins")
	}

	if admins <= 1 {
		return failure.Conflict(errMsgLastAdmin)
	}

	return nil
}

// ensureEmailAvailable rejects an address that belongs to any user other than exceptID.
func (s *serviceImpl) ensureEmailAvailable(ctx context.Context, email, exceptID string) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldEmail, Operator: gDto.FilterOperatorEq, Value: email, Table: model.TableName},
		},
	}

	if exceptID != constant.Empty {
		filter.Filters = append(filter.Filters,
			gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorNotEq, Value: exceptID, Table: model.TableName},
		)
	}

	taken, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return errors.Wrap(err, "check email")
	}

	if taken {
		return failure.Conflict(errMsgEmailTaken)
	}

	return nil
}

func (s *serviceImpl) save(ctx context.Context, key string, value any) {
	go func() {
		if err := s.cache.Save(context.WithoutCancel(ctx), key, value, s.cfg.Cache.TTL); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to cache user")
		}
	}()
}

// invalidate drops the listing caches and, when id is set, that user's entry.
func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, id)); err != nil {
				log.Warn().Err(err).Str("id", id).Msg("failed to evict user from cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()
}
