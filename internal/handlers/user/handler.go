package user

import (
	"folio/infras/otel"
	"folio/internal/domains/user/model"
	"folio/internal/domains/user/model/dto"
	"folio/internal/domains/user/service"
	"folio/shared"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/validator"
	"folio/transport/http/response"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin/users", func(users chi.Router) {
		users.Get("/", handler.GetUsers)
		users.Post("/", handler.CreateUser)

		users.Route("/{id}", func(user chi.Router) {
			user.Get("/", handler.GetUserByID)
			user.Patch("/", handler.UpdateUser)
			user.Delete("/", handler.DeleteUser)
		})
	})
}

func (handler *Handler) fail(w http.ResponseWriter, r *http.Request, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Str("path", r.URL.Path).Msg(msg)

	response.WithError(w, err)
}

// CreateUser
// @Summary Create a user
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "New user"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/users [post]
// @Security BearerAuth
func (handler *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	var req dto.CreateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, r, scope, err, "invalid create user body")

		return
	}

	created, err := handler.service.Create(ctx, req)
	if err != nil {
		handler.fail(w, r, scope, err, "failed to create user")

		return
	}

	response.WithJSON(w, http.StatusCreated, created)
}

// GetUsers lists accounts. email and full_name match partially, level takes a comma separated list.
// @Summary List users
// @Tags User
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param email query string false "Email contains"
// @Param full_name query string false "Full name contains"
// @Param level query string false "Levels, comma separated"
// @Param active query boolean false "Active flag"
// @Success 200 {object} dto.GetUsersResponse
// @Failure 401 {object} response.Error
// @Router /v1/admin/users [get]
// @Security BearerAuth
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	params := gDto.QueryParams{}
	params.FromRequest(r, true)

	users, err := handler.service.GetAll(ctx, params, filterFromQuery(r))
	if err != nil {
		handler.fail(w, r, scope, err, "failed to list users")

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// GetUserByID
// @Summary Get a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} response.Error
// @Router /v1/admin/users/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	found, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		handler.fail(w, r, scope, err, "failed to get user")

		return
	}

	response.WithJSON(w, http.StatusOK, found)
}

// UpdateUser changes profile fields, level, active flag or password. The last active admin
// cannot be demoted or deactivated.
// @Summary Update a user
// @Tags User
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Fields to change"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/users/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	var req dto.UpdateUserRequest
	if err := validator.Validate(r.Body, &req); err != nil {
		handler.fail(w, r, scope, err, "invalid update user body")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, r, scope, err, "failed to update user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User updated successfully")
}

// DeleteUser
// @Summary Delete a user
// @Tags User
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/admin/users/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		handler.fail(w, r, scope, err, "failed to delete user")

		return
	}

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}

func filterFromQuery(r *http.Request) gDto.FilterGroup {
	query := r.URL.Query()
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	add := func(field, operator string, value any) {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    field,
			Operator: operator,
			Value:    value,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldEmail, model.FieldFullName} {
		if value := strings.TrimSpace(query.Get(field)); value != constant.Empty {
			add(field, gDto.FilterOperatorLike, value)
		}
	}

	if levels := strings.FieldsFunc(query.Get(model.FieldLevel), func(c rune) bool { return c == ',' }); len(levels) > 0 {
		add(model.FieldLevel, gDto.FilterOperatorIn, levels)
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldActive)); active != nil {
		add(model.FieldActive, gDto.FilterOperatorEq, *active)
	}

	return group
}
