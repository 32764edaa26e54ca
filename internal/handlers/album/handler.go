package album

import (
	"folio/infras/otel"
	"folio/internal/domains/album/model"
	"folio/internal/domains/album/model/dto"
	"folio/internal/domains/album/service"
	"folio/shared"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/validator"
	"folio/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Album
	otel    otel.Otel
}

func New(service service.Album, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin/albums", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAlbum)
		routerGroup.Get("/", handler.GetAlbums)
		routerGroup.Get("/{id}", handler.GetAlbumByID)
		routerGroup.Patch("/{id}", handler.UpdateAlbum)
		routerGroup.Delete("/{id}", handler.DeleteAlbum)
	})

	router.Route("/albums", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetPublicAlbums)
		routerGroup.Get("/{id}", handler.GetPublicAlbum)
	})
}

// CreateAlbum handles the creation of a new album.
// @Summary Create a new album
// @Tags Album
// @Accept json
// @Produce json
// @Param request body dto.CreateAlbumRequest true "Create Album Request"
// @Success 201 {object} dto.AlbumResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/albums [post]
// @Security BearerAuth
func (handler *Handler) CreateAlbum(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAlbum")
	defer scope.End()

	req := dto.CreateAlbumRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	album, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create album")

		response.WithError(writer, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Album created successfully by user " + user)

	response.WithJSON(writer, http.StatusCreated, album)
}

// GetAlbums lists every album for administration.
// @Summary Get all albums
// @Tags Album
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param title query string false "Filter by title"
// @Param category query string false "Filter by category"
// @Success 200 {object} dto.GetAlbumsResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/albums [get]
// @Security BearerAuth
func (handler *Handler) GetAlbums(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlbums")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	albums, err := handler.service.GetAll(ctx, queryParams, handler.filterFromQuery(r, false))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get albums")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Albums retrieved successfully")

	response.WithJSON(w, http.StatusOK, albums)
}

// GetPublicAlbums lists active albums with their cover image.
// @Summary Get public albums
// @Tags Album
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param category query string false "Filter by category"
// @Param is_featured query boolean false "Only featured albums"
// @Success 200 {object} dto.GetAlbumsResponse
// @Failure 500 {object} response.Error
// @Router /v1/albums [get]
func (handler *Handler) GetPublicAlbums(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicAlbums")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	albums, err := handler.service.GetAll(ctx, queryParams, handler.filterFromQuery(r, true))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get public albums")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, albums)
}

// GetAlbumByID retrieves an album by its ID.
// @Summary Get an album by ID
// @Tags Album
// @Produce json
// @Param id path string true "Album ID"
// @Success 200 {object} dto.AlbumResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/albums/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAlbumByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAlbumByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	album, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get album by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, album)
}

// GetPublicAlbum retrieves an active album with its active images.
// @Summary Get a public album
// @Tags Album
// @Produce json
// @Param id path string true "Album ID"
// @Success 200 {object} dto.AlbumDetailResponse
// @Failure 404 {object} response.Error
// @Router /v1/albums/{id} [get]
func (handler *Handler) GetPublicAlbum(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPublicAlbum")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	album, err := handler.service.GetPublic(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get public album")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, album)
}

// UpdateAlbum updates an existing album by its ID.
// @Summary Update an album by ID
// @Tags Album
// @Accept json
// @Produce json
// @Param id path string true "Album ID"
// @Param request body dto.UpdateAlbumRequest true "Update Album Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/albums/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAlbum")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateAlbumRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update album")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Album updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Album updated successfully")
}

// DeleteAlbum deletes an album; its images are kept without an album.
// @Summary Delete an album by ID
// @Tags Album
// @Produce json
// @Param id path string true "Album ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/admin/albums/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAlbum(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAlbum")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete album")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Album deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Album deleted successfully")
}

func (handler *Handler) filterFromQuery(r *http.Request, activeOnly bool) gDto.FilterGroup {
	query := r.URL.Query()

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if activeOnly {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsActive,
			Operator: gDto.FilterOperatorEq,
			Value:    true,
			Table:    model.TableName,
		})
	}

	if isFeatured := shared.ConvertStringToBool(query.Get(model.FieldIsFeatured)); isFeatured != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsFeatured,
			Operator: gDto.FilterOperatorEq,
			Value:    *isFeatured,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldTitle, model.FieldCategory} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	return filterGroup
}
