package image

import (
	"errors"
	"fmt"
	"folio/config"
	"folio/infras/otel"
	"folio/internal/domains/image/model"
	"folio/internal/domains/image/model/dto"
	"folio/internal/domains/image/service"
	"folio/shared"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	"folio/shared/validator"
	"folio/transport/http/response"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Image
	cfg     *config.Config
	otel    otel.Otel
}

func New(service service.Image, cfg *config.Config, otel otel.Otel) Handler {
	return Handler{
		service: service,
		cfg:     cfg,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/images", func(routerGroup chi.Router) {
		routerGroup.Post("/upload", handler.UploadImages)
		routerGroup.Post("/reconcile", handler.ReconcileAssets)
		routerGroup.Get("/", handler.GetImages)
		routerGroup.Get("/{id}", handler.GetImageByID)
		routerGroup.Patch("/{id}", handler.UpdateImage)
		routerGroup.Delete("/{id}", handler.DeleteImage)
	})
}

const errMsgNoFiles = "No files provided"

// UploadImages stores a batch of images.
// @Summary Upload images
// @Description Upload a batch of images. Each file is validated and stored independently; the response lists the outcome per file in submission order.
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Image files (repeat the field for several files)"
// @Param albumId formData string false "Album to attach the images to"
// @Param isFeatured formData boolean false "Show the images in the homepage rotation" default(false)
// @Param isActive formData boolean false "Make the images publicly visible" default(true)
// @Success 200 {object} dto.UploadResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 504 {object} response.Error
// @Router /v1/images/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImages")
	defer scope.End()

	req, err := handler.readUploadForm(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to read upload form")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload images")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent(res.Message + " by user " + user)

	response.WithJSON(w, http.StatusOK, res)
}

// GetImages lists every image for moderation.
// @Summary List images
// @Description List all images with their album, featured first, then by display order, newest first.
// @Tags Image
// @Produce json
// @Param page query int false "Page"
// @Param limit query int false "Limit"
// @Param album_id query string false "Filter by album"
// @Param is_active query boolean false "Filter by visibility"
// @Param is_featured query boolean false "Filter by featured flag"
// @Param title query string false "Filter by title"
// @Success 200 {object} dto.GetImagesResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images [get]
// @Security BearerAuth
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, false)

	query := r.URL.Query()
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if albumID := query.Get(model.FieldAlbumID); albumID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldAlbumID,
			Operator: gDto.FilterOperatorEq,
			Value:    albumID,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldIsActive, model.FieldIsFeatured} {
		if value := shared.ConvertStringToBool(query.Get(field)); value != nil {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    *value,
				Table:    model.TableName,
			})
		}
	}

	if title := query.Get(model.FieldTitle); title != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	images, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get images")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Images retrieved successfully")

	response.WithJSON(w, http.StatusOK, images)
}

// GetImageByID retrieves one image.
// @Summary Get an image
// @Tags Image
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} dto.ImageResponse
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/images/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	image, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get image by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, image)
}

// UpdateImage applies a partial update to an image.
// @Summary Update an image
// @Description Only the fields present in the body change. An empty album_id detaches the image from its album.
// @Tags Image
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Param request body dto.UpdateImageRequest true "Update Image Request"
// @Success 200 {object} dto.ImageResponse
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/images/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	image, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image updated successfully by user " + user)

	response.WithJSON(w, http.StatusOK, image)
}

// DeleteImage removes an image and its stored asset.
// @Summary Delete an image
// @Tags Image
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Message
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/images/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete image")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Image deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}

// ReconcileAssets removes stored assets that no image references.
// @Summary Reconcile stored assets
// @Tags Image
// @Produce json
// @Success 200 {object} dto.ReconcileResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/reconcile [post]
// @Security BearerAuth
func (handler *Handler) ReconcileAssets(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReconcileAssets")
	defer scope.End()

	res, err := handler.service.ReconcileAssets(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reconcile assets")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// readUploadForm streams the multipart body part by part. Each file is limited on its own, so an
// oversized file fails alone in the service instead of rejecting the whole batch.
func (handler *Handler) readUploadForm(r *http.Request) (dto.UploadRequest, error) {
	req := dto.UploadRequest{IsActive: true}

	reader, err := r.MultipartReader()
	if err != nil {
		return req, failure.BadRequestFromString(errMsgNoFiles)
	}

	maxFiles, maxFileSize := handler.uploadLimits()

	for {
		part, err := reader.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return req, failure.BadRequest(err)
		}

		err = handler.readPart(part, &req, maxFileSize)
		part.Close()

		if err != nil {
			return req, failure.BadRequest(err)
		}

		if len(req.Files) > maxFiles {
			return req, failure.BadRequestFromString(fmt.Sprintf("Too many files, at most %d per upload", maxFiles))
		}
	}

	if len(req.Files) == 0 {
		return req, failure.BadRequestFromString(errMsgNoFiles)
	}

	return req, nil
}

func (handler *Handler) readPart(part *multipart.Part, req *dto.UploadRequest, maxFileSize int64) error {
	if part.FormName() == constant.FormFiles {
		var file dto.UploadFile
		if err := file.FromPart(part, maxFileSize); err != nil {
			return err
		}

		req.Files = append(req.Files, file)

		return nil
	}

	raw, err := io.ReadAll(io.LimitReader(part, constant.RequestMaxFieldSize))
	if err != nil {
		return err
	}

	value := strings.TrimSpace(string(raw))

	switch part.FormName() {
	case constant.FormAlbumID:
		if value != constant.Empty {
			req.AlbumID = &value
		}
	case constant.FormIsFeatured:
		if isFeatured := shared.ConvertStringToBool(value); isFeatured != nil {
			req.IsFeatured = *isFeatured
		}
	case constant.FormIsActive:
		if isActive := shared.ConvertStringToBool(value); isActive != nil {
			req.IsActive = *isActive
		}
	}

	_, err = io.Copy(io.Discard, part)

	return err
}

func (handler *Handler) uploadLimits() (maxFiles int, maxFileSize int64) {
	maxFiles = handler.cfg.App.Upload.MaxFiles
	if maxFiles <= 0 {
		maxFiles = constant.DefaultUploadMaxFiles
	}

	maxFileSizeMB := int64(handler.cfg.App.Upload.MaxFileSizeMB)
	if maxFileSizeMB <= 0 {
		maxFileSizeMB = constant.DefaultUploadMaxFileSizeMB
	}

	return maxFiles, maxFileSizeMB * constant.BytesPerMegabyte
}
