package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"folio/config"
	"folio/infras/kafka"
	"folio/infras/otel"
	"folio/infras/s3"
	albumModel "folio/internal/domains/album/model"
	albumRepository "folio/internal/domains/album/repository"
	"folio/internal/domains/image/model"
	"folio/internal/domains/image/model/dto"
	"folio/internal/domains/image/repository"
	"folio/shared"
	"folio/shared/cache"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	"folio/shared/failure"
	gModel "folio/shared/model"
	"folio/shared/timezone"
	"folio/shared/validator"
	"image"
	_ "image/gif"  // register gif decoder for dimension probing
	_ "image/jpeg" // register jpeg decoder for dimension probing
	_ "image/png"  // register png decoder for dimension probing
	"io"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
	_ "golang.org/x/image/webp" // register webp decoder for dimension probing
)

const (
	cacheGetImage    = "image:get"
	cacheGetAllImage = "image:get_all"
	cacheCountImage  = "image:count"
)

const (
	tagImageContentType = "mimetypes=image/*"
	tagMaxFileSize      = "maxfilesize="

	errMsgNoFiles         = "No files provided"
	errMsgInvalidFileType = "Invalid file type"
	errMsgUploadFailed    = "Upload failed"
	errMsgUploadTimeout   = "Upload timed out"
	errMsgAlbumNotFound   = "album not found"
	errMsgImageNotFound   = "image not found"
)

var (
	errFileTooLarge = errors.New("file too large")
	errNotAnImage   = errors.New("content is not an image")
)

type Image interface {
	Upload(ctx context.Context, req dto.UploadRequest) (dto.UploadResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetImagesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.ImageResponse, error)
	Update(ctx context.Context, req dto.UpdateImageRequest, id string) (dto.ImageResponse, error)
	Delete(ctx context.Context, id string) error
	ReconcileAssets(ctx context.Context) (dto.ReconcileResponse, error)
	RemoveOrphan(ctx context.Context, storageID string) error
}

type serviceImpl struct {
	repo      repository.Image
	albumRepo albumRepository.Album
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
	s3        s3.S3
	kafka     kafka.Client
}

func New(
	repo repository.Image,
	albumRepo albumRepository.Album,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
	kafka kafka.Client,
) Image {
	return &serviceImpl{
		repo:      repo,
		albumRepo: albumRepo,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
		s3:        s3,
		kafka:     kafka,
	}
}

// Upload stores every file of the batch independently; one bad file never aborts the others.
// Results keep the submission order.
func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadRequest) (res dto.UploadResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer scope.TraceIfError(err)

	if len(req.Files) == 0 {
		return res, failure.BadRequestFromString(errMsgNoFiles)
	}

	if maxFiles := s.maxFiles(); len(req.Files) > maxFiles {
		return res, failure.BadRequestFromString(fmt.Sprintf("Too many files, at most %d per upload", maxFiles))
	}

	if err = s.checkAlbum(ctx, req.AlbumID); err != nil {
		return res, err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(s.uploadTimeoutSeconds())*time.Second)
	defer cancel()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	res.Results = make([]dto.UploadResult, 0, len(req.Files))

	for _, file := range req.Files {
		if ctxErr := ctx.Err(); ctxErr != nil {
			log.Error().Err(ctxErr).Int("processed", len(res.Results)).Msg("upload batch deadline exceeded")

			if errors.Is(ctxErr, context.DeadlineExceeded) {
				return dto.UploadResponse{}, failure.Timeout(errMsgUploadTimeout)
			}

			return dto.UploadResponse{}, fmt.Errorf("upload cancelled: %w", ctxErr)
		}

		res.Results = append(res.Results, s.uploadOne(ctx, file, req, user))
	}

	uploaded := res.Succeeded()
	res.Message = fmt.Sprintf("Uploaded %d of %d images", uploaded, len(req.Files))

	scope.SetAttributes(map[string]any{
		"uploaded": uploaded,
		"total":    len(req.Files),
	})

	if uploaded > 0 {
		events := make([]kafka.Message, 0, uploaded)

		for _, result := range res.Results {
			if result.Success {
				events = append(events, newEvent(constant.EventImageUploaded, result.Image.ID, constant.Empty))
			}
		}

		go func() {
			c := context.WithoutCancel(ctx)

			s.invalidateCaches(c)
			s.publish(c, events...)
		}()
	}

	return res, nil
}

func (s *serviceImpl) uploadOne(ctx context.Context, file dto.UploadFile, req dto.UploadRequest, user string) dto.UploadResult {
	failed := func(msg string) dto.UploadResult {
		return dto.UploadResult{Success: false, Filename: file.Filename, Error: msg}
	}

	maxSize := s.maxFileSize()

	if validator.ValidateVar(file.ContentType, tagImageContentType) != nil {
		return failed(errMsgInvalidFileType)
	}

	if validator.ValidateVar(file.Size, tagMaxFileSize+strconv.Itoa(s.maxFileSizeMB())) != nil {
		return failed(s.fileTooLargeMessage())
	}

	data, mime, err := readImage(file, maxSize)
	if err != nil {
		log.Warn().Err(err).Str("filename", file.Filename).Msg("rejected uploaded file")

		switch {
		case errors.Is(err, errFileTooLarge):
			return failed(s.fileTooLargeMessage())
		case errors.Is(err, errNotAnImage):
			return failed(errMsgInvalidFileType)
		default:
			return failed(errMsgUploadFailed)
		}
	}

	width, height := imageDimensions(data, file.Filename)

	objectName := uuid.NewString() + extensionOf(mime, file.Filename)
	storageID := path.Join(constant.ImageStorageDirectory, objectName)

	url, err := s.s3.Put(ctx, storageID, mime.String(), data)
	if err != nil {
		log.Error().Err(err).Str("filename", file.Filename).Msg("failed to upload image to asset store")

		return failed(errMsgUploadFailed)
	}

	now := timezone.Now()
	title := strings.TrimSuffix(file.Filename, filepath.Ext(file.Filename))

	record := model.Image{
		ID:         uuid.NewString(),
		Title:      &title,
		URL:        url,
		StorageID:  &storageID,
		Width:      width,
		Height:     height,
		Size:       int64(len(data)),
		Format:     strings.TrimPrefix(mime.String(), constant.ContentTypeImagePrefix),
		IsActive:   req.IsActive,
		IsFeatured: req.IsFeatured,
		Tags:       pq.StringArray{},
		AlbumID:    req.AlbumID,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	order, err := s.repo.InsertWithNextOrder(ctx, record)
	if err != nil {
		log.Error().Err(err).Str("storage_id", storageID).Msg("failed to record uploaded image, removing asset")

		s.compensate(context.WithoutCancel(ctx), storageID)

		return failed(errMsgUploadFailed)
	}

	return dto.UploadResult{
		Success: true,
		Image: &dto.UploadedImage{
			ID:         record.ID,
			Title:      title,
			URL:        url,
			Width:      width,
			Height:     height,
			IsFeatured: record.IsFeatured,
			Order:      order,
		},
	}
}

// compensate removes an asset whose catalog row could not be written. When the asset store is
// unreachable too, the key is handed to the worker through an orphan event.
func (s *serviceImpl) compensate(ctx context.Context, storageID string) {
	if err := s.s3.Delete(ctx, storageID); err == nil {
		return
	}

	log.Error().Str("storage_id", storageID).Msg("failed to remove orphaned asset, scheduling cleanup")

	s.publish(ctx, newEvent(constant.EventImageOrphaned, constant.Empty, storageID))
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	req.Orders = []gDto.SortOrder{
		{Field: model.FieldIsFeatured, Dir: gDto.SortDirDesc, Table: model.TableName},
		{Field: model.FieldDisplayOrder, Dir: gDto.SortDirAsc, Table: model.TableName},
		{Field: model.FieldCreatedAt, Dir: gDto.SortDirDesc, Table: model.TableName},
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllImage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for images")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count images")

		return res, err
	}

	images, err := s.repo.GetAllDetail(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get images")

		return res, fmt.Errorf("failed to get images: %w", err)
	}

	res.FromDetails(images, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save images to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountImage, req, filter)

	err = s.cache.Get(ctx, cacheKey, &total)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for image count")

		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count images")

		return total, fmt.Errorf("failed to count images: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save image count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetImage, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for image")

		return res, nil
	}

	detail, err := s.repo.GetDetail(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get image")

		if shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
			return res, failure.NotFound(errMsgImageNotFound)
		}

		return res, fmt.Errorf("failed to get image: %w", err)
	}

	if detail.ID == constant.Empty {
		return res, failure.NotFound(errMsgImageNotFound)
	}

	res.FromDetail(detail)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save image to cache")
		}
	}()

	return res, nil
}

// Update applies a partial update and returns the row as it reads after the change.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateImageRequest, id string) (res dto.ImageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to check image existence")

		return res, fmt.Errorf("failed to check image existence: %w", err)
	}

	if !exist {
		return res, failure.NotFound(errMsgImageNotFound)
	}

	if err = s.checkAlbum(ctx, req.AlbumID); err != nil {
		return res, err
	}

	updatedFields := shared.TransformFields(req, user)

	if req.AlbumID != nil && *req.AlbumID == constant.Empty {
		updatedFields[model.FieldAlbumID] = nil
	}

	if err = s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update image")

		if shared.IsPqError(err, constant.PqErrorCodeFkViolation, constant.PqErrorCodeInvalidText) {
			return res, failure.BadRequestFromString(errMsgAlbumNotFound)
		}

		return res, fmt.Errorf("failed to update image: %w", err)
	}

	detail, err := s.repo.GetDetail(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to reload updated image")

		return res, fmt.Errorf("failed to get image: %w", err)
	}

	res.FromDetail(detail)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetImage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete image cache")
		}

		s.invalidateCaches(c)
		s.publish(c, newEvent(constant.EventImageUpdated, id, constant.Empty))
	}()

	return res, nil
}

// Delete removes the stored asset before the row. An asset that cannot be removed is logged and
// left to the reconciliation sweep; the row is deleted regardless.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	row, err := s.repo.Get(ctx, filter)
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to get image for deletion")

		return fmt.Errorf("failed to get image: %w", err)
	}

	if row.ID == constant.Empty {
		return failure.NotFound(errMsgImageNotFound)
	}

	storageID := s.storageIDOf(row.StorageID, row.URL)
	if storageID != constant.Empty {
		if err := s.s3.Delete(ctx, storageID); err != nil {
			log.Error().Err(err).Str("storage_id", storageID).Msg("failed to delete image asset, continuing with row deletion")
		}
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete image")

		return fmt.Errorf("failed to delete image: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetImage, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete image cache")
		}

		s.invalidateCaches(c)
		s.publish(c, newEvent(constant.EventImageDeleted, id, storageID))
	}()

	return nil
}

// ReconcileAssets deletes stored objects that no catalog row references. Objects younger than the
// grace period are skipped since their row may still be in flight.
func (s *serviceImpl) ReconcileAssets(ctx context.Context) (res dto.ReconcileResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ReconcileAssets")
	defer scope.End()
	defer scope.TraceIfError(err)

	objects, err := s.s3.List(ctx, constant.ImageStorageDirectory)
	if err != nil {
		log.Error().Err(err).Msg("failed to list stored images")

		return res, fmt.Errorf("failed to list stored images: %w", err)
	}

	refs, err := s.repo.ListAssetRefs(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list catalog asset refs")

		return res, fmt.Errorf("failed to list catalog asset refs: %w", err)
	}

	known := make(map[string]struct{}, len(refs))
	for _, ref := range refs {
		if key := s.storageIDOf(ref.StorageID, ref.URL); key != constant.Empty {
			known[key] = struct{}{}
		}
	}

	cutoff := timezone.Now().Add(-time.Duration(s.orphanGracePeriodSeconds()) * time.Second)
	res.Scanned = len(objects)

	for _, object := range objects {
		if _, ok := known[object.Key]; ok {
			continue
		}

		if object.LastModified.After(cutoff) {
			continue
		}

		res.Orphaned++

		if err := s.s3.Delete(ctx, object.Key); err != nil {
			log.Error().Err(err).Str("storage_id", object.Key).Msg("failed to delete orphaned asset")

			res.Failed++

			continue
		}

		res.Deleted++
	}

	scope.SetAttributes(map[string]any{
		"scanned":  res.Scanned,
		"orphaned": res.Orphaned,
		"deleted":  res.Deleted,
		"failed":   res.Failed,
	})

	log.Info().Interface("result", res).Msg("asset reconciliation finished")

	return res, nil
}

// RemoveOrphan deletes a single asset unless a catalog row references it. Deleting an already
// missing object succeeds, so replays are harmless.
func (s *serviceImpl) RemoveOrphan(ctx context.Context, storageID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveOrphan")
	defer scope.End()
	defer scope.TraceIfError(err)

	if storageID == constant.Empty {
		return failure.BadRequestFromString("storage id is required")
	}

	referenced, err := s.repo.Exist(ctx, referencing(storageID))
	if err != nil {
		return fmt.Errorf("failed to check catalog references: %w", err)
	}

	if referenced {
		log.Info().Str("storage_id", storageID).Msg("asset is referenced by the catalog, keeping it")

		return nil
	}

	if err = s.s3.Delete(ctx, storageID); err != nil {
		return fmt.Errorf("failed to delete orphaned asset: %w", err)
	}

	return nil
}

func (s *serviceImpl) checkAlbum(ctx context.Context, albumID *string) error {
	if albumID == nil || *albumID == constant.Empty {
		return nil
	}

	exist, err := s.albumRepo.Exist(ctx, shared.FilterByID(*albumID, albumModel.FieldID, albumModel.TableName))
	if err != nil && !shared.IsPqError(err, constant.PqErrorCodeInvalidText) {
		log.Error().Err(err).Msg("failed to check album existence")

		return fmt.Errorf("failed to check album existence: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString(errMsgAlbumNotFound)
	}

	return nil
}

// storageIDOf prefers the recorded storage id and falls back to the key inside the URL.
func (s *serviceImpl) storageIDOf(storageID *string, url string) string {
	if storageID != nil && *storageID != constant.Empty {
		return *storageID
	}

	return s.s3.KeyFromURL(url)
}

// referencing matches rows that own storageID, either recorded or only embedded in the URL.
func referencing(storageID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorOr,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldStorageID,
				Value:    storageID,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldURL,
				Value:    "/" + storageID,
				Operator: gDto.FilterOperatorLike,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllImage)
	shared.InvalidateCaches(ctx, s.cache, cacheCountImage)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheAlbum)
	shared.InvalidateCaches(ctx, s.cache, constant.CacheHomepage)
}

func (s *serviceImpl) publish(ctx context.Context, messages ...kafka.Message) {
	if len(messages) == 0 {
		return
	}

	topic := s.cfg.Kafka.Topics.ImageEvents
	if topic == constant.Empty {
		topic = constant.DefaultTopicImageEvents
	}

	if err := s.kafka.SendMessages(ctx, topic, messages...); err != nil {
		log.Error().Err(err).Str("topic", topic).Int("count", len(messages)).Msg("failed to publish image events")
	}
}

func (s *serviceImpl) maxFileSize() int64 {
	return int64(s.maxFileSizeMB()) * constant.BytesPerMegabyte
}

func (s *serviceImpl) maxFileSizeMB() int {
	if s.cfg.App.Upload.MaxFileSizeMB > 0 {
		return s.cfg.App.Upload.MaxFileSizeMB
	}

	return constant.DefaultUploadMaxFileSizeMB
}

func (s *serviceImpl) fileTooLargeMessage() string {
	return fmt.Sprintf("File exceeds maximum size of %dMB", s.maxFileSizeMB())
}

func (s *serviceImpl) maxFiles() int {
	if s.cfg.App.Upload.MaxFiles > 0 {
		return s.cfg.App.Upload.MaxFiles
	}

	return constant.DefaultUploadMaxFiles
}

func (s *serviceImpl) uploadTimeoutSeconds() int {
	if s.cfg.App.Upload.TimeoutSeconds > 0 {
		return s.cfg.App.Upload.TimeoutSeconds
	}

	return constant.DefaultUploadTimeoutSeconds
}

func (s *serviceImpl) orphanGracePeriodSeconds() int {
	if s.cfg.Worker.OrphanGracePeriodSeconds > 0 {
		return s.cfg.Worker.OrphanGracePeriodSeconds
	}

	return constant.DefaultOrphanGracePeriodSeconds
}

// readImage reads at most maxSize bytes and confirms by content that the file is an image.
func readImage(file dto.UploadFile, maxSize int64) ([]byte, *mimetype.MIME, error) {
	reader, err := file.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(io.LimitReader(reader, maxSize+1))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read file: %w", err)
	}

	if int64(len(data)) > maxSize {
		return nil, nil, errFileTooLarge
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), constant.ContentTypeImagePrefix) {
		return nil, nil, fmt.Errorf("%w: detected %s", errNotAnImage, mime.String())
	}

	return data, mime, nil
}

// imageDimensions returns zero dimensions for formats no registered decoder understands.
func imageDimensions(data []byte, filename string) (int, int) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("could not read image dimensions")

		return 0, 0
	}

	return cfg.Width, cfg.Height
}

func extensionOf(mime *mimetype.MIME, filename string) string {
	if ext := mime.Extension(); ext != constant.Empty {
		return ext
	}

	return strings.ToLower(filepath.Ext(filename))
}

func newEvent(eventType, imageID, storageID string) kafka.Message {
	key := imageID
	if key == constant.Empty {
		key = storageID
	}

	return kafka.Message{
		Key: key,
		Value: dto.Event{
			Type:       eventType,
			ImageID:    imageID,
			StorageID:  storageID,
			OccurredAt: timezone.Now(),
		},
	}
}
