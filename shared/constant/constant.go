package constant

import "time"

type contextKey string

const (
	ContextKeyUserID    contextKey = "user_id"
	ContextKeyUserEmail contextKey = "user_email"
	ContextKeyUserRole  contextKey = "user_role"
	ContextKeyTokenID   contextKey = "token_id"
)

const (
	ContextSystem = "system"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

const (
	RequestParamPage    = "page"
	RequestParamLimit   = "limit"
	RequestParamSortBy  = "sort_by"
	RequestParamSortDir = "sort_dir"
)

const (
	RequestParamID      = "id"
	RequestParamSlug    = "slug"
	RequestMaxFieldSize = 1 << 10
)

const (
	DefaultValuePage  = 1
	DefaultValueLimit = 10
	MaxValueLimit     = 100
)

const (
	FieldModifiedAt = "modified_at"
	FieldModifiedBy = "modified_by"
)

const (
	PqErrorCodeUniqueViolation = "23505"
	PqErrorCodeFkViolation     = "23503"
	PqErrorCodeInvalidText     = "22P02"
)

const (
	DateFormat = time.RFC3339
)

const (
	OtelServiceScopeName    = "service"
	OtelRepositoryScopeName = "repository"
	OtelHandlerScopeName    = "handler"
	OtelEventScopeName      = "event"

	OtelQueryAttributeKey = "query"
	OtelS3ScopeName       = "s3"
)

const (
	RequestHeaderAuthorization      = "Authorization"
	RequestHeaderUserAgent          = "User-Agent"
	RequestHeaderContentType        = "Content-Type"
	RequestHeaderRateLimit          = "X-RateLimit-Limit"
	RequestHeaderRateLimitRemaining = "X-RateLimit-Remaining"
	RequestHeaderRateLimitWindow    = "X-RateLimit-Window"
	RequestHeaderAPIKey             = "X-API-Key"
)

const (
	ContentTypeJSON        = "application/json"
	ContentTypeImagePrefix = "image/"
)

// Multipart field names of the image upload form.
const (
	FormFiles      = "files"
	FormAlbumID    = "albumId"
	FormIsFeatured = "isFeatured"
	FormIsActive   = "isActive"
)

const (
	BytesPerMegabyte = 1 << 20

	DefaultUploadMaxFileSizeMB  = 10
	DefaultUploadMaxFiles       = 20
	DefaultUploadTimeoutSeconds = 60

	DefaultReconcileIntervalSeconds = 3600
	DefaultOrphanGracePeriodSeconds = 3600
)

const (
	ImageStorageDirectory = "images"
)

const (
	CacheHomepage = "homepage"
	CacheImage    = "image"
	CacheAlbum    = "album"
	CachePost     = "post"
)

const (
	EventImageUploaded = "image.uploaded"
	EventImageUpdated  = "image.updated"
	EventImageDeleted  = "image.deleted"
	EventImageOrphaned = "image.orphaned"

	DefaultTopicImageEvents = "folio.image-events"
	DefaultConsumerGroup    = "folio-worker"
)

const (
	ResponseErrorPrepareShutdown      = "SERVER PREPARING TO SHUT DOWN"
	ResponseErrorUnhealthy            = "SERVER UNHEALTHY"
	ResponseErrorRequestLimitExceeded = "REQUEST LIMIT EXCEEDED"
)

const (
	ServerEnvDevelopment = "development"
)

const (
	Asterix = "*"
	Empty   = ""
)
