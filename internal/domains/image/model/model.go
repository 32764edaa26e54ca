package model

import (
	"folio/shared/model"

	"github.com/lib/pq"
)

const (
	TableName      = "images"
	EntityName     = "image"
	AlbumTableName = "albums"

	FieldID           = "id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldURL          = "url"
	FieldStorageID    = "storage_id"
	FieldIsActive     = "is_active"
	FieldIsFeatured   = "is_featured"
	FieldDisplayOrder = "display_order"
	FieldTags         = "tags"
	FieldAlbumID      = "album_id"
	FieldCreatedAt    = "created_at"
)

type Image struct {
	ID           string         `db:"id"`
	Title        *string        `db:"title"`
	Description  *string        `db:"description"`
	URL          string         `db:"url"`
	StorageID    *string        `db:"storage_id"`
	Width        int            `db:"width"`
	Height       int            `db:"height"`
	Size         int64          `db:"size"`
	Format       string         `db:"format"`
	IsActive     bool           `db:"is_active"`
	IsFeatured   bool           `db:"is_featured"`
	DisplayOrder int            `db:"display_order"`
	Tags         pq.StringArray `db:"tags"`
	AlbumID      *string        `db:"album_id"`
	model.Metadata
}

// AssetRef is the part of a row that points at a stored object. Rows created before storage ids
// were recorded only carry the URL.
type AssetRef struct {
	StorageID *string `db:"storage_id"`
	URL       string  `db:"url"`
}

// ImageDetail is an image row joined with the summary of the album it belongs to.
type ImageDetail struct {
	Image
	AlbumTitle    *string `column:"title"    db:"album_title"    table:"albums"`
	AlbumCategory *string `column:"category" db:"album_category" table:"albums"`
}

func (ImageDetail) GetJoinQuery() string {
	return "LEFT JOIN albums ON albums.id = images.album_id"
}
