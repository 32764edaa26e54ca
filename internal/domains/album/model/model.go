package model

import "folio/shared/model"

const (
	TableName  = "albums"
	EntityName = "album"

	FieldID           = "id"
	FieldTitle        = "title"
	FieldDescription  = "description"
	FieldCategory     = "category"
	FieldIsActive     = "is_active"
	FieldIsFeatured   = "is_featured"
	FieldDisplayOrder = "display_order"
	FieldAuthorID     = "author_id"
	FieldCreatedAt    = "created_at"
)

type Album struct {
	ID           string  `db:"id"`
	Title        string  `db:"title"`
	Description  *string `db:"description"`
	Category     *string `db:"category"`
	IsActive     bool    `db:"is_active"`
	IsFeatured   bool    `db:"is_featured"`
	DisplayOrder int     `db:"display_order"`
	AuthorID     *string `db:"author_id"`
	model.Metadata
}
