package model

import "folio/shared/model"

const (
	TableName  = "testimonials"
	EntityName = "testimonial"

	FieldID         = "id"
	FieldName       = "name"
	FieldCompany    = "company"
	FieldRating     = "rating"
	FieldIsActive   = "is_active"
	FieldIsFeatured = "is_featured"
	FieldCreatedAt  = "created_at"
)

type Testimonial struct {
	ID         string  `db:"id"`
	Name       string  `db:"name"`
	Company    *string `db:"company"`
	Content    string  `db:"content"`
	Rating     int     `db:"rating"`
	ImageURL   *string `db:"image_url"`
	IsActive   bool    `db:"is_active"`
	IsFeatured bool    `db:"is_featured"`
	model.Metadata
}
