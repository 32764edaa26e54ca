package dto

import (
	"folio/internal/domains/testimonial/model"
	"folio/shared"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

const defaultRating = 5

type CreateTestimonialRequest struct {
	Name       string  `json:"name"        validate:"required,min=1,max=255"`
	Company    *string `json:"company"     validate:"omitempty,max=255"`
	Content    string  `json:"content"     validate:"required"`
	Rating     int     `json:"rating"      validate:"omitempty,min=1,max=5"`
	ImageURL   *string `json:"image"       validate:"omitempty,url"`
	IsActive   *bool   `json:"is_active"`
	IsFeatured bool    `json:"is_featured"`
}

func (c *CreateTestimonialRequest) ToModel(user string) model.Testimonial {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	rating := c.Rating
	if rating == 0 {
		rating = defaultRating
	}

	return model.Testimonial{
		ID:         uuid.NewString(),
		Name:       c.Name,
		Company:    c.Company,
		Content:    c.Content,
		Rating:     rating,
		ImageURL:   c.ImageURL,
		IsActive:   isActive,
		IsFeatured: c.IsFeatured,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTestimonialRequest struct {
	Name       *string `db:"name"        json:"name"        validate:"omitempty,min=1,max=255"`
	Company    *string `db:"company"     json:"company"     validate:"omitempty,max=255"`
	Content    *string `db:"content"     json:"content"     validate:"omitempty,min=1"`
	Rating     *int    `db:"rating"      json:"rating"      validate:"omitempty,min=1,max=5"`
	ImageURL   *string `db:"image_url"   json:"image"       validate:"omitempty,url"`
	IsActive   *bool   `db:"is_active"   json:"is_active"`
	IsFeatured *bool   `db:"is_featured" json:"is_featured"`
}

type TestimonialResponse struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Company    *string `json:"company"`
	Content    string  `json:"content"`
	Rating     int     `json:"rating"`
	ImageURL   *string `json:"image"`
	IsActive   bool    `json:"is_active"`
	IsFeatured bool    `json:"is_featured"`
	gDto.Metadata
}

func (r *TestimonialResponse) FromModel(testimonial model.Testimonial) {
	r.ID = testimonial.ID
	r.Name = testimonial.Name
	r.Company = testimonial.Company
	r.Content = testimonial.Content
	r.Rating = testimonial.Rating
	r.ImageURL = testimonial.ImageURL
	r.IsActive = testimonial.IsActive
	r.IsFeatured = testimonial.IsFeatured
	r.Metadata.FromModel(testimonial.Metadata)
}

type GetTestimonialsResponse struct {
	Testimonials []TestimonialResponse `json:"testimonials"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetTestimonialsResponse) FromModels(models []model.Testimonial, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Testimonials = make([]TestimonialResponse, len(models))
	for i, m := range models {
		r.Testimonials[i].FromModel(m)
	}
}
