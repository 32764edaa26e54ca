package dto

import (
	"folio/internal/domains/album/model"
	imageDto "folio/internal/domains/image/model/dto"
	"folio/shared"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
)

type CreateAlbumRequest struct {
	Title        string  `json:"title"         validate:"required,min=1,max=255"`
	Description  *string `json:"description"`
	Category     *string `json:"category"      validate:"omitempty,max=100"`
	IsActive     *bool   `json:"is_active"`
	IsFeatured   bool    `json:"is_featured"`
	DisplayOrder int     `json:"order"         validate:"gte=0"`
}

func (c *CreateAlbumRequest) ToModel(user string) model.Album {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	var authorID *string
	if user != "" {
		authorID = &user
	}

	return model.Album{
		ID:           uuid.NewString(),
		Title:        c.Title,
		Description:  c.Description,
		Category:     c.Category,
		IsActive:     isActive,
		IsFeatured:   c.IsFeatured,
		DisplayOrder: c.DisplayOrder,
		AuthorID:     authorID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateAlbumRequest struct {
	Title        *string `db:"title"         json:"title"       validate:"omitempty,min=1,max=255"`
	Description  *string `db:"description"   json:"description"`
	Category     *string `db:"category"      json:"category"    validate:"omitempty,max=100"`
	IsActive     *bool   `db:"is_active"     json:"is_active"`
	IsFeatured   *bool   `db:"is_featured"   json:"is_featured"`
	DisplayOrder *int    `db:"display_order" json:"order"       validate:"omitempty,gte=0"`
}

type CoverImage struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type AlbumResponse struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description *string     `json:"description"`
	Category    *string     `json:"category"`
	IsActive    bool        `json:"is_active"`
	IsFeatured  bool        `json:"is_featured"`
	Order       int         `json:"order"`
	AuthorID    *string     `json:"author_id"`
	Cover       *CoverImage `json:"cover,omitempty"`
	gDto.Metadata
}

func (r *AlbumResponse) FromModel(model model.Album) {
	r.ID = model.ID
	r.Title = model.Title
	r.Description = model.Description
	r.Category = model.Category
	r.IsActive = model.IsActive
	r.IsFeatured = model.IsFeatured
	r.Order = model.DisplayOrder
	r.AuthorID = model.AuthorID
	r.Metadata.FromModel(model.Metadata)
}

type GetAlbumsResponse struct {
	Albums    []AlbumResponse `json:"albums"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetAlbumsResponse) FromModels(models []model.Album, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Albums = make([]AlbumResponse, len(models))
	for i, m := range models {
		r.Albums[i].FromModel(m)
	}
}

// AlbumDetailResponse is an album together with its images in display order.
type AlbumDetailResponse struct {
	AlbumResponse
	Images []imageDto.ImageResponse `json:"images"`
}
