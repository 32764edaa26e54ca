package dto

import (
	"folio/internal/domains/blog/model"
	"folio/shared"
	"folio/shared/constant"
	gDto "folio/shared/dto"
	gModel "folio/shared/model"
	"folio/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreatePostRequest struct {
	Title         string   `json:"title"          validate:"required,min=1,max=255"`
	Slug          string   `json:"slug"           validate:"omitempty,max=280"`
	Excerpt       *string  `json:"excerpt"`
	Content       string   `json:"content"`
	FeaturedImage *string  `json:"featured_image" validate:"omitempty,url"`
	Status        string   `json:"status"         validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Tags          []string `json:"tags"`
	CategoryID    *string  `json:"category_id"    validate:"omitempty,uuid"`
}

// ToModel builds the post row. The slug is expected to be resolved by the caller.
func (c *CreatePostRequest) ToModel(user, slug string) model.Post {
	status := c.Status
	if status == "" {
		status = model.StatusDraft
	}

	var authorID *string
	if user != "" {
		authorID = &user
	}

	tags := pq.StringArray(c.Tags)
	if tags == nil {
		tags = pq.StringArray{}
	}

	post := model.Post{
		ID:            uuid.NewString(),
		Title:         c.Title,
		Slug:          slug,
		Excerpt:       c.Excerpt,
		Content:       c.Content,
		FeaturedImage: c.FeaturedImage,
		Status:        status,
		Tags:          tags,
		AuthorID:      authorID,
		CategoryID:    c.CategoryID,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}

	if status == model.StatusPublished {
		publishedAt := timezone.Now()
		post.PublishedAt = &publishedAt
	}

	return post
}

type UpdatePostRequest struct {
	Title         *string         `db:"title"          json:"title"          validate:"omitempty,min=1,max=255"`
	Slug          *string         `db:"slug"           json:"slug"           validate:"omitempty,max=280"`
	Excerpt       *string         `db:"excerpt"        json:"excerpt"`
	Content       *string         `db:"content"        json:"content"`
	FeaturedImage *string         `db:"featured_image" json:"featured_image" validate:"omitempty,url"`
	Status        *string         `db:"status"         json:"status"         validate:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	Tags          *pq.StringArray `db:"tags"           json:"tags"`
	CategoryID    *string         `db:"category_id"    json:"category_id"    validate:"omitempty,uuid"`
}

type PostAuthor struct {
	ID   string  `json:"id"`
	Name *string `json:"name"`
}

type PostCategory struct {
	ID    string  `json:"id"`
	Name  *string `json:"name"`
	Slug  *string `json:"slug"`
	Color *string `json:"color"`
}

// PostSummary is the listing shape of a post; it carries no content body.
type PostSummary struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Slug          string        `json:"slug"`
	Excerpt       *string       `json:"excerpt"`
	FeaturedImage *string       `json:"featured_image"`
	Status        string        `json:"status"`
	PublishedAt   *string       `json:"published_at"`
	Tags          []string      `json:"tags"`
	Author        *PostAuthor   `json:"author"`
	Category      *PostCategory `json:"category"`
	gDto.Metadata
}

func (r *PostSummary) FromDetail(detail model.PostDetail) {
	r.ID = detail.ID
	r.Title = detail.Title
	r.Slug = detail.Slug
	r.Excerpt = detail.Excerpt
	r.FeaturedImage = detail.FeaturedImage
	r.Status = detail.Status
	r.Metadata.FromModel(detail.Metadata)

	if detail.PublishedAt != nil {
		publishedAt := timezone.Format(*detail.PublishedAt, constant.DateFormat)
		r.PublishedAt = &publishedAt
	}

	r.Tags = []string(detail.Tags)
	if r.Tags == nil {
		r.Tags = []string{}
	}

	if detail.AuthorID != nil {
		r.Author = &PostAuthor{ID: *detail.AuthorID, Name: detail.AuthorName}
	}

	if detail.CategoryID != nil {
		r.Category = &PostCategory{
			ID:    *detail.CategoryID,
			Name:  detail.CategoryName,
			Slug:  detail.CategorySlug,
			Color: detail.CategoryColor,
		}
	}
}

type PostResponse struct {
	PostSummary
	Content     string `json:"content"`
	ContentHTML string `json:"content_html"`
}

func (r *PostResponse) FromDetail(detail model.PostDetail, html string) {
	r.PostSummary.FromDetail(detail)
	r.Content = detail.Content
	r.ContentHTML = html
}

type GetPostsResponse struct {
	Posts     []PostSummary `json:"posts"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetPostsResponse) FromDetails(details []model.PostDetail, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Posts = make([]PostSummary, len(details))
	for i, detail := range details {
		r.Posts[i].FromDetail(detail)
	}
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"        validate:"required,min=1,max=100"`
	Slug        string  `json:"slug"        validate:"omitempty,max=120"`
	Description *string `json:"description"`
	Color       *string `json:"color"       validate:"omitempty,hexcolor"`
}

func (c *CreateCategoryRequest) ToModel(user, slug string) model.Category {
	return model.Category{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Slug:        slug,
		Description: c.Description,
		Color:       c.Color,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type CategoryResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

func (r *CategoryResponse) FromModel(category model.Category) {
	r.ID = category.ID
	r.Name = category.Name
	r.Slug = category.Slug
	r.Description = category.Description
	r.Color = category.Color
}

func FromCategories(categories []model.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, category := range categories {
		res[i].FromModel(category)
	}

	return res
}
