package model

import (
	"folio/shared/model"
	"time"

	"github.com/lib/pq"
)

const (
	TableName         = "posts"
	EntityName        = "post"
	CategoryTableName = "post_categories"
	CategoryEntity    = "post_category"
	UserTableName     = "users"

	FieldID            = "id"
	FieldTitle         = "title"
	FieldSlug          = "slug"
	FieldStatus        = "status"
	FieldPublishedAt   = "published_at"
	FieldAuthorID      = "author_id"
	FieldCategoryID    = "category_id"
	FieldCreatedAt     = "created_at"
	FieldCategoryName  = "name"
	FieldCategorySlug  = "slug"
	FieldCategoryColor = "color"
)

const (
	StatusDraft     = "DRAFT"
	StatusPublished = "PUBLISHED"
	StatusArchived  = "ARCHIVED"
)

type Post struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Slug          string         `db:"slug"`
	Excerpt       *string        `db:"excerpt"`
	Content       string         `db:"content"`
	FeaturedImage *string        `db:"featured_image"`
	Status        string         `db:"status"`
	PublishedAt   *time.Time     `db:"published_at"`
	Tags          pq.StringArray `db:"tags"`
	AuthorID      *string        `db:"author_id"`
	CategoryID    *string        `db:"category_id"`
	model.Metadata
}

// PostDetail is a post joined with its author's name and its category.
type PostDetail struct {
	Post
	AuthorName    *string `column:"full_name" db:"author_name"    table:"users"`
	CategoryName  *string `column:"name"      db:"category_name"  table:"post_categories"`
	CategorySlug  *string `column:"slug"      db:"category_slug"  table:"post_categories"`
	CategoryColor *string `column:"color"     db:"category_color" table:"post_categories"`
}

func (PostDetail) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = posts.author_id LEFT JOIN post_categories ON post_categories.id = posts.category_id"
}

type Category struct {
	ID          string  `db:"id"`
	Name        string  `db:"name"`
	Slug        string  `db:"slug"`
	Description *string `db:"description"`
	Color       *string `db:"color"`
	model.Metadata
}
