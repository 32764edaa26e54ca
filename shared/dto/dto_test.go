package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"folio/shared/constant"
	"folio/shared/dto"
	"folio/shared/model"
	"folio/shared/timezone"
)

func TestMetadata_FromModel(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)

	metadata := dto.Metadata{}
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, CreatedBy: "admin-1"})

	assert.Equal(t, timezone.Format(createdAt, constant.DateFormat), metadata.CreatedAt)
	assert.Equal(t, "admin-1", metadata.CreatedBy)
	assert.Empty(t, metadata.ModifiedAt)

	modifiedAt := createdAt.Add(time.Hour)
	metadata.FromModel(model.Metadata{CreatedAt: createdAt, ModifiedAt: modifiedAt, ModifiedBy: "admin-2"})

	assert.Equal(t, timezone.Format(modifiedAt, constant.DateFormat), metadata.ModifiedAt)
	assert.Equal(t, "admin-2", metadata.ModifiedBy)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		defaultRequest bool
		expected       dto.QueryParams
	}{
		{
			name:     "all parameters",
			query:    "page=2&limit=20&sort_by=title&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "title", SortDir: dto.SortDirAsc},
		},
		{
			name:           "defaults",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "no defaults",
			expected: dto.QueryParams{},
		},
		{
			name:           "invalid numbers fall back to defaults",
			query:          "page=-1&limit=abc",
			defaultRequest: true,
			expected:       dto.QueryParams{Page: constant.DefaultValuePage, Limit: constant.DefaultValueLimit},
		},
		{
			name:     "limit is capped",
			query:    "limit=5000",
			expected: dto.QueryParams{Limit: constant.MaxValueLimit},
		},
		{
			name:     "unknown sort direction is ignored",
			query:    "sort_by=created_at&sort_dir=sideways",
			expected: dto.QueryParams{SortBy: "created_at"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/v1/images?"+tt.query, nil)

			params := dto.QueryParams{}
			params.FromRequest(req, tt.defaultRequest)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestSortOrder_String(t *testing.T) {
	assert.Equal(t, "images.display_order ASC", dto.SortOrder{Field: "display_order", Dir: "asc", Table: "images"}.String())
	assert.Equal(t, "created_at DESC", dto.SortOrder{Field: "created_at", Dir: dto.SortDirDesc}.String())
	assert.Equal(t, "title ASC", dto.SortOrder{Field: "title", Dir: "sideways"}.String())
}

func TestQueryParams_AllowSortBy(t *testing.T) {
	allowed := dto.QueryParams{SortBy: "title", SortDir: dto.SortDirAsc}
	allowed.AllowSortBy("title", "created_at")

	assert.Equal(t, "title", allowed.SortBy)
	assert.Equal(t, dto.SortDirAsc, allowed.SortDir)

	rejected := dto.QueryParams{SortBy: "1; DROP TABLE images", SortDir: dto.SortDirAsc}
	rejected.AllowSortBy("title", "created_at")

	assert.Empty(t, rejected.SortBy)
	assert.Empty(t, rejected.SortDir)
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq, Table: "images"},
			wantWhere: "images.is_active = :is_active",
			wantArgs:  map[string]any{"is_active": true},
		},
		{
			name:      "custom arg name",
			filter:    dto.Filter{ArgName: "category_slug", Field: "slug", Value: "weddings", Operator: dto.FilterOperatorNotEq, Table: "categories"},
			wantWhere: "categories.slug != :category_slug",
			wantArgs:  map[string]any{"category_slug": "weddings"},
		},
		{
			name:      "range",
			filter:    dto.Filter{Field: "display_order", Value: 3, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "display_order >= :display_order",
			wantArgs:  map[string]any{"display_order": 3},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "title", Value: "50%_off", Operator: dto.FilterOperatorLike},
			wantWhere: "title ILIKE :title",
			wantArgs:  map[string]any{"title": `%50\%\_off%`},
		},
		{
			name:      "in expands the slice",
			filter:    dto.Filter{Field: "key", Value: []string{"site_title", "contact_email"}, Operator: dto.FilterOperatorIn, Table: "settings"},
			wantWhere: "settings.key IN (:key_0, :key_1)",
			wantArgs:  map[string]any{"key_0": "site_title", "key_1": "contact_email"},
		},
		{
			name:      "in with an empty slice matches nothing",
			filter:    dto.Filter{Field: "key", Value: []string{}, Operator: dto.FilterOperatorIn},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "title", Value: "x", Operator: "regex"},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "is_active", Value: true, Operator: dto.FilterOperatorEq},
			dto.Filter{Field: "title", Operator: "unknown"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{ArgName: "featured", Field: "is_featured", Value: true, Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "display_order", Value: 1, Operator: dto.FilterOperatorLessEq},
				},
			},
			"ignored",
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(is_active = :is_active AND (is_featured = :featured OR display_order <= :display_order))", where)
	assert.Equal(t, map[string]any{"is_active": true, "featured": true, "display_order": 1}, args)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
