package dto

import (
	"folio/shared/constant"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

const (
	SortDirAsc  = "ASC"
	SortDirDesc = "DESC"
)

type QueryParams struct {
	Page    int         `json:"page"     validate:"omitempty"`
	Limit   int         `json:"limit"    validate:"omitempty"`
	SortBy  string      `json:"sort_by"  validate:"omitempty"`
	SortDir string      `json:"sort_dir" validate:"omitempty,oneof=ASC DESC"`
	Orders  []SortOrder `json:"orders,omitempty" swaggerignore:"true"`
}

// SortOrder is one column of a multi-column ORDER BY. When QueryParams.Orders is set it takes
// precedence over SortBy/SortDir.
type SortOrder struct {
	Field string `json:"field"`
	Dir   string `json:"dir"`
	Table string `json:"table,omitempty"`
}

func (o SortOrder) String() string {
	column := o.Field
	if o.Table != "" {
		column = o.Table + "." + o.Field
	}

	dir := strings.ToUpper(o.Dir)
	if dir != SortDirAsc && dir != SortDirDesc {
		dir = SortDirAsc
	}

	return column + " " + dir
}

// AllowSortBy clears SortBy when it is not one of the allowed columns so that client input
// never reaches the ORDER BY clause unchecked.
func (q *QueryParams) AllowSortBy(columns ...string) {
	if !slices.Contains(columns, q.SortBy) {
		q.SortBy = ""
		q.SortDir = ""
	}
}

// FromRequest reads page, limit, sort_by and sort_dir from the query string. Invalid values are
// ignored and limit is capped at constant.MaxValueLimit. With defaultRequest the missing page and
// limit get their defaults.
func (q *QueryParams) FromRequest(r *http.Request, defaultRequest bool) {
	queryParams := r.URL.Query()

	if page := queryParams.Get(constant.RequestParamPage); page != "" {
		if pageInt, err := strconv.Atoi(page); err == nil && pageInt > 0 {
			q.Page = pageInt
		}
	}

	if limit := queryParams.Get(constant.RequestParamLimit); limit != "" {
		if limitInt, err := strconv.Atoi(limit); err == nil && limitInt > 0 {
			q.Limit = min(limitInt, constant.MaxValueLimit)
		}
	}

	if sortBy := queryParams.Get(constant.RequestParamSortBy); sortBy != "" {
		q.SortBy = sortBy
	}

	if sortDir := strings.ToUpper(queryParams.Get(constant.RequestParamSortDir)); sortDir == SortDirAsc || sortDir == SortDirDesc {
		q.SortDir = sortDir
	}

	if defaultRequest {
		if q.Page == 0 {
			q.Page = constant.DefaultValuePage
		}

		if q.Limit == 0 {
			q.Limit = constant.DefaultValueLimit
		}
	}
}
