package dto

import "folio/internal/domains/analytics/model"

type OverviewStats struct {
	Images         int   `json:"images"`
	Albums         int   `json:"albums"`
	PublishedPosts int   `json:"published_posts"`
	Testimonials   int   `json:"testimonials"`
	Users          int   `json:"users"`
	PageViews      int64 `json:"page_views"`
}

type TopPage struct {
	Path  string `json:"path"`
	Views int64  `json:"views"`
}

type TopPagesResponse struct {
	Pages []TopPage `json:"pages"`
}

func (r *TopPagesResponse) FromModels(models []model.PageCount) {
	r.Pages = make([]TopPage, len(models))
	for i, mod := range models {
		r.Pages[i] = TopPage{Path: mod.Path, Views: mod.Views}
	}
}
