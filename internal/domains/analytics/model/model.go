package model

const (
	EntityName = "analytics"

	// KeyPageViews is a sorted set of request paths scored by view count.
	KeyPageViews = "analytics:page_views"
	// KeyTotalViews counts every recorded view.
	KeyTotalViews = "analytics:page_views:total"
)

type PageCount struct {
	Path  string
	Views int64
}
