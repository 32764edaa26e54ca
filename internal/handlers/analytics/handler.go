package analytics

import (
	"folio/infras/otel"
	"folio/internal/domains/analytics/service"
	"folio/shared/constant"
	"folio/transport/http/response"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const queryLimit = "limit"

type Handler struct {
	service service.Analytics
	otel    otel.Otel
}

func New(service service.Analytics, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/admin/analytics", func(routerGroup chi.Router) {
		routerGroup.Get("/overview", handler.GetOverview)
		routerGroup.Get("/top-pages", handler.GetTopPages)
	})
}

// GetOverview returns content counts and the total page views.
// @Summary Get analytics overview
// @Tags Analytics
// @Produce json
// @Success 200 {object} dto.OverviewStats
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/analytics/overview [get]
// @Security BearerAuth
func (handler *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverview")
	defer scope.End()

	stats, err := handler.service.FetchOverviewStats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to fetch overview stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetTopPages returns the most viewed public paths.
// @Summary Get top pages
// @Tags Analytics
// @Produce json
// @Param limit query int false "Number of pages, default 10, max 100"
// @Success 200 {object} dto.TopPagesResponse
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/analytics/top-pages [get]
// @Security BearerAuth
func (handler *Handler) GetTopPages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTopPages")
	defer scope.End()

	limit, _ := strconv.Atoi(r.URL.Query().Get(queryLimit))

	pages, err := handler.service.FetchTopPages(ctx, limit)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to fetch top pages")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, pages)
}
