package homepage

import (
	"folio/infras/otel"
	"folio/internal/domains/homepage/service"
	"folio/shared/constant"
	"folio/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Homepage
	otel    otel.Otel
}

func New(service service.Homepage, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/homepage", handler.GetHomepage)
}

// GetHomepage returns the aggregated landing page content.
// @Summary Get homepage content
// @Tags Homepage
// @Produce json
// @Success 200 {object} dto.HomepageResponse
// @Failure 500 {object} response.Error
// @Router /v1/homepage [get]
func (handler *Handler) GetHomepage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetHomepage")
	defer scope.End()

	homepage, err := handler.service.Get(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get homepage")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, homepage)
}
