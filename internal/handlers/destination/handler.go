package destination

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/destination/service"
	"tripplanner/shared/constant"
	"tripplanner/transport/http/response"
)

type Handler struct {
	service service.Destination
	otel    otel.Otel
}

func New(service service.Destination, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/destinations", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetDestinations)
		routerGroup.Get("/{name}", handler.GetDestination)
	})
}

// GetDestinations lists the travel guide.
// @Summary Get all destinations
// @Tags Destination
// @Produce json
// @Success 200 {object} response.Data[dto.GetDestinationsResponse] "Destinations"
// @Router /v1/destinations [get]
func (handler *Handler) GetDestinations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDestinations")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.List(ctx))
}

// GetDestination returns one travel guide entry.
// @Summary Get a destination
// @Description Best time to visit, must-see places and highlights of a destination.
// @Tags Destination
// @Produce json
// @Param name path string true "Destination name"
// @Success 200 {object} response.Data[dto.DestinationResponse] "Destination"
// @Failure 404 {object} response.Error
// @Router /v1/destinations/{name} [get]
func (handler *Handler) GetDestination(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDestination")
	defer scope.End()

	name := chi.URLParam(r, constant.RequestParamName)

	res, err := handler.service.Get(ctx, name)
	if err != nil {
		scope.TraceError(err)
		log.Debug().Err(err).Str("name", name).Msg("destination lookup failed")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
