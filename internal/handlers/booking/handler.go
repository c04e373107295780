package booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/booking/model/dto"
	"tripplanner/internal/domains/booking/service"
	"tripplanner/shared/constant"
	"tripplanner/shared/failure"
	"tripplanner/shared/validator"
	"tripplanner/transport/http/response"
)

const eventBookings = "bookings"

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/draft", handler.GetDraft)
		routerGroup.Get("/quote", handler.GetQuote)
		routerGroup.Get("/events", handler.StreamBookings)
		routerGroup.Delete("/{index}", handler.CancelBooking)
	})
}

// CreateBooking handles the creation of a new booking.
// @Summary Create a new booking
// @Description Book a package for the signed in user. The total price is the package price times the number of persons.
// @Tags Booking
// @Accept json
// @Produce json
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse] "Booking confirmed"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	// field checks run in the service so their order and messages stay fixed
	if err := validator.Decode(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to decode request body")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking confirmed for " + res.UserEmail)

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetBookings retrieves every stored booking.
// @Summary Get all bookings
// @Description Retrieve every booking in insertion order, with display defaults applied.
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.GetBookingsResponse] "List of bookings"
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	res, err := handler.service.List(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get bookings")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetDraft returns the booking form prefilled for a package.
// @Summary Prefill a booking form
// @Description Prefill the booking form with the package and the signed in user.
// @Tags Booking
// @Produce json
// @Param package query string true "Package name"
// @Param price query number true "Package price"
// @Success 200 {object} response.Data[dto.DraftResponse] "Prefilled form"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Router /v1/bookings/draft [get]
func (handler *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDraft")
	defer scope.End()

	query := r.URL.Query()

	price, err := parsePrice(query.Get(constant.RequestParamPrice))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	res, err := handler.service.Draft(ctx, query.Get(constant.RequestParamPackage), price)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to prefill booking")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// GetQuote computes the total price of a booking.
// @Summary Quote a booking
// @Description Compute the total price for a number of persons. Fewer than one person counts as one.
// @Tags Booking
// @Produce json
// @Param price query number true "Package price"
// @Param persons query int false "Number of persons"
// @Success 200 {object} response.Data[dto.QuoteResponse] "Quote"
// @Failure 400 {object} response.Error
// @Router /v1/bookings/quote [get]
func (handler *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetQuote")
	defer scope.End()

	query := r.URL.Query()

	price, err := parsePrice(query.Get(constant.RequestParamPrice))
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	// anything that is not a number counts as a single person
	persons, _ := strconv.Atoi(query.Get(constant.RequestParamPersons))

	res, err := handler.service.Quote(ctx, price, persons)
	if err != nil {
		scope.TraceError(err)
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}

// StreamBookings pushes the bookings list every time it changes.
// @Summary Stream bookings
// @Description Server-sent events carrying the full bookings list, once on connect and again after every change.
// @Tags Booking
// @Produce text/event-stream
// @Success 200 {object} dto.GetBookingsResponse "bookings event payload"
// @Failure 500 {object} response.Error
// @Router /v1/bookings/events [get]
func (handler *Handler) StreamBookings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	snapshots, err := handler.service.Watch(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to watch bookings")

		response.WithError(w, err)

		return
	}

	flusher, ok := response.StartEventStream(w)
	if !ok {
		return
	}

	log.Debug().Msg("bookings stream opened")

	for snapshot := range snapshots {
		if err := response.WithEvent(w, flusher, eventBookings, snapshot); err != nil {
			log.Warn().Err(err).Msg("bookings stream closed by client")

			return
		}
	}
}

// CancelBooking removes the booking at a list position.
// @Summary Cancel a booking
// @Description Remove the booking at the given position. A position with no booking is ignored.
// @Tags Booking
// @Produce json
// @Param index path int true "Booking position"
// @Success 200 {object} response.Message "Booking cancelled"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{index} [delete]
func (handler *Handler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	index, err := strconv.Atoi(chi.URLParam(r, constant.RequestParamIndex))
	if errors.Is(err, strconv.ErrRange) {
		// no list is that long, cancel it as an unknown position
		index, err = -1, nil
	}

	if err != nil {
		err = failure.BadRequestFromString("index must be a number")
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	if err := handler.service.Cancel(ctx, index); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to cancel booking")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Booking cancelled at index " + strconv.Itoa(index))

	response.WithMessage(w, http.StatusOK, "Booking cancelled")
}

func parsePrice(raw string) (float64, error) {
	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, failure.BadRequestFromString("price must be a number") //nolint:wrapcheck
	}

	return price, nil
}
