package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/booking/model/dto"
	"tripplanner/internal/domains/booking/repository"
	sessionRepo "tripplanner/internal/domains/session/repository"
	"tripplanner/shared/constant"
	"tripplanner/shared/failure"
	"tripplanner/shared/timezone"
	"tripplanner/shared/validator"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	List(ctx context.Context) (dto.GetBookingsResponse, error)
	Cancel(ctx context.Context, index int) error
	Draft(ctx context.Context, pkg string, price float64) (dto.DraftResponse, error)
	Quote(ctx context.Context, price float64, persons int) (dto.QuoteResponse, error)
	// Watch emits the current list, then a fresh list every time the stored
	// bookings change. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan dto.GetBookingsResponse, error)
}

type serviceImpl struct {
	// mu serialises every read-modify-write of the bookings list
	mu          sync.Mutex
	repo        repository.Booking
	sessionRepo sessionRepo.Session
	otel        otel.Otel
}

func New(repo repository.Booking, sessionRepo sessionRepo.Session, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:        repo,
		sessionRepo: sessionRepo,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.sessionRepo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current session")

		return res, fmt.Errorf("failed to get current session: %w", err)
	}

	if current == nil {
		return res, failure.NotLoggedIn
	}

	if err = validateBooking(&req); err != nil {
		return res, err
	}

	booking := req.ToModel(*current)

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	bookings = append(bookings, booking)

	if err = s.repo.SaveAll(ctx, bookings); err != nil {
		log.Error().Err(err).Msg("failed to save bookings")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	scope.SetAttribute("booking.id", booking.ID)
	log.Info().
		Str("id", booking.ID).
		Str("package", booking.Package).
		Str("user", booking.UserEmail).
		Float64("total", booking.TotalPrice).
		Msg("booking confirmed")

	res.FromModel(len(bookings)-1, booking)

	return res, nil
}

// validateBooking runs the form checks in the order the user sees them:
// blank fields first, then the phone length, then everything else.
func validateBooking(req *dto.CreateBookingRequest) error {
	req.Normalize()

	if req.MissingRequired() {
		return failure.MissingFields
	}

	if err := validator.ValidateVar(req.BookerPhone, "len=10"); err != nil {
		return failure.InvalidPhone
	}

	if err := validator.ValidateStruct(req); err != nil {
		return err //nolint:wrapcheck
	}

	travelDate, err := timezone.Parse(constant.TravelDateFormat, req.TravelDate)
	if err != nil {
		return failure.BadRequest(err) //nolint:wrapcheck
	}

	today, _ := timezone.Parse(constant.TravelDateFormat, timezone.Today())
	if travelDate.Before(today) {
		return failure.TravelDateInPast
	}

	return nil
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.List")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings)

	return res, nil
}

func (s *serviceImpl) Cancel(ctx context.Context, index int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	scope.SetAttribute("booking.index", index)

	s.mu.Lock()
	defer s.mu.Unlock()

	bookings, err := s.repo.GetAll(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return fmt.Errorf("failed to get bookings: %w", err)
	}

	if index >= 0 && index < len(bookings) {
		log.Info().Int("index", index).Str("id", bookings[index].ID).Msg("booking cancelled")

		bookings = append(bookings[:index:index], bookings[index+1:]...)
	} else {
		log.Debug().Int("index", index).Int("count", len(bookings)).Msg("no booking at index, nothing to cancel")
	}

	// the list is written back either way, an unknown index is not an error
	if err = s.repo.SaveAll(ctx, bookings); err != nil {
		log.Error().Err(err).Msg("failed to save bookings")

		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	return nil
}

func (s *serviceImpl) Draft(ctx context.Context, pkg string, price float64) (res dto.DraftResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Draft")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	current, err := s.sessionRepo.Get(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get current session")

		return res, fmt.Errorf("failed to get current session: %w", err)
	}

	if current == nil {
		return res, failure.NotLoggedIn
	}

	if price < 0 {
		return res, failure.NegativePrice
	}

	res.FromSession(pkg, price, *current)

	return res, nil
}

func (s *serviceImpl) Quote(ctx context.Context, price float64, persons int) (res dto.QuoteResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".booking.Quote")
	defer scope.End()

	if price < 0 {
		return res, failure.NegativePrice
	}

	res.FromInput(price, persons)

	return res, nil
}

func (s *serviceImpl) Watch(ctx context.Context) (<-chan dto.GetBookingsResponse, error) {
	changes, err := s.repo.Changes(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to watch bookings")

		return nil, fmt.Errorf("failed to watch bookings: %w", err)
	}

	out := make(chan dto.GetBookingsResponse)

	go func() {
		defer close(out)

		if !s.emit(ctx, out) {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}

				if !s.emit(ctx, out) {
					return
				}
			}
		}
	}()

	return out, nil
}

// emit sends the current list to out and reports whether the watcher should
// keep going.
func (s *serviceImpl) emit(ctx context.Context, out chan<- dto.GetBookingsResponse) bool {
	res, err := s.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("skipping bookings snapshot")

		return ctx.Err() == nil
	}

	select {
	case out <- res:
		return true
	case <-ctx.Done():
		return false
	}
}
