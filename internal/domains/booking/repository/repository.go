package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/booking/model"
	"tripplanner/shared/constant"
	"tripplanner/shared/storage"
)

type Booking interface {
	// GetAll returns the stored list in insertion order, empty when nothing
	// (or nothing readable) is stored.
	GetAll(ctx context.Context) ([]model.Booking, error)
	// SaveAll replaces the stored list with bookings.
	SaveAll(ctx context.Context, bookings []model.Booking) error
	// Changes emits once each time the stored list is replaced.
	Changes(ctx context.Context) (<-chan struct{}, error)
}

type repositoryImpl struct {
	store storage.Storage
	otel  otel.Otel
}

func New(store storage.Storage, otel otel.Otel) Booking {
	return &repositoryImpl{
		store: store,
		otel:  otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (res []model.Booking, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	result, err := r.store.Load(ctx, constant.StoreKeyBookings, &res)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings: %w", err)
	}

	scope.SetAttribute("storage.result", result.String())

	if res == nil {
		res = []model.Booking{}
	}

	return res, nil
}

func (r *repositoryImpl) SaveAll(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".SaveAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if bookings == nil {
		bookings = []model.Booking{}
	}

	scope.SetAttribute("bookings.count", len(bookings))

	if err = r.store.Save(ctx, constant.StoreKeyBookings, bookings, 0); err != nil {
		return fmt.Errorf("failed to save bookings: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Changes(ctx context.Context) (<-chan struct{}, error) {
	keys, err := r.store.Watch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to watch bookings: %w", err)
	}

	out := make(chan struct{}, 1)

	go func() {
		defer close(out)

		for key := range keys {
			if key != constant.StoreKeyBookings {
				continue
			}

			// coalesce bursts, a reader only needs to know the list moved
			select {
			case out <- struct{}{}:
			default:
			}
		}
	}()

	return out, nil
}
