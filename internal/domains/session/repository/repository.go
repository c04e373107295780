package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/session/model"
	"tripplanner/shared/constant"
	"tripplanner/shared/storage"
)

type Session interface {
	// Get returns the current session, nil when nobody is signed in.
	Get(ctx context.Context) (*model.Session, error)
	Set(ctx context.Context, session model.Session) error
	Clear(ctx context.Context) error
}

type repositoryImpl struct {
	store storage.Storage
	otel  otel.Otel
}

func New(store storage.Storage, otel otel.Otel) Session {
	return &repositoryImpl{
		store: store,
		otel:  otel,
	}
}

func (r *repositoryImpl) Get(ctx context.Context) (res *model.Session, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var current model.Session

	result, err := r.store.Load(ctx, constant.StoreKeyCurrent, &current)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if result != storage.Found {
		return nil, nil
	}

	return &current, nil
}

func (r *repositoryImpl) Set(ctx context.Context, session model.Session) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Set")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.store.Save(ctx, constant.StoreKeyCurrent, session, 0); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

func (r *repositoryImpl) Clear(ctx context.Context) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".session.Clear")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = r.store.Remove(ctx, constant.StoreKeyCurrent); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}

	return nil
}
