package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/user/model"
	"tripplanner/shared/constant"
	"tripplanner/shared/storage"
)

type User interface {
	GetAll(ctx context.Context) ([]model.User, error)
	SaveAll(ctx context.Context, users []model.User) error
}

type repositoryImpl struct {
	store storage.Storage
	otel  otel.Otel
}

func New(store storage.Storage, otel otel.Otel) User {
	return &repositoryImpl{
		store: store,
		otel:  otel,
	}
}

func (r *repositoryImpl) GetAll(ctx context.Context) (res []model.User, err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = r.store.Load(ctx, constant.StoreKeyUsers, &res); err != nil {
		return nil, fmt.Errorf("failed to load users: %w", err)
	}

	if res == nil {
		res = []model.User{}
	}

	return res, nil
}

func (r *repositoryImpl) SaveAll(ctx context.Context, users []model.User) (err error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".SaveAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if users == nil {
		users = []model.User{}
	}

	if err = r.store.Save(ctx, constant.StoreKeyUsers, users, 0); err != nil {
		return fmt.Errorf("failed to save users: %w", err)
	}

	return nil
}
