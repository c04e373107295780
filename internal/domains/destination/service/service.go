package service

import (
	"context"

	"tripplanner/infras/otel"
	"tripplanner/internal/domains/destination/model/dto"
	"tripplanner/internal/domains/destination/repository"
	"tripplanner/shared/constant"
	"tripplanner/shared/failure"
)

type Destination interface {
	List(ctx context.Context) dto.GetDestinationsResponse
	Get(ctx context.Context, name string) (dto.DestinationResponse, error)
}

type serviceImpl struct {
	repo repository.Destination
	otel otel.Otel
}

func New(repo repository.Destination, otel otel.Otel) Destination {
	return &serviceImpl{
		repo: repo,
		otel: otel,
	}
}

func (s *serviceImpl) List(ctx context.Context) (res dto.GetDestinationsResponse) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".destination.List")
	defer scope.End()

	res.FromModels(s.repo.GetAll())

	return res
}

func (s *serviceImpl) Get(ctx context.Context, name string) (res dto.DestinationResponse, err error) {
	_, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".destination.Get")
	defer scope.End()

	scope.SetAttribute("destination.name", name)

	destination, ok := s.repo.Get(name)
	if !ok {
		return res, failure.NotFound("destination not found") //nolint:wrapcheck
	}

	res.FromModel(destination)

	return res, nil
}
