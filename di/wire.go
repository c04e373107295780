//go:build wireinject
// +build wireinject

package di

import (
	"tripplanner/config"
	"tripplanner/infras/otel"
	"tripplanner/shared/storage"
	"tripplanner/transport/http"
	"tripplanner/transport/http/middleware"
	"tripplanner/transport/http/router"

	"github.com/google/wire"

	authService "tripplanner/internal/domains/auth/service"
	bookingRepository "tripplanner/internal/domains/booking/repository"
	bookingService "tripplanner/internal/domains/booking/service"
	destinationRepository "tripplanner/internal/domains/destination/repository"
	destinationService "tripplanner/internal/domains/destination/service"
	sessionRepository "tripplanner/internal/domains/session/repository"
	userRepository "tripplanner/internal/domains/user/repository"
	authHandler "tripplanner/internal/handlers/auth"
	bookingHandler "tripplanner/internal/handlers/booking"
	destinationHandler "tripplanner/internal/handlers/destination"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	otel.New,
	storage.NewDriver,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	storage.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	sessionRepository.New,
	authService.New,
)

var destinationDomain = wire.NewSet(
	destinationRepository.New,
	destinationService.New,
)

var domains = wire.NewSet(
	bookingDomain,
	authDomain,
	destinationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	bookingHandler.New,
	destinationHandler.New,
	router.New,
)

func InitializeService() (*http.HTTP, error) {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}, nil
}
