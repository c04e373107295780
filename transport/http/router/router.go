package router

import (
	"github.com/go-chi/chi/v5"

	"tripplanner/internal/handlers/auth"
	"tripplanner/internal/handlers/booking"
	"tripplanner/internal/handlers/destination"
)

type DomainHandlers struct {
	Auth        auth.Handler
	Booking     booking.Handler
	Destination destination.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Destination.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
