package router

import (
	"hotelpms/internal/handlers/auth"
	"hotelpms/internal/handlers/booking"
	"hotelpms/internal/handlers/cashier"
	"hotelpms/internal/handlers/customer"
	"hotelpms/internal/handlers/foodorder"
	"hotelpms/internal/handlers/room"
	"hotelpms/internal/handlers/user"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth      auth.Handler
	User      user.Handler
	Room      room.Handler
	Customer  customer.Handler
	Booking   booking.Handler
	FoodOrder foodorder.Handler
	Cashier   cashier.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

// SetupRoutes mounts every domain under /api. The middlewares only wrap the /api group.
func (r *Router) SetupRoutes(router chi.Router, middlewares ...func(http.Handler) http.Handler) {
	router.Route("/api", func(routerGroup chi.Router) {
		routerGroup.Use(middlewares...)

		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Customer.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.FoodOrder.Router(routerGroup)
		r.DomainHandlers.Cashier.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
