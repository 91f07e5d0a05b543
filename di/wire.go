//go:build wireinject
// +build wireinject

package di

import (
	"hotelpms/config"
	"hotelpms/infras/jwt"
	"hotelpms/infras/kafka"
	"hotelpms/infras/otel"
	"hotelpms/infras/postgres"
	"hotelpms/infras/redis"
	"hotelpms/infras/s3"
	authService "hotelpms/internal/domains/auth/service"
	"hotelpms/internal/domains/booking/invoice"
	bookingRepository "hotelpms/internal/domains/booking/repository"
	bookingService "hotelpms/internal/domains/booking/service"
	cashierService "hotelpms/internal/domains/cashier/service"
	customerRepository "hotelpms/internal/domains/customer/repository"
	customerService "hotelpms/internal/domains/customer/service"
	foodOrderRepository "hotelpms/internal/domains/foodorder/repository"
	foodOrderService "hotelpms/internal/domains/foodorder/service"
	roomRepository "hotelpms/internal/domains/room/repository"
	roomService "hotelpms/internal/domains/room/service"
	transactionRepository "hotelpms/internal/domains/transaction/repository"
	userRepository "hotelpms/internal/domains/user/repository"
	userService "hotelpms/internal/domains/user/service"
	"hotelpms/internal/events"
	authHandler "hotelpms/internal/handlers/auth"
	bookingHandler "hotelpms/internal/handlers/booking"
	cashierHandler "hotelpms/internal/handlers/cashier"
	customerHandler "hotelpms/internal/handlers/customer"
	foodOrderHandler "hotelpms/internal/handlers/foodorder"
	roomHandler "hotelpms/internal/handlers/room"
	userHandler "hotelpms/internal/handlers/user"
	"hotelpms/permissions"
	"hotelpms/shared/cache"
	"hotelpms/transport/http"
	"hotelpms/transport/http/middleware"
	"hotelpms/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	postgres.NewTransactor,
	otel.New,
	redis.New,
	jwt.New,
	s3.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
	events.NewPublisher,
	invoiceHotel,
	invoice.New,
)

var userDomain = wire.NewSet(
	userRepository.New,
	userService.New,
	authService.New,
)

var roomDomain = wire.NewSet(
	roomRepository.New,
	roomService.New,
)

var customerDomain = wire.NewSet(
	customerRepository.New,
	customerService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	transactionRepository.New,
	wire.Struct(new(bookingService.Repositories), "*"),
	bookingService.New,
	foodOrderRepository.New,
	foodOrderService.New,
	cashierService.New,
)

var domains = wire.NewSet(
	userDomain,
	roomDomain,
	customerDomain,
	bookingDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	userHandler.New,
	roomHandler.New,
	customerHandler.New,
	bookingHandler.New,
	foodOrderHandler.New,
	cashierHandler.New,
	router.New,
)

func InitializeService() *Application {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
		wire.Struct(new(Application), "*"),
	)

	return &Application{}
}

func InitializeWorker() *Worker {
	wire.Build(
		config.Get,
		otel.New,
		redis.New,
		kafka.New,
		cache.NewRedisCache,
		wire.Struct(new(Worker), "*"),
	)

	return &Worker{}
}
