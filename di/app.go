package di

import (
	"hotelpms/config"
	"hotelpms/infras/kafka"
	"hotelpms/internal/domains/booking/invoice"
	userService "hotelpms/internal/domains/user/service"
	"hotelpms/shared/cache"
	"hotelpms/transport/http"
)

// Application is the API process: the HTTP server plus the services run once at startup.
type Application struct {
	HTTP  *http.HTTP
	Users userService.User
}

// Worker is the event consumer process.
type Worker struct {
	Config *config.Config
	Kafka  kafka.Client
	Cache  cache.RedisCache
}

func invoiceHotel(cfg *config.Config) invoice.Hotel {
	return invoice.Hotel{
		Name:      cfg.Hotel.Name,
		Address:   cfg.Hotel.Address,
		Phone:     cfg.Hotel.Phone,
		GSTNumber: cfg.Hotel.GSTNumber,
		Currency:  cfg.Hotel.Currency,
	}
}
