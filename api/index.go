package handler

import (
	"hotelpms/config"
	"hotelpms/di"
	_ "hotelpms/docs"
	"hotelpms/shared/logger"
	"net/http"
	"sync"
)

var (
	app  *di.Application
	once sync.Once
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		app = di.InitializeService()
	})

	app.HTTP.ServeHTTP(w, r)
}
