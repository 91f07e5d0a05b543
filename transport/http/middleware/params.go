package middleware

import (
	"fmt"
	"hotelpms/shared/failure"
	"hotelpms/shared/validator"
	"hotelpms/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// UUIDParams rejects the request with 400 unless each named path parameter is a UUID.
// It must be mounted inline (chi.Router.With) so the route parameters are already resolved.
func UUIDParams(names ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, name := range names {
				if err := validator.ValidateVar(chi.URLParam(r, name), "required,uuid"); err != nil {
					response.WithError(w, failure.BadRequestFromString(fmt.Sprintf("%s must be a valid id", name)))

					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
