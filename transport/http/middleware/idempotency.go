package middleware

import (
	"context"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	"hotelpms/shared/failure"
	"hotelpms/transport/http/response"
	"net/http"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

const (
	cacheKeyIdempotency = "idempotency"

	defaultIdempotencyTTLSeconds = 60
)

// Idempotency rejects a repeated mutating request carrying an Idempotency-Key already seen for the same user.
// The key is held for the configured TTL after a successful response and released on any failure so the client can retry.
func (a *appMiddleware) Idempotency(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(constant.RequestHeaderIdempotencyKey)

		if !a.config.App.Idempotency.Enable || key == constant.Empty || !isMutating(r.Method) {
			next.ServeHTTP(w, r)

			return
		}

		ttl := a.config.App.Idempotency.TTLSeconds
		if ttl <= 0 {
			ttl = defaultIdempotencyTTLSeconds
		}

		ctx := r.Context()
		cacheKey := shared.BuildCacheKey(cacheKeyIdempotency, shared.UserFromContext(ctx), r.Method, r.URL.Path, key)

		saved, err := a.cache.SaveIfAbsent(ctx, cacheKey, true, ttl)
		if err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("idempotency check unavailable, continuing")

			next.ServeHTTP(w, r)

			return
		}

		if !saved {
			response.WithError(w, failure.Conflict(constant.ResponseErrorDuplicateRequest))

			return
		}

		ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(context.WithValue(ctx, constant.ContextKeyIdempotencyKey, key)))

		if ww.Status() >= http.StatusBadRequest {
			if err := a.cache.Delete(context.WithoutCancel(ctx), cacheKey); err != nil {
				log.Error().Err(err).Str("key", cacheKey).Msg("failed to release idempotency key")
			}
		}
	})
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}

	return false
}
