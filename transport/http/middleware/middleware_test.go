package middleware_test

import (
	"context"
	"errors"
	"hotelpms/config"
	"hotelpms/infras/jwt"
	jwtMocks "hotelpms/infras/jwt/mocks"
	"hotelpms/infras/otel/mocks"
	"hotelpms/permissions"
	cacheMocks "hotelpms/shared/cache/mocks"
	"hotelpms/shared/constant"
	"hotelpms/transport/http/middleware"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	user, _ := r.Context().Value(constant.ContextKeyUserID).(string)
	w.Header().Set("X-User", user)
	w.WriteHeader(http.StatusOK)
}

func TestRateLimit(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 2
	cfg.App.RateLimiter.WindowSeconds = 60

	tests := []struct {
		name          string
		setupMock     func(c *cacheMocks.MockRedisCache)
		wantCode      int
		wantRemaining string
	}{
		{
			name: "first request",
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.1", 60).Return(int64(1), nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "1",
		},
		{
			name: "last request of the window",
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), "limiter:10.0.0.1", 60).Return(int64(2), nil)
			},
			wantCode:      http.StatusOK,
			wantRemaining: "0",
		},
		{
			name: "over the limit",
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(3), nil)
			},
			wantCode:      http.StatusTooManyRequests,
			wantRemaining: "0",
		},
		{
			name: "redis down fails open",
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().Increment(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), errors.New("connection refused"))
			},
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
			tt.setupMock(redisCache)

			handler := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache).RateLimit()(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/api/rooms", nil)
			req.RemoteAddr = "10.0.0.1:51234"
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			assert.Equal(t, tt.wantRemaining, rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
		})
	}
}

func TestIdempotency(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Idempotency.Enable = true
	cfg.App.Idempotency.TTLSeconds = 30

	failing := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})

	tests := []struct {
		name      string
		method    string
		key       string
		next      http.Handler
		setupMock func(c *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name:   "first submit",
			method: http.MethodPost,
			key:    "abc",
			next:   http.HandlerFunc(okHandler),
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().
					SaveIfAbsent(gomock.Any(), "idempotency:user-1:POST:/api/bookings/b-1/payment:abc", true, 30).
					Return(true, nil)
			},
			wantCode: http.StatusOK,
		},
		{
			name:   "duplicate submit",
			method: http.MethodPost,
			key:    "abc",
			next:   http.HandlerFunc(okHandler),
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name:   "failed request releases key",
			method: http.MethodPost,
			key:    "abc",
			next:   failing,
			setupMock: func(c *cacheMocks.MockRedisCache) {
				c.EXPECT().SaveIfAbsent(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
				c.EXPECT().Delete(gomock.Any(), "idempotency:user-1:POST:/api/bookings/b-1/payment:abc").Return(nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "reads are not guarded",
			method:    http.MethodGet,
			key:       "abc",
			next:      http.HandlerFunc(okHandler),
			setupMock: func(_ *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusOK,
		},
		{
			name:      "no key",
			method:    http.MethodPost,
			next:      http.HandlerFunc(okHandler),
			setupMock: func(_ *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			redisCache := cacheMocks.NewMockRedisCache(gomock.NewController(t))
			tt.setupMock(redisCache)

			handler := middleware.NewAppMiddleware(mocks.NewOtel(), cfg, redisCache).Idempotency(tt.next)

			req := httptest.NewRequest(tt.method, "/api/bookings/b-1/payment", nil)
			req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserID, "user-1"))

			if tt.key != "" {
				req.Header.Set(constant.RequestHeaderIdempotencyKey, tt.key)
			}

			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func newAuthRouter(t *testing.T, jwtService jwt.JWT, cfg *config.Config) http.Handler {
	t.Helper()

	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/api/auth/login", Method: http.MethodPost, Skip: true},
			{Path: "/api/cashier/export", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin, constant.RoleCashier}},
		},
	}

	authRole := middleware.NewAuthRoleMiddleware(jwtService, mocks.NewOtel(), data, cfg)

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Use(authRole.APIKey, authRole.Auth, authRole.RBAC)
		r.Post("/auth/login", okHandler)
		r.Get("/cashier/export", okHandler)
	})

	return router
}

func TestAuthRole(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.APIKey = "internal-key"

	tests := []struct {
		name      string
		method    string
		path      string
		headers   map[string]string
		setupMock func(j *jwtMocks.MockJWT)
		wantCode  int
		wantUser  string
	}{
		{
			name:      "public route",
			method:    http.MethodPost,
			path:      "/api/auth/login",
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
		},
		{
			name:      "missing token",
			method:    http.MethodGet,
			path:      "/api/cashier/export",
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name:    "expired token",
			method:  http.MethodGet,
			path:    "/api/cashier/export",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer old"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), "old", jwt.AccessToken).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "empty claims",
			method:  http.MethodGet,
			path:    "/api/cashier/export",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.Claims{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name:    "role allowed",
			method:  http.MethodGet,
			path:    "/api/cashier/export",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&jwt.Claims{UserID: "user-1", Email: "c@hotel.test", Role: constant.RoleCashier}, nil)
			},
			wantCode: http.StatusOK,
			wantUser: "user-1",
		},
		{
			name:    "role denied",
			method:  http.MethodGet,
			path:    "/api/cashier/export",
			headers: map[string]string{constant.RequestHeaderAuthorization: "Bearer token"},
			setupMock: func(j *jwtMocks.MockJWT) {
				j.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(&jwt.Claims{UserID: "user-2", Email: "f@hotel.test", Role: constant.RoleFrontDesk}, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "internal api key",
			method:    http.MethodGet,
			path:      "/api/cashier/export",
			headers:   map[string]string{constant.RequestHeaderAPIKey: "internal-key"},
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusOK,
			wantUser:  constant.ContextSystem,
		},
		{
			name:      "wrong api key",
			method:    http.MethodGet,
			path:      "/api/cashier/export",
			headers:   map[string]string{constant.RequestHeaderAPIKey: "guess"},
			setupMock: func(_ *jwtMocks.MockJWT) {},
			wantCode:  http.StatusForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			jwtService := jwtMocks.NewMockJWT(gomock.NewController(t))
			tt.setupMock(jwtService)

			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(""))
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			rec := httptest.NewRecorder()

			newAuthRouter(t, jwtService, cfg).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantUser != "" {
				assert.Equal(t, tt.wantUser, rec.Header().Get("X-User"))
			}
		})
	}
}

func TestRBAC_TracesDenial(t *testing.T) {
	tracer := mocks.NewRecorder()
	data := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/api/cashier/summary", Method: http.MethodGet, Permissions: []string{constant.RoleCashier}},
		},
	}

	authRole := middleware.NewAuthRoleMiddleware(jwtMocks.NewMockJWT(gomock.NewController(t)), tracer, data, &config.Config{})

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		r.Use(authRole.RBAC)
		r.Get("/cashier/summary", okHandler)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/cashier/summary", nil)
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserRole, constant.RoleFrontDesk))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, []string{"rbac.middleware"}, tracer.Spans())
	assert.Len(t, tracer.Errors(), 1)
}

func TestUUIDParams(t *testing.T) {
	router := chi.NewRouter()
	router.With(middleware.UUIDParams("id")).Get("/rooms/{id}", okHandler)

	tests := []struct {
		name     string
		path     string
		wantCode int
	}{
		{name: "uuid", path: "/rooms/2f1c1c8e-6d0a-4a7e-9a43-3f6f7f0c2b11", wantCode: http.StatusOK},
		{name: "room number", path: "/rooms/101", wantCode: http.StatusBadRequest},
		{name: "sql fragment", path: "/rooms/1%27%20OR%201=1", wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.wantCode, rec.Code)

			if tt.wantCode == http.StatusBadRequest {
				assert.Contains(t, rec.Body.String(), "id must be a valid id")
			}
		})
	}
}
