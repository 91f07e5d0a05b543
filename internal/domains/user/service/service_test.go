package service_test

import (
	"context"
	"errors"
	"hotelpms/config"
	"hotelpms/infras/otel/mocks"
	userMocks "hotelpms/internal/domains/user/mocks"
	"hotelpms/internal/domains/user/model"
	"hotelpms/internal/domains/user/model/dto"
	"hotelpms/internal/domains/user/service"
	cacheMocks "hotelpms/shared/cache/mocks"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/password"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *userMocks.MockUser
	cache *cacheMocks.MockRedisCache
	cfg   *config.Config
	svc   service.User
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		cfg:   cfg,
	}
	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).AnyTimes()
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func user(id, level string) model.User {
	return model.User{ID: id, Email: id + "@hotel.test", Level: level, Active: true}
}

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestUserService_Create(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().
					Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, u model.User) error {
						assert.Equal(t, "desk@hotel.test", u.Email)
						assert.Equal(t, constant.RoleFrontDesk, u.Level)
						assert.True(t, u.Active)
						assert.Equal(t, "admin-1", u.CreatedBy)
						assert.NoError(t, password.Verify("secret-pass", u.Password))

						return nil
					})
			},
		},
		{
			name: "email taken",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "unique violation on insert",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
				f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})
			},
			wantCode: http.StatusConflict,
		},
		{
			name: "repository error",
			setupMock: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Create(adminContext(), dto.CreateUserRequest{
				Email:    " Desk@Hotel.test ",
				Password: "secret-pass",
				Level:    constant.RoleFrontDesk,
			})

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "desk@hotel.test", res.Email)
			assert.NotEmpty(t, res.ID)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestUserService_GetAll(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(11, nil)
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.User, error) {
			assert.Equal(t, "users.email", params.SortBy)

			return []model.User{user("u-1", constant.RoleAdmin), user("u-2", constant.RoleCashier)}, nil
		})

	res, err := f.svc.GetAll(adminContext(), gDto.QueryParams{Limit: 5, Page: 1, SortBy: "email"}, gDto.FilterGroup{})

	assert.NoError(t, err)
	assert.Len(t, res.Users, 2)
	assert.Equal(t, 3, res.TotalPage)
	assert.Equal(t, 11, res.TotalData)

	time.Sleep(10 * time.Millisecond)
}

func TestUserService_Get(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		f := newFixture(t)
		u := user("u-1", constant.RoleManager)
		login := time.Date(2024, 8, 14, 9, 30, 0, 0, time.UTC)
		u.LastLogin = &login
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(u, nil)

		res, err := f.svc.Get(adminContext(), "u-1")

		assert.NoError(t, err)
		assert.Equal(t, constant.RoleManager, res.Level)
		assert.NotEmpty(t, res.LastLogin)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)

		_, err := f.svc.Get(adminContext(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestUserService_Me(t *testing.T) {
	t.Run("reads caller from context", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user("admin-1", constant.RoleAdmin), nil)

		res, err := f.svc.Me(adminContext())

		assert.NoError(t, err)
		assert.Equal(t, "admin-1", res.ID)

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.Me(context.Background())

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestUserService_Update(t *testing.T) {
	tests := []struct {
		name      string
		id        string
		req       dto.UpdateUserRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "deactivate another account",
			id:   "u-2",
			req:  dto.UpdateUserRequest{Active: boolPtr(false)},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user("u-2", constant.RoleCashier), nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, false, fields[model.FieldActive])
						assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:      "empty request",
			id:        "u-2",
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "self deactivation",
			id:        "admin-1",
			req:       dto.UpdateUserRequest{Active: boolPtr(false)},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "self demotion",
			id:        "admin-1",
			req:       dto.UpdateUserRequest{Level: strPtr(constant.RoleManager)},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "self rename allowed",
			id:   "admin-1",
			req:  dto.UpdateUserRequest{FullName: strPtr("Asha")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user("admin-1", constant.RoleAdmin), nil)
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "missing",
			id:   "u-9",
			req:  dto.UpdateUserRequest{FullName: strPtr("Asha")},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.Update(adminContext(), tt.req, tt.id)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestUserService_Delete(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(user("u-2", constant.RoleCashier), nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		assert.NoError(t, f.svc.Delete(adminContext(), "u-2"))

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("own account", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.Delete(adminContext(), "admin-1")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestUserService_EnsureAdmin(t *testing.T) {
	t.Run("creates admin when none exists", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.App.BootstrapAdmin.Email = "owner@hotel.test"
		f.cfg.App.BootstrapAdmin.Password = "change-me-now"

		gomock.InOrder(
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, u model.User) error {
				assert.Equal(t, constant.RoleAdmin, u.Level)
				assert.Equal(t, constant.ContextSystem, u.CreatedBy)

				return nil
			})

		assert.NoError(t, f.svc.EnsureAdmin(context.Background()))

		time.Sleep(10 * time.Millisecond)
	})

	t.Run("admin already present", func(t *testing.T) {
		f := newFixture(t)
		f.cfg.App.BootstrapAdmin.Email = "owner@hotel.test"
		f.cfg.App.BootstrapAdmin.Password = "change-me-now"
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		assert.NoError(t, f.svc.EnsureAdmin(context.Background()))
	})

	t.Run("not configured", func(t *testing.T) {
		f := newFixture(t)

		assert.NoError(t, f.svc.EnsureAdmin(context.Background()))
	})
}
