package service_test

import (
	"context"
	"errors"
	"hotelpms/config"
	"hotelpms/infras/jwt"
	jwtMocks "hotelpms/infras/jwt/mocks"
	"hotelpms/infras/otel/mocks"
	"hotelpms/internal/domains/auth/model/dto"
	"hotelpms/internal/domains/auth/service"
	userMocks "hotelpms/internal/domains/user/mocks"
	userModel "hotelpms/internal/domains/user/model"
	userDto "hotelpms/internal/domains/user/model/dto"
	"hotelpms/shared/constant"
	gDto "hotelpms/shared/dto"
	"hotelpms/shared/failure"
	"hotelpms/shared/password"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	repo    *userMocks.MockUser
	users   *userMocks.MockUserService
	jwt     *jwtMocks.MockJWT
	svc     service.Auth
	account userModel.User
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	hashed, err := password.Hash("secret-pass")
	require.NoError(t, err)

	f := fixture{
		repo:  userMocks.NewMockUser(ctrl),
		users: userMocks.NewMockUserService(ctrl),
		jwt:   jwtMocks.NewMockJWT(ctrl),
		account: userModel.User{
			ID:       "user-1",
			Email:    "desk@hotel.test",
			Password: hashed,
			Level:    constant.RoleFrontDesk,
			Active:   true,
		},
	}
	f.svc = service.New(f.repo, f.users, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func tokenPair() *jwt.TokenPair {
	return &jwt.TokenPair{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer", ExpiresIn: 900}
}

func TestAuthService_Register(t *testing.T) {
	f := newFixture(t)
	req := userDto.CreateUserRequest{Email: "cashier@hotel.test", Password: "secret-pass", Level: constant.RoleCashier}

	f.users.EXPECT().Create(gomock.Any(), req).Return(userDto.UserResponse{ID: "user-2", Level: constant.RoleCashier}, nil)

	res, err := f.svc.Register(context.Background(), req)

	assert.NoError(t, err)
	assert.Equal(t, "user-2", res.ID)
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name      string
		req       dto.LoginRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			req:  dto.LoginRequest{Email: "Desk@Hotel.test", Password: "secret-pass"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), "desk@hotel.test").Return(f.account, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "desk@hotel.test", constant.RoleFrontDesk).Return(tokenPair(), nil)
				f.repo.EXPECT().RecordLogin(gomock.Any(), "user-1", gomock.Any(), "").Return(nil)
			},
		},
		{
			name: "last login failure does not block sign in",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "secret-pass"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(f.account, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair(), nil)
				f.repo.EXPECT().RecordLogin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("db down"))
			},
		},
		{
			name: "outdated hash is upgraded",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "secret-pass"},
			setupMock: func(f fixture) {
				legacy, err := bcrypt.GenerateFromPassword([]byte("secret-pass"), bcrypt.MinCost)
				require.NoError(t, err)

				account := f.account
				account.Password = string(legacy)

				f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(account, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tokenPair(), nil)
				f.repo.EXPECT().
					RecordLogin(gomock.Any(), "user-1", gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, _ time.Time, rehashed string) error {
						assert.NoError(t, password.Verify("secret-pass", rehashed))
						assert.False(t, password.NeedsRehash(rehashed))

						return nil
					})
			},
		},
		{
			name: "unknown email",
			req:  dto.LoginRequest{Email: "nobody@hotel.test", Password: "secret-pass"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "wrong password",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "wrong-pass"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(f.account, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated account",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "secret-pass"},
			setupMock: func(f fixture) {
				account := f.account
				account.Active = false
				f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(account, nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name: "repository error",
			req:  dto.LoginRequest{Email: "desk@hotel.test", Password: "secret-pass"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().GetByEmail(gomock.Any(), gomock.Any()).Return(userModel.User{}, errors.New("db down"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.Login(context.Background(), tt.req)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "access", res.AccessToken)
			assert.Equal(t, "user-1", res.User.ID)
			assert.Equal(t, constant.RoleFrontDesk, res.User.Level)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success uses current level",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), "refresh", jwt.RefreshToken).Return(&jwt.Claims{UserID: "user-1", Role: constant.RoleCashier}, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(f.account, nil)
				f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "user-1", "desk@hotel.test", constant.RoleFrontDesk).Return(tokenPair(), nil)
			},
		},
		{
			name: "invalid token",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, jwt.ErrExpiredToken)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated since issue",
			setupMock: func(f fixture) {
				account := f.account
				account.Active = false
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.Claims{UserID: "user-1"}, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(account, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deleted since issue",
			setupMock: func(f fixture) {
				f.jwt.EXPECT().ValidateToken(gomock.Any(), gomock.Any(), gomock.Any()).Return(&jwt.Claims{UserID: "user-1"}, nil)
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "refresh"})

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, "refresh", res.RefreshToken)
		})
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "user-1")

	tests := []struct {
		name      string
		ctx       context.Context
		req       dto.ChangePasswordRequest
		setupMock func(f fixture)
		wantCode  int
	}{
		{
			name: "success",
			ctx:  ctx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "secret-pass", NewPassword: "another-pass"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(f.account, nil)
				f.repo.EXPECT().
					Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						hashed, ok := fields[userModel.FieldPassword].(string)
						assert.True(t, ok)
						assert.NoError(t, password.Verify("another-pass", hashed))
						assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name: "wrong current password",
			ctx:  ctx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "nope-nope", NewPassword: "another-pass"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(f.account, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "anonymous",
			ctx:       context.Background(),
			req:       dto.ChangePasswordRequest{CurrentPassword: "secret-pass", NewPassword: "another-pass"},
			setupMock: func(_ fixture) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "account removed",
			ctx:  ctx,
			req:  dto.ChangePasswordRequest{CurrentPassword: "secret-pass", NewPassword: "another-pass"},
			setupMock: func(f fixture) {
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(userModel.User{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setupMock(f)

			err := f.svc.ChangePassword(tt.ctx, tt.req)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
		})
	}
}
