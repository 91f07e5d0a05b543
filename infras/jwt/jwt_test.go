package jwt_test

import (
	"context"
	"hotelpms/config"
	"hotelpms/infras/jwt"
	"hotelpms/infras/otel/mocks"
	"hotelpms/shared/constant"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Name = "hotelpms"
	cfg.JWT.AccessSecret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.AccessExpireMin = 15
	cfg.JWT.RefreshExpireMin = 60

	return cfg
}

func newService() jwt.JWT {
	return jwt.New(newConfig(), mocks.NewOtel())
}

func TestGenerateAndValidate(t *testing.T) {
	ctx := context.Background()
	svc := newService()

	pair, err := svc.GenerateTokenPair(ctx, "user-1", "desk@hotel.test", constant.RoleFrontDesk)
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.Equal(t, int64(15*60), pair.ExpiresIn)

	claims, err := svc.ValidateToken(ctx, pair.AccessToken, jwt.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, constant.RoleFrontDesk, claims.Role)

	_, err = svc.ValidateToken(ctx, pair.AccessToken, jwt.RefreshToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)

	_, err = svc.ValidateToken(ctx, "not-a-token", jwt.AccessToken)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
}

func TestValidateToken_Rejections(t *testing.T) {
	ctx := context.Background()
	cfg := newConfig()

	sign := func(claims jwt.Claims, secret string) string {
		token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)

		return token
	}

	now := time.Now()
	valid := gojwt.RegisteredClaims{
		Issuer:    "hotelpms",
		IssuedAt:  gojwt.NewNumericDate(now),
		ExpiresAt: gojwt.NewNumericDate(now.Add(time.Hour)),
	}

	expired := valid
	expired.ExpiresAt = gojwt.NewNumericDate(now.Add(-time.Hour))

	foreign := valid
	foreign.Issuer = "another-property"

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{name: "expired", token: sign(jwt.Claims{UserID: "u", Type: jwt.AccessToken, RegisteredClaims: expired}, "access-secret"), wantErr: jwt.ErrExpiredToken},
		{name: "other issuer", token: sign(jwt.Claims{UserID: "u", Type: jwt.AccessToken, RegisteredClaims: foreign}, "access-secret"), wantErr: jwt.ErrInvalidToken},
		{name: "wrong type", token: sign(jwt.Claims{UserID: "u", Type: jwt.RefreshToken, RegisteredClaims: valid}, "access-secret"), wantErr: jwt.ErrInvalidClaim},
		{name: "wrong secret", token: sign(jwt.Claims{UserID: "u", Type: jwt.AccessToken, RegisteredClaims: valid}, "guessed"), wantErr: jwt.ErrInvalidToken},
	}

	svc := jwt.New(cfg, mocks.NewOtel())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(ctx, tt.token, jwt.AccessToken)

			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestGenerateTokenPair_MissingSecret(t *testing.T) {
	cfg := newConfig()
	cfg.JWT.RefreshSecret = ""

	_, err := jwt.New(cfg, mocks.NewOtel()).GenerateTokenPair(context.Background(), "user-1", "desk@hotel.test", constant.RoleFrontDesk)

	assert.ErrorIs(t, err, jwt.ErrMissingSecret)
}

func TestExtractTokenFromHeader(t *testing.T) {
	token, err := jwt.ExtractTokenFromHeader("Bearer abc.def")
	assert.NoError(t, err)
	assert.Equal(t, "abc.def", token)

	_, err = jwt.ExtractTokenFromHeader("")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Basic abc")
	assert.Error(t, err)

	_, err = jwt.ExtractTokenFromHeader("Bearer ")
	assert.Error(t, err)
}
