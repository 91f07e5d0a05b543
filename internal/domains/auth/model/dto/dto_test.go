package dto_test

import (
	"hotelpms/infras/jwt"
	"hotelpms/internal/domains/auth/model/dto"
	"hotelpms/shared"
	"hotelpms/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenResponse_FromTokenPair(t *testing.T) {
	var res dto.LoginResponse
	res.FromTokenPair(&jwt.TokenPair{
		AccessToken:  "access",
		RefreshToken: "refresh",
		TokenType:    "Bearer",
		ExpiresIn:    900,
	})

	assert.Equal(t, "access", res.AccessToken)
	assert.Equal(t, "refresh", res.RefreshToken)
	assert.Equal(t, "Bearer", res.TokenType)
	assert.Equal(t, int64(900), res.ExpiresIn)
}

func TestUpdatePasswordRequest_TransformFields(t *testing.T) {
	fields := shared.TransformFields(dto.UpdatePasswordRequest{Password: "hashed"}, "user-1")

	assert.Equal(t, "hashed", fields["password"])
	assert.Equal(t, "user-1", fields[constant.FieldModifiedBy])
	assert.Len(t, fields, 3)
}
