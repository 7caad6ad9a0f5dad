package funkos_test

import (
	"testing"

	funkos "github.com/goliatone/go-funkos"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenValidatorFunc(t *testing.T) {
	called := false
	validator := funkos.TokenValidatorFunc(func(tokenString string) (funkos.AuthClaims, error) {
		called = true
		assert.Equal(t, "raw-token", tokenString)
		return &funkos.JWTClaims{UserRole: funkos.RoleUser}, nil
	})

	claims, err := validator.Validate("raw-token")
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, string(funkos.RoleUser), claims.Role())
}

func TestTokenValidatorFuncNil(t *testing.T) {
	var validator funkos.TokenValidatorFunc

	_, err := validator.Validate("anything")
	assert.ErrorIs(t, err, funkos.ErrTokenMalformed)
}

func TestTokenServiceIsATokenValidator(t *testing.T) {
	svc, err := funkos.NewTokenService(newTestConfig(), nil)
	require.NoError(t, err)

	var _ funkos.TokenValidator = svc.(funkos.TokenValidator)
}
