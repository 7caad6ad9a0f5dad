package funkos_test

import (
	"testing"

	funkos "github.com/goliatone/go-funkos"
	"github.com/stretchr/testify/assert"
)

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "env-signing-key")
	t.Setenv("JWT_ISSUER", "EnvIssuer")
	t.Setenv("JWT_AUDIENCE", "api, web ,")
	t.Setenv("JWT_EXPIRE_MINUTES", "120")
	t.Setenv("SMTP_ADMIN_EMAIL", "admin@tienda.dev")

	cfg := funkos.LoadEnvConfig()

	assert.Equal(t, "env-signing-key", cfg.GetSigningKey())
	assert.Equal(t, "EnvIssuer", cfg.GetIssuer())
	assert.Equal(t, []string{"api", "web"}, cfg.GetAudience())
	assert.Equal(t, 120, cfg.GetTokenExpiration())
	assert.Equal(t, "admin@tienda.dev", cfg.GetAdminEmail())
}

func TestLoadEnvConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"JWT_SIGNING_KEY", "JWT_ISSUER", "JWT_AUDIENCE",
		"JWT_EXPIRE_MINUTES", "SMTP_ADMIN_EMAIL",
	} {
		t.Setenv(key, "")
	}

	cfg := funkos.LoadEnvConfig()

	assert.Empty(t, cfg.GetSigningKey())
	assert.Empty(t, cfg.GetIssuer())
	assert.Nil(t, cfg.GetAudience())
	assert.Equal(t, funkos.DefaultTokenExpiration, cfg.GetTokenExpiration())
}

func TestLoadEnvConfigBadMinutes(t *testing.T) {
	t.Setenv("JWT_SIGNING_KEY", "k")

	tests := map[string]string{
		"not a number": "sixty",
		"zero":         "0",
		"negative":     "-5",
	}

	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("JWT_EXPIRE_MINUTES", raw)
			assert.Equal(t, funkos.DefaultTokenExpiration, funkos.LoadEnvConfig().GetTokenExpiration())
		})
	}
}
