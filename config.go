package funkos

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Settings is a map backed Config for hosts that resolve configuration
// themselves. String values only; numeric settings are parsed with the
// same defaulting rules the env loader applies.
type Settings struct {
	SigningKey      string
	Issuer          string
	Audience        []string
	TokenExpiration int
	AdminEmail      string
}

var _ Config = (*Settings)(nil)

func (s *Settings) GetSigningKey() string   { return s.SigningKey }
func (s *Settings) GetIssuer() string       { return s.Issuer }
func (s *Settings) GetAudience() []string   { return s.Audience }
func (s *Settings) GetTokenExpiration() int { return s.TokenExpiration }
func (s *Settings) GetAdminEmail() string   { return s.AdminEmail }

// LoadEnvConfig reads configuration from environment variables,
// optionally seeded from a .env file when one exists. Every setting but
// the signing key is optional; NewTokenService rejects a missing key at
// construction.
//
//	JWT_SIGNING_KEY       symmetric signing key (required downstream)
//	JWT_ISSUER            token issuer, default TiendaApi
//	JWT_AUDIENCE          comma separated audience list, default TiendaApi
//	JWT_EXPIRE_MINUTES    token lifetime, default 60, 60 when unparsable
//	SMTP_ADMIN_EMAIL      recipient for catalog addition notifications
func LoadEnvConfig() *Settings {
	_ = godotenv.Load()

	return &Settings{
		SigningKey:      os.Getenv("JWT_SIGNING_KEY"),
		Issuer:          os.Getenv("JWT_ISSUER"),
		Audience:        splitAudience(os.Getenv("JWT_AUDIENCE")),
		TokenExpiration: parseMinutes(os.Getenv("JWT_EXPIRE_MINUTES")),
		AdminEmail:      os.Getenv("SMTP_ADMIN_EMAIL"),
	}
}

func splitAudience(raw string) []string {
	if raw == "" {
		return nil
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseMinutes(raw string) int {
	if raw == "" {
		return DefaultTokenExpiration
	}

	minutes, err := strconv.Atoi(raw)
	if err != nil || minutes <= 0 {
		return DefaultTokenExpiration
	}
	return minutes
}
