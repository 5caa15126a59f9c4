package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port           string        `mapstructure:"PORT"`
	Env            string        `mapstructure:"ENV"`
	DatabaseURL    string        `mapstructure:"DATABASE_URL"`
	DBMaxConns     int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns     int32         `mapstructure:"DB_MIN_CONNS"`
	AuthIssuer     string        `mapstructure:"AUTH_ISSUER"`
	AuthJWKSURL    string        `mapstructure:"AUTH_JWKS_URL"`
	AuthAudience   string        `mapstructure:"AUTH_AUDIENCE"`
	CORSOrigins    []string      `mapstructure:"CORS_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("REQUEST_TIMEOUT", "30s")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("AUTH_ISSUER")
	v.BindEnv("AUTH_JWKS_URL")
	v.BindEnv("AUTH_AUDIENCE")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("REQUEST_TIMEOUT")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// IsProduction returns true when the server is configured for production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks that the configuration is safe to run. Outside development
// an auth issuer or JWKS URL must be set so that real JWT authentication is
// enforced.
func (c *Config) Validate() error {
	if !c.IsDev() && c.AuthIssuer == "" && c.AuthJWKSURL == "" {
		return fmt.Errorf(
			"AUTH_ISSUER or AUTH_JWKS_URL must be set when ENV=%q. "+
				"Refusing to start without authentication configuration", c.Env)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.RequestTimeout)
	}
	return nil
}
