package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Database struct {
		Driver       string
		DSN          string
		MaxOpenConns int
	}
	Auth struct {
		JWTSecret       string
		TokenTTLMinutes int
		BcryptCost      int
	}
	Model struct {
		Provider       string
		Name           string
		APIKey         string
		BaseURL        string
		TimeoutSeconds int
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	CORS struct {
		AllowedOrigins []string
	}
	Log struct {
		Level  string
		Format string
	}
	Metrics struct {
		Enabled bool
	}
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	// .env never overrides variables already set in the environment
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("TITLER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	// comma separated list when it comes from the environment
	cfg.CORS.AllowedOrigins = splitList(v.GetStringSlice("cors.allowedorigins"))

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:8000")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/titler.db")
	v.SetDefault("database.maxopenconns", 0)
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttlminutes", 24*60)
	v.SetDefault("auth.bcryptcost", 0)
	v.SetDefault("model.provider", "openai")
	v.SetDefault("model.name", "")
	v.SetDefault("model.apikey", "")
	v.SetDefault("model.baseurl", "")
	v.SetDefault("model.timeoutseconds", 60)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "titler-exports")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("cors.allowedorigins", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("metrics.enabled", true)
}

// Validate checks the values the server cannot start without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return fmt.Errorf("auth jwt secret is required")
	}
	if c.Auth.TokenTTLMinutes <= 0 {
		return fmt.Errorf("auth token ttl must be positive, got %d", c.Auth.TokenTTLMinutes)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database dsn is required")
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.Log.Format)
	}
	return nil
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
