package config

import (
	"time"

	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		Auth
		Reconcile
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}

	Database struct {
		Path string
	}

	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}

	// Reconcile configures the periodic counter-reconciliation job.
	Reconcile struct {
		Enabled  bool
		Schedule string // Cron format: "0 * * * *" = hourly
	}

	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)
	v.SetDefault("database_path", DefaultDatabasePath)

	// Auth defaults
	v.SetDefault("auth_jwt_secret", "") // Auto-generated if empty
	v.SetDefault("auth_token_ttl", "8760h") // One year
	v.SetDefault("auth_bcrypt_cost", 12)

	// Reconciliation defaults
	v.SetDefault("reconcile_enabled", true)
	v.SetDefault("reconcile_schedule", "0 * * * *") // Hourly at :00

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Path: v.GetString("DATABASE_PATH"),
		},
		Auth: Auth{
			JWTSecret:  v.GetString("AUTH_JWT_SECRET"),
			TokenTTL:   v.GetDuration("AUTH_TOKEN_TTL"),
			BcryptCost: v.GetInt("AUTH_BCRYPT_COST"),
		},
		Reconcile: Reconcile{
			Enabled:  v.GetBool("RECONCILE_ENABLED"),
			Schedule: v.GetString("RECONCILE_SCHEDULE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
