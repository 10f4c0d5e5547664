package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	SequencePrefix      string // prefix for bid sequence numbers (default "BID")
	ExpirySweepInterval time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" {
		if u := viper.GetString("DATABASE_URL_TEST"); u != "" {
			dbURL = u
		}
	}

	prefix := viper.GetString("SEQUENCE_PREFIX")
	if prefix == "" {
		prefix = "BID"
	}

	sweep := viper.GetDuration("EXPIRY_SWEEP_INTERVAL")
	if sweep <= 0 {
		sweep = time.Hour
	}

	return &Config{
		Env:                 env,
		Port:                port,
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		SequencePrefix:      prefix,
		ExpirySweepInterval: sweep,
	}, nil
}
