package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	PostgresConnString string        `mapstructure:"POSTGRES_CONN_STR"`
	Port               int           `mapstructure:"PORT"`
	RedisURL           string        `mapstructure:"REDIS_URL"`
	CacheTTL           time.Duration `mapstructure:"CACHE_TTL"`
	LogLevel           string        `mapstructure:"LOG_LEVEL"`
	LogFormat          string        `mapstructure:"LOG_FORMAT"`
	LeagueConfig       string        `mapstructure:"LEAGUE_CONFIG"`
	DataDir            string        `mapstructure:"DATA_DIR"`
	IngestSchedule     string        `mapstructure:"INGEST_SCHEDULE"`
	SleeperURL         string        `mapstructure:"SLEEPER_URL"`
	PlayerDirectory    string        `mapstructure:"PLAYER_DIRECTORY"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}
	return fromViper(viper.New())
}

func fromViper(v *viper.Viper) (*Config, error) {
	v.SetDefault("POSTGRES_CONN_STR", "postgres://localhost:5432/kmsfl?sslmode=disable")
	v.SetDefault("PORT", 3000)
	v.SetDefault("REDIS_URL", "")
	v.SetDefault("CACHE_TTL", "10m")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LEAGUE_CONFIG", "league.yaml")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("INGEST_SCHEDULE", "")
	v.SetDefault("SLEEPER_URL", "https://api.sleeper.app")
	v.SetDefault("PLAYER_DIRECTORY", "data/sleeper_players.json")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port must be between 1 and 65535, got: %d", cfg.Port)
	}
	if cfg.PostgresConnString == "" {
		return nil, fmt.Errorf("POSTGRES_CONN_STR must be set")
	}
	return &cfg, nil
}
