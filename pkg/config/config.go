package config

import (
	"errors"
	"fmt"
	"log"
	"slices"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const AlgorithmHS256 = "HS256"

var insecureSecrets = []string{
	"secret",
	"changeme",
	"change-me",
	"your-secret-key",
	"your-secret-key-here",
}

type Config struct {
	ServiceName string `env:"SERVICE_NAME" envDefault:"nba-api"`
	ServerPort  int    `env:"SERVER_PORT"  envDefault:"8080"`
	LogLevel    string `env:"LOG_LEVEL"    envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"nba.db"`

	JWTSecret      string        `env:"JWT_SECRET"`
	JWTAlgorithm   string        `env:"JWT_ALGORITHM"    envDefault:"HS256"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"1h"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`

	ESURL          string `env:"ES_URL"`
	ESUser         string `env:"ES_USER"`
	ESPassword     string `env:"ES_PASSWORD"`
	ESPlayersIndex string `env:"ES_PLAYERS_INDEX" envDefault:"players"`

	CORSOrigins []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"*"`

	AdminUsername string `env:"ADMIN_USERNAME"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
}

// Load reads an optional .env file and then the process environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	if err := godotenv.Load(files...); err != nil {
		log.Printf("notice: .env not loaded: %v", err)
	}
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	} else if slices.Contains(insecureSecrets, c.JWTSecret) {
		errs = append(errs, errors.New("JWT_SECRET is set to a well-known default"))
	}
	if c.JWTAlgorithm != AlgorithmHS256 {
		errs = append(errs, fmt.Errorf("JWT_ALGORITHM %q is not supported, use %s", c.JWTAlgorithm, AlgorithmHS256))
	}
	if c.AccessTokenTTL <= 0 {
		errs = append(errs, errors.New("ACCESS_TOKEN_TTL must be positive"))
	}
	if c.ServerPort <= 0 || c.ServerPort > 65535 {
		errs = append(errs, fmt.Errorf("SERVER_PORT %d is out of range", c.ServerPort))
	}
	if (c.AdminUsername == "") != (c.AdminPassword == "") {
		errs = append(errs, errors.New("ADMIN_USERNAME and ADMIN_PASSWORD must be set together"))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.ServerPort)
}

func (c Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

func (c Config) SearchEnabled() bool {
	return c.ESURL != ""
}
