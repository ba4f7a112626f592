package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"safecircle/pkg/logger"
)

// StoreConfig selects and configures the persistence backend of the document store.
type StoreConfig struct {
	Backend string // file, postgres, sqlite or memory
	File    string // snapshot path for the file backend
	DataDir string // directory for the sqlite database
	Name    string // snapshot row name for the SQL backends

	DatabaseURL string // postgres connection string; built from user/password/host/port/dbname when empty
}

type Config struct {
	Host           string
	Port           string
	AllowedOrigins []string
	LogLevel       string
	Seed           bool
	Store          StoreConfig
}

// LoadEnv loads a .env file into the process environment if one exists.
func LoadEnv(filenames ...string) {
	if err := godotenv.Load(filenames...); err != nil {
		logger.Sugar.Infof("No .env file found, using environment variables from OS")
	}
}

// Load reads the configuration from environment variables.
func Load() Config {
	return Config{
		Host:           env("HOST", "0.0.0.0"),
		Port:           env("PORT", "8000"),
		AllowedOrigins: strings.Split(env("ALLOWED_ORIGINS", "*"), ","),
		LogLevel:       env("LOG_LEVEL", "info"),
		Seed:           envBool("SEED", true),
		Store: StoreConfig{
			Backend:     env("STORE_BACKEND", "file"),
			File:        env("DB_FILE", "db.json"),
			DataDir:     env("DATA_DIR", "./data"),
			Name:        env("DB_NAME", "safecircle"),
			DatabaseURL: strings.TrimSpace(os.Getenv("DATABASE_URL")),
		},
	}
}

// Addr returns the listen address.
func (c Config) Addr() string {
	return c.Host + ":" + c.Port
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		logger.Sugar.Warnf("Invalid boolean for %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return b
}
