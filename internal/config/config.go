package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/ghaniswara/people-swipe/pkg/path"
	"github.com/joho/godotenv"
)

type IConfig interface {
	Get(key string) string
	GetInt(key string, defaultValue int) int
	GetList(key string) []string
}

type Config struct {
	Key map[string]string
	Env string
}

// NewConfig loads the nearest .env (if any) and resolves every key under the
// env prefix, e.g. env "dev" reads DEV_POSTGRES_HOST.
func NewConfig(env string) (*Config, error) {
	env = strings.ToUpper(env)

	basePath, err := os.Getwd()

	if err != nil {
		return nil, err
	}

	if root, err := path.FindRoot(basePath, ".env", false); err == nil {
		if err := godotenv.Load(root + "/.env"); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, path.ErrNotFound) {
		return nil, err
	} else {
		log.Printf("no .env file found, using process environment: %s", err)
	}

	return &Config{
		Key: map[string]string{
			"POSTGRES_DB_NAME":        getEnv(env+"_POSTGRES_DB_NAME", ""),
			"POSTGRES_USER":           getEnv(env+"_POSTGRES_USER", ""),
			"POSTGRES_PASSWORD":       getEnv(env+"_POSTGRES_PASSWORD", ""),
			"POSTGRES_HOST":           getEnv(env+"_POSTGRES_HOST", "localhost"),
			"POSTGRES_PORT":           getEnv(env+"_POSTGRES_PORT", "5432"),
			"REDIS_HOST":              getEnv(env+"_REDIS_HOST", ""),
			"REDIS_PORT":              getEnv(env+"_REDIS_PORT", "6379"),
			"REDIS_PASSWORD":          getEnv(env+"_REDIS_PASSWORD", ""),
			"SMTP_HOST":               getEnv(env+"_SMTP_HOST", ""),
			"SMTP_PORT":               getEnv(env+"_SMTP_PORT", "25"),
			"SMTP_USER":               getEnv(env+"_SMTP_USER", ""),
			"SMTP_PASSWORD":           getEnv(env+"_SMTP_PASSWORD", ""),
			"MAIL_FROM":               getEnv(env+"_MAIL_FROM", "noreply@localhost"),
			"ADMIN_EMAIL":             getEnv(env+"_ADMIN_EMAIL", ""),
			"POPULAR_LIKES_THRESHOLD": getEnv(env+"_POPULAR_LIKES_THRESHOLD", "50"),
			"CORS_ALLOWED_ORIGINS":    getEnv(env+"_CORS_ALLOWED_ORIGINS", "*"),
			"PORT":                    getEnv("PORT", "8080"),
		},
		Env: env,
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func (c *Config) Get(key string) string {
	return c.Key[key]
}

// GetInt falls back to defaultValue when the key is unset or not a positive
// integer.
func (c *Config) GetInt(key string, defaultValue int) int {
	raw := c.Key[key]
	if raw == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		log.Printf("invalid %s %q, using default %d", key, raw, defaultValue)
		return defaultValue
	}

	return value
}

// GetList splits a comma separated value, dropping empty entries.
func (c *Config) GetList(key string) []string {
	var list []string
	for _, item := range strings.Split(c.Key[key], ",") {
		if item = strings.TrimSpace(item); item != "" {
			list = append(list, item)
		}
	}
	return list
}

// IsDev reports whether the config was loaded for local development.
func (c *Config) IsDev() bool {
	return c.Env == "DEV"
}
