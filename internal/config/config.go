package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	GinMode    string
	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	RedisAddr  string
}

func Load() *Config {
	// Optional .env for local development; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "debug"),
		DBDriver:   getEnv("DB_DRIVER", "mysql"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "dashboard"),
		DBPassword: getEnv("DB_PASSWORD", "dashboard"),
		DBName:     getEnv("DB_NAME", "project_dashboard"),
		RedisAddr:  getEnv("REDIS_ADDR", ""),
	}
}

// CacheEnabled reports whether the optional insight cache is configured.
func (c *Config) CacheEnabled() bool {
	return c.RedisAddr != ""
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
