package config

import "os"

const (
	defaultPort         = "8000"
	defaultDatabaseURI  = "mongodb://localhost:27017/"
	defaultDatabaseName = "todoList"
)

// Config carries the environment-backed settings for the service.
type Config struct {
	Port         string
	DatabaseURI  string
	DatabaseName string
}

// Load reads configuration from the environment, falling back to local
// development defaults for anything unset.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", defaultPort),
		DatabaseURI:  getEnv("DATABASE_URI", defaultDatabaseURI),
		DatabaseName: getEnv("DATABASE_NAME", defaultDatabaseName),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
