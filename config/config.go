// Package config loads the server configuration from environment variables.
package config

import (
	"fmt"
	"os"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port       string
	MongoURI   string
	MongoDB    string
	JWTSecret  string
	Production bool
	CORSOrigin string
}

// Load reads the environment and applies defaults. JWT_SECRET has no
// safe default and must be set.
func Load() (*Config, error) {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("missing env JWT_SECRET")
	}

	return &Config{
		Port:       get("PORT", "9000"),
		MongoURI:   get("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:    get("MONGO_DB", "soloDB"),
		JWTSecret:  secret,
		Production: os.Getenv("NODE_ENV") == "production",
		CORSOrigin: os.Getenv("CORS_ORIGIN"),
	}, nil
}

// get returns the value of the environment variable k or def when unset.
func get(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
