package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds all process configuration. It is built once at startup and
// passed to every service; nothing else reads the environment.
type Config struct {
	Port        string
	DatabaseURL string

	JWTSecret string

	S3Endpoint  string
	S3Region    string
	S3AccessKey string
	S3SecretKey string
	S3Bucket    string
	// S3PublicURL overrides the base used to build public object links.
	// When empty, links are built from S3Endpoint and the bucket name.
	S3PublicURL string

	ResendAPIKey string
	MailFrom     string
}

// FromEnv loads .env if present and builds a Config from the environment.
func FromEnv() *Config {
	// Ignore error if .env file doesn't exist (e.g. in production)
	_ = godotenv.Load()

	connString := getEnv("DATABASE_URL", "")
	if connString == "" {
		// Fallback to individual vars
		connString = "postgres://" + getEnv("POSTGRES_USER", "postgres") + ":" +
			getEnv("POSTGRES_PASSWORD", "postgres") + "@" +
			getEnv("POSTGRES_HOST", "localhost") + ":" +
			getEnv("POSTGRES_PORT", "5432") + "/" +
			getEnv("POSTGRES_DB", "recipedb") + "?sslmode=disable"
	}

	return &Config{
		Port:        getEnv("PORT", "3001"),
		DatabaseURL: connString,

		JWTSecret: getEnv("JWT_SECRET", ""),

		S3Endpoint:  getEnv("S3_ENDPOINT", ""),
		S3Region:    getEnv("S3_REGION", "us-east-1"),
		S3AccessKey: getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey: getEnv("S3_SECRET_KEY", ""),
		S3Bucket:    getEnv("S3_BUCKET", "recipe-images"),
		S3PublicURL: getEnv("S3_PUBLIC_URL", ""),

		ResendAPIKey: getEnv("RESEND_API_KEY", ""),
		MailFrom:     getEnv("MAIL_FROM", "My Favorite Recipes <support@myrecipes.app>"),
	}
}

// getEnv returns the value of an environment variable or a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
