package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config regroupe toute la configuration du serveur, chargée depuis
// les variables d'environnement au démarrage.
type Config struct {
	Port        string
	URL         string
	Environment string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	JWTSecret          string
	AccessTokenExpire  time.Duration
	RefreshTokenExpire time.Duration
	CookieSecure       bool

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	UploadsDir string
}

// LoadConfig charge la configuration avec des valeurs par défaut de
// développement. Le secret JWT par défaut est INSECURE et doit être
// remplacé en production.
func LoadConfig() (*Config, error) {
	accessSeconds, err := getEnvInt("ACCESS_TOKEN_EXPIRE_SECONDS", 900)
	if err != nil {
		return nil, err
	}

	refreshSeconds, err := getEnvInt("REFRESH_TOKEN_EXPIRE_SECONDS", 604800)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		URL:         getEnv("URL", "http://localhost:8000"),
		Environment: getEnv("ENVIRONMENT", "development"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "flashfeather"),

		JWTSecret:          getEnv("JWT_SECRET", "default_secret_change_in_production"),
		AccessTokenExpire:  time.Duration(accessSeconds) * time.Second,
		RefreshTokenExpire: time.Duration(refreshSeconds) * time.Second,
		CookieSecure:       getEnv("COOKIE_SECURE", "false") == "true",

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", "http://localhost:8000/api/auth/google/callback"),

		CloudinaryCloudName: os.Getenv("CLOUDINARY_CLOUD_NAME"),
		CloudinaryAPIKey:    os.Getenv("CLOUDINARY_API_KEY"),
		CloudinaryAPISecret: os.Getenv("CLOUDINARY_API_SECRET"),

		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),
	}

	return cfg, nil
}

// DatabaseDSN construit le DSN PostgreSQL à partir des champs DB*
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// CloudinaryConfigured indique si les identifiants Cloudinary sont présents
func (c *Config) CloudinaryConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryAPIKey != "" && c.CloudinaryAPISecret != ""
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return parsed, nil
}
