package config

import (
	"os"

	"autoparts-backend/internal/logging"

	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort    string
	AppEnv      string // development | production
	DBDriver    string // sqlite | postgres
	DatabaseDSN string // sqlite file path or postgres DSN
	JWTSecret   string
	CORSOrigins string
	UploadPath  string // image uploads root (served under /uploads)

	// Default admin seeded on first boot when the users table is empty.
	AdminEmail    string
	AdminPassword string
}

func Load() *Config {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		HTTPPort:      getEnv("HTTP_PORT", "8080"),
		AppEnv:        getEnv("APP_ENV", "development"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		DatabaseDSN:   getEnv("DATABASE_DSN", "autoparts.db"),
		JWTSecret:     getEnv("JWT_SECRET", ""),
		CORSOrigins:   getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		UploadPath:    getEnv("UPLOAD_PATH", "./uploads"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@autoparts.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "admin123"),
	}

	log := logging.L()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set; it is required")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal("JWT_SECRET must be at least 32 characters")
	}
	if cfg.DBDriver != "sqlite" && cfg.DBDriver != "postgres" {
		log.Fatalf("DB_DRIVER must be sqlite or postgres, got %q", cfg.DBDriver)
	}
	if cfg.AppEnv == "production" && cfg.AdminPassword == "admin123" {
		log.Warn("ADMIN_PASSWORD left at default, change it before going live")
	}
	if cfg.AppEnv == "production" && cfg.CORSOrigins == "http://localhost:5173" {
		log.Warn("CORS_ALLOWED_ORIGINS left at default, set your real domain")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
