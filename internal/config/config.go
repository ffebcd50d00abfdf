package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

const (
	defaultDBPath = "./enersim.db"
	defaultPort   = "8080"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	ConsultantEmail    string
	ConsultantPassword string
	JWTSecret          string
	GeminiAPIKey       string
	DBPath             string
	Port               string
	Env                string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// Production should use real env injection.
	_ = godotenv.Load()

	cfg := Config{
		ConsultantEmail:    os.Getenv("CONSULTANT_EMAIL"),
		ConsultantPassword: os.Getenv("CONSULTANT_PASSWORD"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		GeminiAPIKey:       os.Getenv("GEMINI_API_KEY"),
		DBPath:             os.Getenv("DB_PATH"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("APP_ENV"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.Env == "" {
		cfg.Env = "dev"
	}

	if cfg.ConsultantEmail == "" {
		log.Print("warning: CONSULTANT_EMAIL is not set")
	}
	if cfg.ConsultantPassword == "" {
		log.Print("warning: CONSULTANT_PASSWORD is not set")
	}
	if cfg.JWTSecret == "" {
		log.Print("warning: JWT_SECRET is not set")
	}
	if cfg.GeminiAPIKey == "" {
		log.Print("warning: GEMINI_API_KEY is not set; strategic insights fall back to the heuristic engine")
	}

	return cfg
}

// IsDev reports whether the app runs in local development mode.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}
