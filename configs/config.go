package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment. It is
// loaded once at startup; nothing re-reads the environment afterwards.
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	BrevoAPIKey     string
	EmailSender     string
	EmailSenderName string
	GeminiAPIKey    string
	Port            string
}

func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	cfg := &Config{
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		BrevoAPIKey:     os.Getenv("BREVO_API_KEY"),
		EmailSender:     os.Getenv("EMAIL_SENDER"),
		EmailSenderName: os.Getenv("EMAIL_SENDER_NAME"),
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		Port:            os.Getenv("PORT"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	return cfg, nil
}
