package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken  string `mapstructure:"TELEGRAM_TOKEN"`
	APIBaseURL     string `mapstructure:"API_BASE_URL"`
	DBDSN          string `mapstructure:"DB_DSN"`
	Environment    string `mapstructure:"ENV"`
	Timezone       string `mapstructure:"TIMEZONE"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		APIBaseURL:     os.Getenv("API_BASE_URL"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    os.Getenv("ENV"),
		Timezone:       os.Getenv("TIMEZONE"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	// Дефолтные значения
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.Timezone == "" {
		// Платформа работает по восточноафриканскому времени (GMT+3)
		cfg.Timezone = "Africa/Addis_Ababa"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "migrations"
	}

	// Обязательные поля
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("API_BASE_URL is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}
