// Package config loads application settings from the environment.
package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds every setting the server needs.
type Config struct {
	AppPort        string `validate:"required"`
	DBDriver       string `validate:"required,oneof=postgres sqlite"`
	DatabaseDSN    string `validate:"required"`
	DBDebug        bool
	JWTSecret      string        `validate:"required,min=8"`
	TokenTTL       time.Duration `validate:"gt=0"`
	RabbitMQURL    string
	RabbitMQQueue  string `validate:"required"`
	DefaultPerPage int    `validate:"gte=1"`
	MaxPerPage     int    `validate:"gtefield=DefaultPerPage"`
	AdminUsername  string
	AdminEmail     string `validate:"omitempty,email"`
	AdminPassword  string `validate:"required_with=AdminUsername"`
	SeedCategories []string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=littlelemon port=5432 sslmode=disable")
	v.SetDefault("DB_DEBUG", false)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("TOKEN_TTL", "24h")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "order_queue")
	v.SetDefault("DEFAULT_PER_PAGE", 2)
	v.SetDefault("MAX_PER_PAGE", 100)
	v.SetDefault("ADMIN_USERNAME", "")
	v.SetDefault("ADMIN_EMAIL", "")
	v.SetDefault("ADMIN_PASSWORD", "")
	v.SetDefault("SEED_CATEGORIES", "main:Main,starters:Starters,desserts:Desserts,drinks:Drinks")
}

// Load reads an optional .env file, then the environment, and validates the result.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file loaded: %v", err)
	}

	v := viper.New()
	SetDefaults(v)
	v.AutomaticEnv()
	return FromViper(v)
}

// FromViper builds a Config out of an already populated viper instance.
func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DBDriver:       strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		DBDebug:        v.GetBool("DB_DEBUG"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		TokenTTL:       v.GetDuration("TOKEN_TTL"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:  v.GetString("RABBITMQ_QUEUE"),
		DefaultPerPage: v.GetInt("DEFAULT_PER_PAGE"),
		MaxPerPage:     v.GetInt("MAX_PER_PAGE"),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
		SeedCategories: splitList(v.GetString("SEED_CATEGORIES")),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
