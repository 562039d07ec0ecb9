package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/aishape/payment-webhook/utils"
	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port      string `env:"PORT" validate:"required,numeric"`
	LogLevel  string `env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat string `env:"LOG_FORMAT" validate:"oneof=console json"`

	// Secrets
	BotToken  string `env:"TELEGRAM_BOT_TOKEN" validate:"required"`
	SecretKey string `env:"WAYFORPAY_SECRET_KEY" validate:"required"`

	// Telegram
	TelegramAPIEndpoint string        `env:"TELEGRAM_API_ENDPOINT"`
	SendTimeout         time.Duration `env:"SEND_TIMEOUT" validate:"gt=0"`

	// Documents
	DocumentFontPath string `env:"DOCUMENT_FONT_PATH"`

	// Redis, optional; enables delivery deduplication
	RedisURL    string        `env:"REDIS_URL"`
	DeliveryTTL time.Duration `env:"DELIVERY_TTL" validate:"gt=0"`
}

// Load reads an optional .env file and the environment. It fails when a
// required secret is missing.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.Logger.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := Config{
		Port:                getEnv("PORT", "8080"),
		LogLevel:            strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:           strings.ToLower(getEnv("LOG_FORMAT", "console")),
		BotToken:            os.Getenv("TELEGRAM_BOT_TOKEN"),
		SecretKey:           os.Getenv("WAYFORPAY_SECRET_KEY"),
		TelegramAPIEndpoint: os.Getenv("TELEGRAM_API_ENDPOINT"),
		DocumentFontPath:    getEnv("DOCUMENT_FONT_PATH", "DejaVuSans.ttf"),
		RedisURL:            os.Getenv("REDIS_URL"),
	}

	var err error
	if cfg.SendTimeout, err = getDuration("SEND_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.DeliveryTTL, err = getDuration("DELIVERY_TTL", 72*time.Hour); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := utils.InitValidator().Struct(c); err != nil {
		fields := utils.FormatValidationErrors(err)
		msgs := make([]string, 0, len(fields))
		for _, msg := range fields {
			msgs = append(msgs, msg)
		}
		sort.Strings(msgs)
		return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
	}
	return nil
}

func (c Config) DeduplicationEnabled() bool {
	return c.RedisURL != ""
}

func getEnv(key string, fallback string) string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	return val
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
