package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	awspkg "storefront-service/pkg/aws"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Config holds all environment variables for the storefront service.
type Config struct {
	Port                string
	MongoURL            string
	MongoDB             string
	JWTSecret           string
	StripeSecretKey     string
	StripeCurrency      string
	RedisURL            string
	OrderTopicArn       string
	Env                 string
	AllowedOrigins      string
	CloudWatchEnabled   bool
	CloudWatchNamespace string
	RateLimitPerMinute  int
	RateLimitBurst      int
	UseSecretsManager   bool
}

// secretGetter is satisfied by awspkg.SecretsClient.
type secretGetter interface {
	GetSecret(ctx context.Context, name string) (string, error)
}

// LoadConfig loads environment variables into Config and validates them.
// If AWS_USE_SECRETS=true the credentials are read from Secrets Manager,
// falling back to env vars on failure.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		MongoURL:            os.Getenv("MONGO_URL"),
		MongoDB:             getEnv("MONGO_DB", "ecommerce"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		StripeSecretKey:     os.Getenv("STRIPE_SECRET_KEY"),
		StripeCurrency:      strings.ToLower(getEnv("STRIPE_CURRENCY", "usd")),
		RedisURL:            os.Getenv("REDIS_URL"),
		OrderTopicArn:       os.Getenv("ORDER_SNS_TOPIC_ARN"),
		Env:                 getEnv("DEV_MODE", "development"),
		AllowedOrigins:      os.Getenv("ALLOWED_ORIGINS"),
		CloudWatchEnabled:   os.Getenv("CLOUDWATCH_ENABLED") == "true",
		CloudWatchNamespace: getEnv("CLOUDWATCH_NAMESPACE", "Storefront"),
		RateLimitPerMinute:  getEnvInt("RATE_LIMIT_PER_MINUTE", 100),
		RateLimitBurst:      getEnvInt("RATE_LIMIT_BURST", 50),
		UseSecretsManager:   os.Getenv("AWS_USE_SECRETS") == "true",
	}

	if cfg.UseSecretsManager {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if awsCfg, err := awspkg.LoadAWSConfig(ctx); err == nil {
			cfg.applySecrets(ctx, awspkg.NewSecretsClient(awsCfg))
		} else {
			zap.L().Warn("Secrets Manager unavailable, using environment", zap.Error(err))
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applySecrets overlays the sensitive settings; a missing secret keeps the env value.
func (cfg *Config) applySecrets(ctx context.Context, sm secretGetter) {
	overlay := map[string]*string{
		"storefront/JWT_SECRET":        &cfg.JWTSecret,
		"storefront/STRIPE_SECRET_KEY": &cfg.StripeSecretKey,
	}
	for name, field := range overlay {
		value, err := sm.GetSecret(ctx, name)
		if err != nil || value == "" {
			zap.L().Warn("Secret not loaded, falling back to env", zap.String("secret", name), zap.Error(err))
			continue
		}
		*field = value
	}
}

func (cfg *Config) validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"MONGO_URL", cfg.MongoURL},
		{"JWT_SECRET", cfg.JWTSecret},
		{"STRIPE_SECRET_KEY", cfg.StripeSecretKey},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}
	if cfg.RateLimitPerMinute < 1 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
