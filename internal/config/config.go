package config

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration.
type Config struct {
	Port         string `mapstructure:"PORT"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	JWTSecret    string `mapstructure:"JWT_SECRET"`
	CookieSecret string `mapstructure:"COOKIE_SECRET"`
	AccessTTL    string `mapstructure:"ACCESS_TOKEN_TTL"`
	RefreshTTL   string `mapstructure:"REFRESH_TOKEN_TTL"`
	Production   bool   `mapstructure:"PRODUCTION"`

	// Parsed from AccessTTL / RefreshTTL at load time.
	AccessTokenTTL  time.Duration `mapstructure:"-"`
	RefreshTokenTTL time.Duration `mapstructure:"-"`
}

var AppConfig *Config

// LoadConfig loads the configuration from a .env file and environment variables.
func LoadConfig() {
	viper.AddConfigPath(".")
	viper.SetConfigName(".env")
	viper.SetConfigType("env")

	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("ACCESS_TOKEN_TTL", "15m")
	viper.SetDefault("REFRESH_TOKEN_TTL", "168h")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("Warning: .env file not found, loading from environment variables")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	var err error
	if AppConfig.AccessTokenTTL, err = ParseTTL(AppConfig.AccessTTL); err != nil {
		log.Fatalf("Invalid ACCESS_TOKEN_TTL: %v", err)
	}
	if AppConfig.RefreshTokenTTL, err = ParseTTL(AppConfig.RefreshTTL); err != nil {
		log.Fatalf("Invalid REFRESH_TOKEN_TTL: %v", err)
	}
}

// ParseTTL parses a token lifetime from configuration. Accepted forms are a
// bare integer number of seconds or a Go duration literal such as "15m" or
// "168h". The value must be positive and is never interpreted any other way.
func ParseTTL(value string) (time.Duration, error) {
	if value == "" {
		return 0, fmt.Errorf("empty duration")
	}

	if secs, err := strconv.ParseInt(value, 10, 64); err == nil {
		if secs <= 0 {
			return 0, fmt.Errorf("duration must be positive, got %q", value)
		}
		return time.Duration(secs) * time.Second, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", value, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", value)
	}
	return d, nil
}
