package config

import (
	"sync"
	"time"

	"github.com/spf13/viper"
)

type AppConfig struct {
	Name            string
	Env             string
	Port            string
	BaseURL         string
	LogJSON         bool
	LogDebug        bool
	RateLimitMax    int
	RateLimitWindow time.Duration
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = NewAppConfig(settings())
	})
	return appConfig
}

func NewAppConfig(v *viper.Viper) *AppConfig {
	return &AppConfig{
		Name:            v.GetString("APP_NAME"),
		Env:             v.GetString("APP_ENV"),
		Port:            v.GetString("APP_PORT"),
		BaseURL:         v.GetString("APP_URL"),
		LogJSON:         v.GetBool("LOG_JSON"),
		LogDebug:        v.GetBool("LOG_DEBUG"),
		RateLimitMax:    v.GetInt("RATE_LIMIT_MAX"),
		RateLimitWindow: v.GetDuration("RATE_LIMIT_WINDOW"),
	}
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}
