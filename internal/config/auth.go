package config

import (
	"sync"

	"github.com/spf13/viper"
)

type AuthConfig struct {
	JWTSecret       string
	ExpirationHours int
	BcryptCost      int
}

var (
	authConfig *AuthConfig
	authOnce   sync.Once
)

func LoadAuthConfig() *AuthConfig {
	authOnce.Do(func() {
		authConfig = NewAuthConfig(settings())
	})
	return authConfig
}

func NewAuthConfig(v *viper.Viper) *AuthConfig {
	return &AuthConfig{
		JWTSecret:       v.GetString("JWT_SECRET"),
		ExpirationHours: v.GetInt("JWT_EXPIRATION_HOURS"),
		BcryptCost:      v.GetInt("BCRYPT_COST"),
	}
}
