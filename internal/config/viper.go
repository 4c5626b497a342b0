package config

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

var settingsOnce sync.Once

// settings returns the process-wide viper instance. Cobra flags bound in
// cmd/server land in the same instance, so flags win over env and defaults.
func settings() *viper.Viper {
	settingsOnce.Do(func() {
		setDefaults(viper.GetViper())
	})
	return viper.GetViper()
}

// NewViper returns an isolated instance with env lookup and defaults applied.
func NewViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("APP_NAME", "ai-interviewer")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("LOG_JSON", false)
	v.SetDefault("LOG_DEBUG", false)
	v.SetDefault("RATE_LIMIT_MAX", 50)
	v.SetDefault("RATE_LIMIT_WINDOW", "1m")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "ai_interviewer")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Jakarta")

	v.SetDefault("LLM_PROVIDER", ProviderGemini)
	v.SetDefault("LLM_TIMEOUT", "60s")
	v.SetDefault("LLM_LOG_PREVIEW", 200)
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-pro")
	v.SetDefault("OPENROUTER_MODEL", "openai/gpt-4o-mini")
	v.SetDefault("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1")

	v.SetDefault("INTERVIEW_QUESTION_COUNT", 6)
	v.SetDefault("INTERVIEW_DEFAULT_TIME_LIMIT", 120)
	v.SetDefault("INTERVIEW_HIRE_THRESHOLD", 70)

	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("LOCK_TTL", "2m")
	v.SetDefault("RABBITMQ_EXCHANGE", "interview.events")

	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("BCRYPT_COST", 10)
}
