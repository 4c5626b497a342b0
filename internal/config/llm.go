package config

import (
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

const (
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
)

// LLMConfig selects the model transport used by the gateway.
type LLMConfig struct {
	Provider   string
	Timeout    time.Duration
	LogPreview int
}

var (
	llmConfig *LLMConfig
	llmOnce   sync.Once
)

func LoadLLMConfig() *LLMConfig {
	llmOnce.Do(func() {
		llmConfig = NewLLMConfig(settings())
	})
	return llmConfig
}

func NewLLMConfig(v *viper.Viper) *LLMConfig {
	timeout := v.GetDuration("LLM_TIMEOUT")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &LLMConfig{
		Provider:   strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
		Timeout:    timeout,
		LogPreview: v.GetInt("LLM_LOG_PREVIEW"),
	}
}
