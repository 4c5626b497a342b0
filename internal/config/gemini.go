package config

import (
	"sync"

	"github.com/spf13/viper"
)

type GeminiConfig struct {
	APIKey string
	Model  string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		geminiConfig = NewGeminiConfig(settings())
	})
	return geminiConfig
}

func NewGeminiConfig(v *viper.Viper) *GeminiConfig {
	return &GeminiConfig{
		APIKey: v.GetString("GEMINI_API_KEY"),
		Model:  v.GetString("GEMINI_MODEL"),
	}
}
