package config

import (
	"sync"

	"github.com/spf13/viper"
)

type RabbitMQConfig struct {
	URL      string
	Exchange string
}

var (
	rabbitMQConfig *RabbitMQConfig
	rabbitMQOnce   sync.Once
)

func LoadRabbitMQConfig() *RabbitMQConfig {
	rabbitMQOnce.Do(func() {
		rabbitMQConfig = NewRabbitMQConfig(settings())
	})
	return rabbitMQConfig
}

func NewRabbitMQConfig(v *viper.Viper) *RabbitMQConfig {
	return &RabbitMQConfig{
		URL:      v.GetString("RABBITMQ_URL"),
		Exchange: v.GetString("RABBITMQ_EXCHANGE"),
	}
}

func (c *RabbitMQConfig) Enabled() bool {
	return c.URL != ""
}
