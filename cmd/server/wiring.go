package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// newTextGenerator returns the transport for LLM_PROVIDER, or nil when its
// credential is missing so the gateway runs in fallback mode.
func newTextGenerator(ctx context.Context, log *zap.Logger) (service.TextGenerator, error) {
	llmConfig := config.LoadLLMConfig()

	var (
		generator service.TextGenerator
		err       error
	)
	switch llmConfig.Provider {
	case config.ProviderGemini:
		var gemini *service.GeminiService
		gemini, err = service.NewGeminiService(ctx, config.LoadGeminiConfig(), log.Named("gemini"))
		if err == nil {
			generator = gemini
		}
	case config.ProviderOpenRouter:
		var openRouter *service.OpenRouterService
		openRouter, err = service.NewOpenRouterService(config.LoadOpenRouterConfig(), log.Named("openrouter"))
		if err == nil {
			generator = openRouter
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", llmConfig.Provider)
	}

	if errors.Is(err, service.ErrNoCredential) {
		log.Warn("model credential missing", zap.String("provider", llmConfig.Provider), zap.Error(err))
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return generator, nil
}

func newLocker(ctx context.Context, log *zap.Logger) (service.Locker, func(), error) {
	redisConfig := config.LoadRedisConfig()
	if !redisConfig.Enabled() {
		log.Info("using in-process candidate lock")
		return service.NewLocalLocker(), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisConfig.Addr,
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("connect redis %s: %w", redisConfig.Addr, err)
	}
	log.Info("using redis candidate lock", zap.String("addr", redisConfig.Addr))
	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Warn("close redis", zap.Error(err))
		}
	}
	return service.NewRedisLocker(client, redisConfig.LockTTL, log.Named("lock")), closeFn, nil
}

func newPublisher(log *zap.Logger) (service.EventPublisher, error) {
	rabbitConfig := config.LoadRabbitMQConfig()
	if !rabbitConfig.Enabled() {
		return service.NoopPublisher{}, nil
	}
	return service.NewRabbitMQPublisher(rabbitConfig.URL, rabbitConfig.Exchange, log.Named("events"))
}
