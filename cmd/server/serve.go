package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fadilmartias/ai-interviewer/internal/config"
	"github.com/fadilmartias/ai-interviewer/internal/domain/fiber/handler"
	"github.com/fadilmartias/ai-interviewer/internal/middleware"
	"github.com/fadilmartias/ai-interviewer/internal/repository"
	"github.com/fadilmartias/ai-interviewer/internal/service"
	"github.com/fadilmartias/ai-interviewer/internal/usecase"
	"github.com/fadilmartias/ai-interviewer/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("port", "p", "", "listen address, e.g. :8080 (default from APP_PORT)")
	serveCmd.Flags().Bool("auto-migrate", true, "migrate the schema before serving")

	if err := viper.BindPFlag("APP_PORT", serveCmd.Flags().Lookup("port")); err != nil {
		log.Fatalf("binding port flag: %v", err)
	}
	if err := viper.BindPFlag("DB_AUTO_MIGRATE", serveCmd.Flags().Lookup("auto-migrate")); err != nil {
		log.Fatalf("binding auto-migrate flag: %v", err)
	}
}

func serve(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := newLogger()
	defer logger.Sync() //nolint:errcheck

	appConfig := config.LoadAppConfig()

	db, err := ConnectDB(logger)
	if err != nil {
		return err
	}
	if viper.GetBool("DB_AUTO_MIGRATE") {
		if err := migrate(db); err != nil {
			return err
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	generator, err := newTextGenerator(ctx, logger)
	if err != nil {
		return err
	}
	gateway := service.NewLLMGateway(generator, config.LoadLLMConfig(), service.NewGatewayMetrics(registry), logger.Named("gateway"))

	locker, closeLocker, err := newLocker(ctx, logger)
	if err != nil {
		return err
	}
	defer closeLocker()

	publisher, err := newPublisher(logger)
	if err != nil {
		return err
	}
	defer publisher.Close()

	tokens, err := service.NewJWTService(config.LoadAuthConfig())
	if err != nil {
		return err
	}

	interviewConfig := config.LoadInterviewConfig()
	interviewRepo := repository.NewInterviewRepository(db)
	candidateRepo := repository.NewCandidateRepository(db)
	interviewerRepo := repository.NewInterviewerRepository(db)

	interviewUC := usecase.NewInterviewUsecase(
		interviewRepo,
		service.NewQuestionService(gateway, interviewConfig),
		service.NewScoringService(gateway),
		service.NewAggregatorService(gateway),
		locker,
		publisher,
		interviewConfig,
		logger.Named("interview"),
	)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, interviewRepo, logger.Named("candidate"))
	authUC := usecase.NewAuthUsecase(
		interviewerRepo,
		service.NewPasswordService(config.LoadAuthConfig().BcryptCost),
		tokens,
		logger.Named("auth"),
	)

	app := newApp(appConfig, db, registry, logger)
	api := app.Group("/api")
	handler.NewInterviewHandler(interviewUC, gateway).RegisterRoutes(api)
	handler.NewCandidateHandler(candidateUC).RegisterRoutes(api)
	handler.NewAuthHandler(authUC).RegisterRoutes(api)
	handler.NewInterviewerHandler(candidateUC, interviewUC, tokens).RegisterRoutes(api)

	go monitorGoroutines(ctx, logger)

	go func() {
		<-ctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	}()

	logger.Info("server running", zap.String("port", appConfig.Port), zap.String("llm_mode", gateway.Info().Mode))
	if err := app.Listen(appConfig.Port); err != nil {
		return fmt.Errorf("listen %s: %w", appConfig.Port, err)
	}
	return nil
}

func newApp(appConfig *config.AppConfig, db *gorm.DB, registry *prometheus.Registry, logger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:   appConfig.Name,
		BodyLimit: 6 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return util.AppErrorResponse(c, "Internal Server Error", err)
		},
	})

	app.Use(fiberlogger.New(fiberlogger.Config{
		Output: zap.NewStdLog(logger.Named("http")).Writer(),
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: !appConfig.IsProduction(),
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.IsProduction()
		},
	}))
	app.Use(healthcheck.New(healthcheck.Config{
		ReadinessProbe: func(c *fiber.Ctx) bool {
			sqlDB, err := db.DB()
			if err != nil {
				return false
			}
			return sqlDB.PingContext(c.UserContext()) == nil
		},
	}))
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.NewMetricsBuilder(registry).Build())
	app.Use(middleware.RateLimiter(appConfig.RateLimitMax, appConfig.RateLimitWindow))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))
	return app
}

func monitorGoroutines(ctx context.Context, logger *zap.Logger) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			logger.Debug("active goroutines", zap.Int("count", runtime.NumGoroutine()))
		}
	}
}
