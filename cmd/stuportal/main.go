package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/digipratibha/stuportal/internal/ai"
	"github.com/digipratibha/stuportal/internal/config"
	"github.com/digipratibha/stuportal/internal/handler"
	"github.com/digipratibha/stuportal/internal/job"
	"github.com/digipratibha/stuportal/internal/middleware"
	"github.com/digipratibha/stuportal/internal/repo"
	"github.com/digipratibha/stuportal/internal/schedule"
	"github.com/digipratibha/stuportal/internal/service"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "stuportal",
		Short: "student portfolio backend server",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run stuportal server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))

			db, err := repo.Open(cfg.DBDSN)
			if err != nil {
				return fmt.Errorf("open db: %w", err)
			}
			if err := repo.ApplyMigrations(db, cfg.MigrationsDir); err != nil {
				return fmt.Errorf("migrations: %w", err)
			}
			return runServer(cfg, db)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func runServer(cfg *config.Config, db *sql.DB) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	userRepo := repo.NewUserRepo(db)
	resourceRepo := repo.NewResourceRepo(db)
	projectRepo := repo.NewProjectRepo(db)
	feedbackRepo := repo.NewFeedbackRepo(db)

	aiProvider, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Args)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	generator := ai.NewGenerator(aiProvider, cfg.AI.GenerateModel)
	embedder := ai.NewEmbedder(aiProvider, cfg.AI.EmbedModel)

	aiTimeout := time.Duration(cfg.AI.Timeout) * time.Second
	authService := service.NewAuthService(userRepo, []byte(cfg.JWTSecret), time.Hour*time.Duration(cfg.JWTTTLHours))
	resourceService := service.NewResourceService(resourceRepo, embedder, aiTimeout)
	kb := service.NewKnowledgeBase(cfg.KnowledgeBase)
	discoveryService := service.NewDiscoveryService(
		generator,
		embedder,
		resourceRepo,
		userRepo,
		projectRepo,
		feedbackRepo,
		kb,
		service.DiscoveryOptions{
			Timeout:       aiTimeout,
			MaxInputChars: cfg.AI.MaxInputChars,
			CacheSize:     cfg.AI.CacheSize,
			CacheTTL:      time.Duration(cfg.AI.CacheTTLMins) * time.Minute,
		},
	)

	deps := handler.RouterDeps{
		Auth:      handler.NewAuthHandler(authService),
		Resources: handler.NewResourceHandler(resourceService),
		AI:        handler.NewAIHandler(discoveryService),
		JWTSecret: []byte(cfg.JWTSecret),
	}

	engine, err := webapi.NewEngine(
		"/api",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(job.NewReembedJob(resourceService, cfg.Jobs.ReembedBatch), cfg.Jobs.ReembedCron); err != nil {
		return err
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
