package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"paragraph-titler/internal/auth"
	"paragraph-titler/internal/config"
	apphttp "paragraph-titler/internal/http"
	"paragraph-titler/internal/metrics"
	"paragraph-titler/internal/repository/sqlstore"
	"paragraph-titler/internal/service"
	"paragraph-titler/internal/storage"
	"paragraph-titler/internal/summarizer"
	"paragraph-titler/internal/titler"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	configureLogger(logger, cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlstore.Open(cfg.Database.Driver, cfg.Database.DSN, cfg.Database.MaxOpenConns)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlstore.NewUserRepository(db)
	resultRepo := sqlstore.NewResultRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := resultRepo.Init(ctx); err != nil {
		logger.Fatalf("init result repository: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	if err != nil {
		logger.Fatalf("setup tokens: %v", err)
	}

	generator := titler.NewGenerator(buildSummarizer(cfg, logger))

	var recorder *metrics.Recorder
	if cfg.Metrics.Enabled {
		recorder = metrics.NewRecorder()
	}

	storageSvc, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	userService := service.NewUserService(userRepo, auth.NewPasswordHasher(cfg.Auth.BcryptCost))
	titleService := service.NewTitleService(generator, resultRepo, recorder)
	exportService := service.NewExportService(resultRepo, storageSvc, cfg.Storage.Bucket, cfg.Storage.KeyPrefix)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(apphttp.Dependencies{
		Users:          userService,
		Titles:         titleService,
		Exports:        exportService,
		Tokens:         tokens,
		Model:          generator,
		DB:             db,
		Metrics:        recorder,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		Logger:         logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func configureLogger(logger *logrus.Logger, cfg config.Config) {
	if cfg.Log.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
}

// buildSummarizer returns nil when no model is configured; generation then
// answers 503 until one is.
func buildSummarizer(cfg config.Config, logger *logrus.Logger) summarizer.Summarizer {
	if cfg.Model.Name == "" {
		logger.Warn("model.name not set, title generation disabled")
		return nil
	}
	model, err := summarizer.NewOpenAI(summarizer.Config{
		Provider: cfg.Model.Provider,
		Model:    cfg.Model.Name,
		APIKey:   cfg.Model.APIKey,
		BaseURL:  cfg.Model.BaseURL,
		Timeout:  time.Duration(cfg.Model.TimeoutSeconds) * time.Second,
		Logger:   logger,
	})
	if err != nil {
		logger.Fatalf("setup model: %v", err)
	}
	logger.Infof("using %s model %s", cfg.Model.Provider, cfg.Model.Name)
	return model
}

// buildStorage returns nil when no bucket is configured, which disables exports.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	if cfg.Storage.Bucket == "" {
		logger.Info("storage.bucket not set, result export disabled")
		return nil, nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
