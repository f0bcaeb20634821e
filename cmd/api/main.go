package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"alfredoptarigan/resume-screener/internal/config"
	"alfredoptarigan/resume-screener/internal/handlers"
	"alfredoptarigan/resume-screener/internal/logger"
	"alfredoptarigan/resume-screener/internal/observability"
	"alfredoptarigan/resume-screener/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.Server.LogJSON, cfg.Server.LogDebug)
	if err != nil {
		log.Fatalf("❌ Failed to build logger: %v", err)
	}
	defer zl.Sync()
	if !cfg.DotEnvLoaded {
		zl.Info("No .env file found. Using environment and default values.")
	}
	zl.Info("✅ Config loaded successfully", zap.String("env", cfg.Server.Env))

	observability.InitMetrics()

	// Initialize services
	storageService := services.NewStorageService(cfg.Storage.UploadPath)
	if err := storageService.EnsureUploadDir(); err != nil {
		zl.Fatal("❌ Failed to create upload directory", zap.Error(err))
	}

	extractor := services.NewTextExtractor(
		services.NewPDFParserService(),
		services.NewDOCXParserService(),
	)

	llmClient, err := services.NewLLMClient(cfg.LLM, zl)
	if err != nil {
		zl.Fatal("❌ Failed to initialize LLM client", zap.Error(err))
	}
	zl.Info("✅ LLM client initialized", zap.String("provider", llmClient.Provider()))

	scorer := services.NewMatchScorer(llmClient, cfg.LLM.Temperature, zl)

	screeningService := services.NewScreeningService(
		extractor,
		scorer,
		storageService,
		services.ScreeningOptions{
			Concurrency:     cfg.Screening.Concurrency,
			IsolateFailures: cfg.Screening.IsolateFailures,
		},
		zl,
	)
	zl.Info("✅ Services initialized successfully")

	// Initialize Handlers
	screeningHandler := handlers.NewScreeningHandler(
		screeningService,
		storageService,
		cfg.Storage.MaxFileSize,
		cfg.Storage.MaxFiles,
		zl,
	)
	healthHandler := handlers.NewHealthHandler(llmClient.Provider())

	app := handlers.NewRouter(handlers.RouterConfig{
		AllowOrigins:   cfg.Server.CORSAllowOrigins,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		BodyLimit:      cfg.BodyLimit(),
		RequestLogging: cfg.IsDevelopment(),
	}, screeningHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		zl.Info("🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			zl.Error("❌ Server forced to shutdown", zap.Error(err))
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zl.Info("🚀 Server starting", zap.String("addr", addr))

	if err := app.Listen(addr); err != nil {
		zl.Fatal("❌ Failed to start server", zap.Error(err))
	}
}
