package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/saiisback/empower/internal/config"
	"github.com/saiisback/empower/internal/handlers"
	"github.com/saiisback/empower/internal/llm"
	"github.com/saiisback/empower/internal/metrics"
	"github.com/saiisback/empower/internal/middleware"
	"github.com/saiisback/empower/internal/pipeline"
	"github.com/saiisback/empower/internal/prompt"
	"github.com/saiisback/empower/internal/transcribe"

	_ "github.com/saiisback/empower/docs" // swagger docs
)

// @title Dynamic Kids Learning Mini-Games
// @version 4.0.0
// @description Backend for generating children's educational mini-games, quizzes and explanations with hosted language models.
// @host localhost:8000
// @BasePath /
// @schemes http
func main() {
	// Initialize logger with stdout sync
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("learning hub starting...",
		zap.String("version", handlers.Version),
		zap.String("environment", os.Getenv("GO_ENV")),
	)

	if err := initTracer(); err != nil {
		logger.Fatal("failed to initialize tracer", zap.Error(err))
	}

	cfg := config.Load()
	if cfg.OpenAIAPIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, generation requests will fail")
	}
	if cfg.GroqAPIKey == "" {
		logger.Warn("GROQ_API_KEY not set, transcription requests will fail")
	}

	// Process-wide collaborators, constructed once and injected into the
	// pipeline rather than living as package globals.
	openAIClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel)
	groqClient := transcribe.NewGroqClient(cfg.GroqAPIKey)
	pipe := pipeline.New(prompt.NewBuilder(), openAIClient, logger)

	generationHandler := handlers.NewGenerationHandler(pipe, logger)
	transcribeHandler := handlers.NewTranscribeHandler(groqClient, logger)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(metrics.Middleware())

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/metrics", metrics.Handler())

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.POST("/game", generationHandler.Game)
	router.POST("/quiz", generationHandler.Quiz)
	router.POST("/explain", generationHandler.Explain)
	router.POST("/transcribe", transcribeHandler.Transcribe)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // generation calls are synchronous and slow
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}

// initTracer initializes OpenTelemetry tracing
func initTracer() error {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return fmt.Errorf("failed to create stdout exporter: %w", err)
	}

	tp := trace.NewTracerProvider(
		trace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)

	return nil
}
