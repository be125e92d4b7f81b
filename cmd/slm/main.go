// The slm binary serves the locally fine-tuned text generator as its own
// small API, separate from the main generation backend.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/saiisback/empower/internal/config"
	"github.com/saiisback/empower/internal/handlers"
	"github.com/saiisback/empower/internal/middleware"
	"github.com/saiisback/empower/internal/slm"
)

func main() {
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	// Prefer a previously trained model directory, fall back to the
	// default pretrained identifier.
	var generator *slm.Generator
	if _, statErr := os.Stat(filepath.Join(cfg.SLMModelPath, slm.ConfigFileName)); statErr == nil {
		generator, err = slm.Load(cfg.SLMModelPath, cfg.OllamaHost, logger)
	} else {
		generator, err = slm.New(slm.DefaultConfig(), cfg.OllamaHost, logger)
	}
	if err != nil {
		logger.Fatal("failed to initialize local generator", zap.Error(err))
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))

	slmHandler := handlers.NewSLMHandler(generator, logger)
	router.POST("/generate_text", slmHandler.GenerateText)
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "model": generator.Config().ModelName})
	})

	port := getEnv("SLM_PORT", "8001")
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting slm server", zap.String("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down slm server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
