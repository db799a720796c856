package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pizza-tracker/config"
	"pizza-tracker/handlers"
	"pizza-tracker/history"
	"pizza-tracker/live"
	"pizza-tracker/middleware"
	"pizza-tracker/routes"
	"pizza-tracker/telemetry"
	"pizza-tracker/tracker"
	"pizza-tracker/web"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	// Set Gin mode
	if cfg.GinMode == "" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(cfg.GinMode)
	}

	logger, err := telemetry.NewLogger(cfg.LogLevel, gin.Mode() == gin.DebugMode)
	if err != nil {
		log.Fatal("Failed to build logger: ", err)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	policy, err := tracker.ParseIDPolicy(cfg.IDPolicy)
	if err != nil {
		return err
	}

	db, err := config.InitDB(cfg.DBDSN)
	if err != nil {
		return err
	}
	logger.Info("history database ready")

	t := tracker.New(policy)
	recorder := history.NewRecorder(db, logger.Named("history"))
	hub := live.NewHub(t.Orders, logger.Named("live"))
	t.Subscribe(recorder.Handle)
	t.Subscribe(hub.Publish)

	r := gin.New()
	r.Use(middleware.RequestLogger(logger.Named("http")), middleware.Recovery(logger), middleware.CORS())
	r.SetHTMLTemplate(web.Templates())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Pizza Order Tracker",
			"version": "1.0.0",
			"orders":  len(t.Orders()),
			"clients": hub.ClientCount(),
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍕 Welcome to the Pizza Order Tracker",
			"tracker": "/tracker",
			"docs":    "/api/state-machine",
			"health":  "/health",
		})
	})

	h := handlers.New(t, recorder, logger.Named("orders"), cfg.StrictLookups)
	if err := routes.SetupRoutes(r, h, hub); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ticker := tracker.NewTicker(t, cfg.TickInterval, logger.Named("ticker"))
	if err := ticker.Start(ctx); err != nil {
		return err
	}
	defer ticker.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server running", zap.String("addr", "http://localhost:"+cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
	case err := <-errCh:
		return err
	}

	ticker.Stop()
	hub.Close()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
