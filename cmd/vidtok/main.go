package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vidtok/internal/core/ports"
	"vidtok/internal/core/services"
	httphandlers "vidtok/internal/handlers/http"
	"vidtok/internal/infrastructure/capture"
	"vidtok/internal/infrastructure/media"
	"vidtok/internal/infrastructure/middleware"
	"vidtok/internal/infrastructure/monitoring"
	repositories "vidtok/internal/infrastructure/repositories"
	signalhub "vidtok/internal/infrastructure/signal"
	"vidtok/pkg/config"
	"vidtok/pkg/logger"
	"vidtok/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Try multiple config paths
	configPaths := []string{
		"configs/config.yaml",
		"./configs/config.yaml",
		"/etc/vidtok/config.yaml",
		"config.yaml",
	}

	var cfg *config.Config
	var err error

	for _, path := range configPaths {
		cfg, err = config.Load(path)
		if err == nil {
			break
		}
	}

	if err != nil {
		// Fallback to defaults if config cannot be loaded
		cfg = config.DefaultConfig()
	}

	// Initialize logger
	zapLogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLogger.Sync()

	log := zapLogger.Sugar()

	// Initialize tracing
	tracerProvider, err := tracing.Init(tracing.Config{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "vidtok",
		JaegerURL:   cfg.Tracing.JaegerURL,
		Environment: cfg.Tracing.Environment,
		SampleRate:  cfg.Tracing.SampleRate,
	})
	if err != nil {
		log.Fatalw("failed to initialize tracing", "error", err)
	}

	// Initialize repository factory
	repoFactory, err := repositories.NewRepositoryFactory(cfg, log)
	if err != nil {
		log.Fatalw("failed to create repository factory", "error", err)
	}

	ctx := context.Background()

	videoRepo, err := repoFactory.CreateVideoRepository(ctx)
	if err != nil {
		log.Fatalw("failed to create video repository", "error", err)
	}
	userRepo := repoFactory.CreateUserRepository()

	// Initialize core services
	feedService, err := services.NewFeedService(ctx, videoRepo, log)
	if err != nil {
		log.Fatalw("failed to load feed", "error", err)
	}

	coordinator := services.NewPlaybackCoordinator(
		feedService.Items(),
		media.NewElementFactory(cfg.Playback.ItemDurationSeconds, media.WithTickInterval(cfg.Playback.TickInterval)),
		log,
	)
	// The item under the cursor autoplays from the start.
	if feedService.ItemCount() > 0 {
		if err := coordinator.SetActiveIndex(ctx, feedService.CurrentIndex()); err != nil {
			log.Warnw("failed to activate initial feed item", "error", err)
		}
	}

	authService := services.NewAuthService(userRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL, log)
	navigator := services.NewNavigator()

	// Spectator fan-out and monitoring
	hub := signalhub.NewLiveEventHub(log)

	var collector *monitoring.PrometheusCollector
	var sink ports.LiveEventSink = hub
	if cfg.Monitoring.PrometheusEnabled {
		collector = monitoring.NewPrometheusCollector()
		hub.SetCountListener(collector.SetSpectatorConnections)
		sink = signalhub.NewMultiSink(hub, signalhub.SinkFunc(collector.ObserveLiveEvent))
	}

	// Capture device behind the live session
	var deviceOpts []capture.DeviceOption
	if !cfg.Live.CaptureEnabled {
		deviceOpts = append(deviceOpts, capture.WithAcquireFailure(errors.New("capture disabled by configuration")))
	}
	device := capture.NewSyntheticDevice(log, deviceOpts...)

	liveService := services.NewLiveService(device, authService, sink, log)

	// Initialize HTTP handlers
	authHandler := httphandlers.NewAuthHandler(authService, navigator)
	feedHandler := httphandlers.NewFeedHandler(feedService, coordinator, collector)
	liveHandler := httphandlers.NewLiveHandler(liveService, collector)

	// Configure Gin
	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware(log))
	router.Use(middleware.ErrorHandlerMiddleware(log))
	if cfg.Tracing.Enabled {
		router.Use(middleware.TracingMiddleware())
	}
	router.Use(middleware.NewHTTPRateLimitMiddleware(cfg))

	// Public auth routes
	authHandler.SetupRoutes(router)

	api := router.Group("/api/v1")

	// Location resolution works for anonymous users too; they land on auth.
	api.GET("/navigate", middleware.OptionalAuthMiddleware(authService), authHandler.Navigate)

	// Live snapshot is readable by spectators without an account.
	api.GET("/live", liveHandler.GetSnapshot)

	feed := api.Group("/feed")
	feed.Use(middleware.AuthMiddleware(authService))
	{
		feed.GET("", feedHandler.GetFeed)
		feed.POST("/drag", feedHandler.DragEnd)
		feed.POST("/key", feedHandler.Key)
		feed.POST("/videos/:id/like", feedHandler.ToggleLike)
		feed.POST("/creators/:id/follow", feedHandler.ToggleFollow)
		feed.GET("/playback", feedHandler.GetPlayback)
		feed.POST("/playback/tap", feedHandler.Tap)
		feed.POST("/playback/mute", feedHandler.ToggleMute)
	}

	live := api.Group("/live")
	live.Use(middleware.AuthMiddleware(authService))
	{
		live.POST("/start", liveHandler.StartStream)
		live.POST("/stop", liveHandler.StopStream)
		live.POST("/like", liveHandler.AddLike)
		live.POST("/comments", liveHandler.SubmitComment)
		live.POST("/video", liveHandler.ToggleVideo)
		live.POST("/audio", liveHandler.ToggleAudio)
	}

	// Spectator event stream
	router.GET("/ws/live", func(c *gin.Context) {
		hub.HandleWebSocket(c.Writer, c.Request)
	})

	// Health check endpoint
	healthChecker := monitoring.NewHealthChecker()
	healthChecker.AddCheck("repositories", repoFactory.HealthCheck, 2*time.Second)

	router.GET("/health", func(c *gin.Context) {
		status := healthChecker.CheckAll(c.Request.Context())
		code := http.StatusOK
		if status.Status != "healthy" {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, status)
	})

	// Prometheus metrics endpoint
	if cfg.Monitoring.PrometheusEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
		log.Info("Prometheus metrics enabled")
	}

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Infof("Starting VidTok server on %s", cfg.Server.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	// Wait for shutdown signals or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatalw("Server failed", "error", err)
	case sig := <-sigChan:
		log.Infow("Received shutdown signal", "signal", sig)
	}

	log.Info("Shutting down VidTok server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Shutdown HTTP server gracefully
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error during server shutdown", "error", err)
		if closeErr := srv.Close(); closeErr != nil {
			log.Errorw("Error force closing server", "error", closeErr)
		}
	} else {
		log.Info("Server shutdown gracefully")
	}

	// End the broadcast and unmount playback so no timers survive shutdown.
	liveService.StopStream()
	coordinator.Shutdown()
	hub.Close()

	if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
		log.Errorw("Error shutting down tracer provider", "error", err)
	}

	if err := repoFactory.Close(); err != nil {
		log.Errorw("Error closing repository factory", "error", err)
	}

	log.Info("VidTok server stopped")
}
