package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/mr1hm/go-quake-viewer/internal/api"
	"github.com/mr1hm/go-quake-viewer/internal/assets"
	"github.com/mr1hm/go-quake-viewer/internal/config"
	"github.com/mr1hm/go-quake-viewer/internal/fields"
	"github.com/mr1hm/go-quake-viewer/internal/logging"
	"github.com/mr1hm/go-quake-viewer/internal/mapview"
	"github.com/mr1hm/go-quake-viewer/internal/observability"
	"github.com/mr1hm/go-quake-viewer/internal/repository"
	"github.com/mr1hm/go-quake-viewer/internal/stream"
	"github.com/mr1hm/go-quake-viewer/internal/table"
	"github.com/mr1hm/go-quake-viewer/internal/viewer"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatalf("Fatal while loading config: %v", err)
	}
	logger := logging.Setup(cfg.Logging.Level)
	fields.SetLocation(cfg.Location())

	slog.Info("Server starting", "host", cfg.Server.Host, "port", cfg.Server.Port)

	db, err := repository.NewSQLiteDB(cfg.DB.Path)
	if err != nil {
		logging.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()
	broadcaster := stream.NewBroadcaster()
	controls := api.NewControls()

	// The style lives in memory; browsers replay it from /api/map.
	style := mapview.NewStyle()
	style.MarkReady()

	loader := assets.NewLoader(cfg.Assets.FetchTimeout, logger)
	defer loader.CloseIdleConnections()

	coord := viewer.New(viewer.Options{
		Loader: loader,
		Sources: assets.Sources{
			Earthquakes: cfg.Assets.EarthquakesURL,
			Region:      cfg.Assets.RegionURL,
			Tsunami:     cfg.Assets.TsunamiURL,
		},
		Surface:   style,
		Table:     table.New(),
		Controls:  controls,
		Notifier:  viewer.NewAlertNotifier(db, clock, logger),
		Publisher: broadcaster,
		Metrics:   metrics,
		Clock:     clock,
		Logger:    logger,
	})
	go func() {
		if err := coord.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("viewer failed to start", "error", err)
		}
	}()

	// Gin router
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false, // Set to false when using wildcard origins
	}))
	router.Use(api.RateLimitMiddleware(cfg.Server.RateLimitRPS))

	handler := api.NewHandler(api.Deps{
		View:        coord,
		Controls:    controls,
		Style:       style,
		Alerts:      db,
		DB:          db,
		Broadcaster: broadcaster,
		Map: api.MapSettings{
			Token:  cfg.Map.Token,
			Style:  cfg.Map.Style,
			Center: [2]float64{cfg.Map.CenterLon, cfg.Map.CenterLat},
			Zoom:   cfg.Map.Zoom,
		},
		Logger: logger,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: router,
	}

	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down...")

	cancel()
	coord.Stop()
	broadcaster.Close() // Ends open event streams

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
}
