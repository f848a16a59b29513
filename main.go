package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/promptdeck/promptdeck/api"
	"github.com/promptdeck/promptdeck/config"
	"github.com/promptdeck/promptdeck/db"
	"github.com/promptdeck/promptdeck/log"
	"github.com/promptdeck/promptdeck/notifications"
	"github.com/promptdeck/promptdeck/scan"
	"github.com/promptdeck/promptdeck/syncer"
	"github.com/promptdeck/promptdeck/workers/search"
	"github.com/promptdeck/promptdeck/workers/watch"
)

func main() {
	cfg := config.Get()

	// Initialize database
	_ = db.GetDB()
	log.Info().Str("path", cfg.DatabasePath).Msg("database initialized")

	// Apply persisted log level
	if level, err := db.GetSetting("log_level"); err == nil && level != "" {
		log.SetLevel(level)
		log.Info().Str("level", level).Msg("log level set from settings")
	}

	scanCfg := scan.Default(cfg.ProjectRoot)
	job := syncer.NewJob(scanCfg)

	// Set Gin to release mode to disable its default debug logging
	// We use our own zerolog-based request logger instead
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(log.GinLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/notifications/stream"})))

	// CORS for development
	if cfg.IsDevelopment() {
		r.Use(corsMiddleware())
	}

	r.SetTrustedProxies(nil)

	// Ignore .well-known requests (Chrome DevTools, etc.)
	r.GET("/.well-known/*path", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})

	// Background workers
	log.Info().Msg("starting background workers")
	searchWorker := search.NewSyncWorker()
	watchWorker := watch.NewWorker(scanCfg)

	// Surface on-disk changes to connected dashboards; records only
	// change when a re-seed is requested
	watchWorker.SetChangeHandler(func(event watch.ChangeEvent) {
		notifications.GetService().NotifyProjectChanged(event.RelPath)
		if event.IsPrompt {
			searchWorker.Nudge()
		}
	})

	api.SetupRoutes(r, api.Deps{
		ScanCfg:     scanCfg,
		Syncer:      job,
		SearchNudge: searchWorker.Nudge,
	})

	searchWorker.Start()
	if err := watchWorker.Start(); err != nil {
		log.Error().Err(err).Msg("failed to start watch worker")
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	srv := &http.Server{
		Addr:     addr,
		Handler:  r,
		ErrorLog: log.StdErrorLogger(),
	}

	go func() {
		log.Info().
			Str("addr", addr).
			Str("env", cfg.Env).
			Str("root", cfg.ProjectRoot).
			Msg("server starting")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Stop workers first (they may hold db connections)
	watchWorker.Stop()
	searchWorker.Stop()

	// Shutdown notification service to close all SSE connections
	notifications.GetService().Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	if err := db.Close(); err != nil {
		log.Error().Err(err).Msg("database close error")
	}

	log.Info().Msg("server stopped")
}

// corsMiddleware creates a CORS middleware for Gin
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
