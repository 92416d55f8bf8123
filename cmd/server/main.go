package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lysyi3m/news-hub/app/api"
	"github.com/lysyi3m/news-hub/app/cfg"
	"github.com/lysyi3m/news-hub/app/config"
	"github.com/lysyi3m/news-hub/app/database"
	"github.com/lysyi3m/news-hub/app/hub"
	"github.com/lysyi3m/news-hub/app/logging"
	"github.com/lysyi3m/news-hub/app/provider"
	"github.com/lysyi3m/news-hub/app/userstate"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		return
	}

	logging.Setup(appCfg.Debug, appCfg.LogFormat)

	slog.Info("Starting News Hub server", "version", appCfg.Version)

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	outletsCfg, err := config.Load(appCfg.OutletsFile)
	if err != nil {
		slog.Error("Failed to load outlets configuration", "file", appCfg.OutletsFile, "error", err)
		os.Exit(1)
	}

	client := &http.Client{}
	var providers []provider.Fetcher
	for _, pc := range outletsCfg.EnabledProviders() {
		p, err := provider.New(pc, outletsCfg.Settings, provider.Options{
			Client:    client,
			UserAgent: appCfg.UserAgent,
		})
		if err != nil {
			slog.Warn("Skipping provider", "provider", pc.Name(), "error", err)
			continue
		}
		providers = append(providers, p)
	}
	slog.Info("Providers configured", "providers", len(providers), "outlets", len(outletsCfg.Outlets))

	tracker := userstate.NewTracker(database.NewKVRepository(db), time.Now)
	if err := tracker.Load(context.Background()); err != nil {
		slog.Error("Failed to load reader state", "error", err)
		os.Exit(1)
	}

	newsHub := hub.New(hub.Options{
		Outlets:     outletsCfg.StoryOutlets(),
		Providers:   providers,
		Snapshots:   database.NewStoryRepository(db),
		WorkerCount: appCfg.WorkerCount,
		Interval:    appCfg.GetRefreshInterval(),
		MinInterval: appCfg.GetMinRefreshGap(),
	})
	newsHub.Restore(context.Background())
	newsHub.Start()
	defer newsHub.Stop()

	handler := api.NewHandler(newsHub, tracker, appCfg.Version)
	server := api.NewServer(handler, appCfg.APIAccessKey)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 2 * time.Minute, // manual refresh waits for a whole pass
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server starting", "port", appCfg.Port, "auth_required", appCfg.APIAccessKey != "")

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}
}
