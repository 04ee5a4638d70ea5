package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nft_market/internal/api"
	"nft_market/internal/app"
)

func main() {
	// 1. System Bootstrapping
	bootstrap := app.NewBootstrap()
	configPath := getenv("NFT_MARKET_CONFIG", "configs/config.yaml")
	if err := bootstrap.Initialize(configPath); err != nil {
		slog.Error("❌ Bootstrapping failed", slog.Any("error", err))
		os.Exit(1)
	}

	// 2. Graceful Shutdown Context
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. HTTP dispatch surface
	handler := api.NewHandler(bootstrap.Market, bootstrap.Catalog, bootstrap.Clock, bootstrap.Ledger, bootstrap.Custody, bootstrap.Config.MinRaise())
	router := api.NewRouter(handler, bootstrap.Feed)

	server := &http.Server{
		Addr:    bootstrap.Config.Server.Addr,
		Handler: router,
	}

	go func() {
		slog.Info("✅ Market API listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server failed", slog.Any("error", err))
			stop()
		}
	}()

	slog.InfoContext(ctx, "✨ NFT Market fully operational. Press Ctrl+C to exit.")

	// Wait for shutdown signal
	<-ctx.Done()

	slog.InfoContext(ctx, "👋 Shutting down gracefully...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown failed", slog.Any("error", err))
	}
	bootstrap.Feed.Close()
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
