// Package main starts the local account manager HTTP API, setting up
// configuration, logging, storage and the account store.
package main

import (
	"cmp"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	nethttp "net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/atinyakov/accountkeeper/internal/accounts"
	"github.com/atinyakov/accountkeeper/internal/config"
	"github.com/atinyakov/accountkeeper/internal/logger"
	"github.com/atinyakov/accountkeeper/internal/server/handler/http"
	"github.com/atinyakov/accountkeeper/internal/storage"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line, config file and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log := logger.New()
	defer func() { _ = log.Log.Sync() }()
	if err := log.Init(options.LogLevel); err != nil {
		log.Log.Fatal("failed to init logger", zap.Error(err))
	}
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Open the durable key-value storage.
	kv, closeKV, err := storage.Open(ctx, options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot open storage", zap.Error(err))
	}
	defer func() { _ = closeKV() }()

	// Load the account collection.
	store, err := accounts.NewStoreFromConfig(ctx, kv, options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot init account store", zap.Error(err))
	}
	zapLogger.Info("accounts loaded", zap.Int("count", store.Count()))
	defer store.LogChanges()()

	// Build the router with middleware and routes.
	router := http.NewRouter(&http.AccountsHandler{Store: store}, http.TagsHandler{}, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr), zap.Bool("tls", options.TLSEnabled()))
	if options.TLSEnabled() {
		server.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}
