package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"supermarket-pos/internal/config"
	"supermarket-pos/internal/httpserver"
	"supermarket-pos/internal/poller"
	catalogsvc "supermarket-pos/internal/service/catalog"
	registersvc "supermarket-pos/internal/service/register"
	statssvc "supermarket-pos/internal/service/stats"
	"supermarket-pos/internal/session"
	"supermarket-pos/internal/upstream"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[pos] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	store := upstream.New(cfg.StoreAPIURL, cfg.StoreAPITimeout, logger)
	sessions := session.NewManager(cfg.SessionTTL)
	catalogService := catalogsvc.New(store, cfg.CatalogPageSize, logger)
	registerService := registersvc.New(catalogService, store, cfg.ResetDelay, logger)
	statsService := statssvc.New(store, logger)

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		Auth:      store,
		Sessions:  sessions,
		Catalog:   catalogService,
		Products:  store,
		Registers: registerService,
		Stats:     statsService,
		Store:     store,
	}, cfg.AllowedOrigins)
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	pollCtx, stopPolling := context.WithCancel(context.Background())
	statsPoller := poller.New(cfg.StatsInterval, statsService.Poll, logger)
	go statsPoller.Run(pollCtx)

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s (store api %s)", cfg.HTTPAddr, cfg.StoreAPIURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	stopPolling()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
