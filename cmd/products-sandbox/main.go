// Package main boots an in-memory products REST server that stands in for
// json-server during local development.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/miguelzg1911/product-crud-client/internal/config"
	httpapi "github.com/miguelzg1911/product-crud-client/internal/http"
	"github.com/miguelzg1911/product-crud-client/internal/obs"
	"github.com/miguelzg1911/product-crud-client/internal/store"
)

func main() {
	cfg := config.Load()
	addr := flag.String("addr", cfg.SandboxAddr, "listen address")
	latency := flag.Duration("latency", 0, "artificial latency to inject per request")
	flag.Parse()

	obs.InitLogger(os.Stdout, cfg.LogLevel)
	obs.Logger.Info("service_starting")

	app := httpapi.NewApp(cfg, store.New())
	app.Latency = *latency
	mux := httpapi.NewRouter(app)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", *addr, "latency", latency.String())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			obs.Logger.Error("http_server_error", "error", err)
			os.Exit(1)
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	s := <-sigc
	obs.Logger.Info("shutdown_signal", "signal", s.String())

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		obs.Logger.Error("http_shutdown_error", "error", err)
	}
	obs.Logger.Info("service_stopped", "product_count", app.Store.Len())
}
