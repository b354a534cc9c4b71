// Package main serves the browser front-end for the products API.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/miguelzg1911/product-crud-client/internal/config"
	"github.com/miguelzg1911/product-crud-client/internal/crud"
	"github.com/miguelzg1911/product-crud-client/internal/obs"
	"github.com/miguelzg1911/product-crud-client/internal/productapi"
	"github.com/miguelzg1911/product-crud-client/internal/web"
)

func main() {
	cfg := config.Load()
	obs.InitLogger(os.Stdout, cfg.LogLevel)
	obs.Logger.Info("service_starting", "api_url", cfg.APIURL)

	api, err := productapi.New(cfg.APIURL, productapi.WithTimeout(cfg.APITimeout))
	if err != nil {
		obs.Logger.Error("api_client_error", "error", err)
		os.Exit(1)
	}
	front := web.New(crud.New(api))

	srv := &http.Server{
		Addr:              cfg.WebAddr,
		Handler:           front.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		obs.Logger.Info("http_listen", "addr", cfg.WebAddr)
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
	obs.Logger.Info("service_stopped")
}
