// Package main runs the interactive console menu for the products API.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/miguelzg1911/product-crud-client/internal/config"
	"github.com/miguelzg1911/product-crud-client/internal/console"
	"github.com/miguelzg1911/product-crud-client/internal/crud"
	"github.com/miguelzg1911/product-crud-client/internal/obs"
	"github.com/miguelzg1911/product-crud-client/internal/productapi"
)

func main() {
	cfg := config.Load()
	// stdout belongs to the menu. Logs go to stderr and stay quiet unless LOG_LEVEL asks otherwise.
	level := cfg.LogLevel
	if os.Getenv("LOG_LEVEL") == "" {
		level = slog.LevelError
	}
	obs.InitLogger(os.Stderr, level)

	api, err := productapi.New(cfg.APIURL, productapi.WithTimeout(cfg.APITimeout))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := console.New(os.Stdin, os.Stdout, crud.New(api)).Run(context.Background()); err != nil {
		obs.Logger.Error("console_error", "error", err)
		os.Exit(1)
	}
}
