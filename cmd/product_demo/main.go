// Package main walks a product store through every operation, logging each outcome.
//
// The store file is taken from the same configuration as the service (store.path,
// PRODUCT_STORE_PATH). Run it twice to see duplicate codes rejected against an
// existing file.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/abgdnv/productmanager/internal/config"
	"github.com/abgdnv/productmanager/internal/platform/logger"
	"github.com/abgdnv/productmanager/internal/product/manager"
	"github.com/abgdnv/productmanager/internal/product/seed"
	"github.com/abgdnv/productmanager/internal/product/store"
)

func main() {
	if err := run(context.Background()); err != nil {
		log.Printf("demo failed: %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	appLogger := logger.New(cfg.Log.Level, os.Stdout)

	m := manager.New(store.NewFileStore(cfg.Store.Path, appLogger), appLogger)

	samples := seed.Products()
	for _, p := range samples {
		m.AddProduct(ctx, p)
	}
	// reported as a duplicate code
	m.AddProduct(ctx, samples[0])
	// reported as missing fields
	incomplete := samples[1]
	incomplete.Code = "prod999"
	incomplete.Stock = 0
	m.AddProduct(ctx, incomplete)

	products, err := m.GetProducts(ctx)
	if err != nil {
		return err
	}
	appLogger.Info("All products", slog.Any("products", products))

	found, err := m.GetProductByID(ctx, 2)
	if err != nil {
		return err
	}
	appLogger.Info("Product 2", slog.Any("product", found))

	// reported as not found
	if _, err := m.GetProductByID(ctx, 100); err != nil {
		return err
	}

	title := "Producto 3 actualizado"
	if err := m.UpdateProductByID(ctx, 3, store.ProductPatch{Title: &title}); err != nil {
		return err
	}
	if err := m.RemoveProductByID(ctx, 3); err != nil {
		return err
	}
	return m.RemoveAllProducts(ctx)
}
