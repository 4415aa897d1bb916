package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"bitbucket.org/mmdatafocus/anbar_erp/config"
	"bitbucket.org/mmdatafocus/anbar_erp/models"
	"bitbucket.org/mmdatafocus/anbar_erp/storage"
)

func main() {
	godotenv.Load()

	dbPath := flag.String("db", os.Getenv("DB_PATH"), "Path to the sqlite store")
	flag.Parse()

	if strings.TrimSpace(*dbPath) == "" {
		fmt.Fprintln(os.Stderr, "--db (or DB_PATH) is required")
		os.Exit(1)
	}

	logger := config.GetLogger()
	kv, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open store: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	bk := models.NewBooks(kv, logger)
	if err := bk.Load(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "load store: %v\n", err)
		os.Exit(1)
	}

	if err := models.RebuildInventory(ctx, bk); err != nil {
		config.LogError(logger, "inventory-rebuild", "main", "rebuild failed", nil, err)
		os.Exit(1)
	}

	for _, product := range models.GetProducts(ctx, bk) {
		fmt.Printf("%s\ttotal=%s\tavg_cost=%s\n",
			product.Sku, product.TotalStock().String(), product.AverageLandedCost.String())
	}
	fmt.Printf("rebuilt %d products, valuation %s %s\n",
		bk.Products.Count(),
		models.StockValuation(ctx, bk).String(),
		bk.Settings.LedgerCurrency)
}
