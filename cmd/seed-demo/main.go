package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"bitbucket.org/mmdatafocus/anbar_erp/config"
	"bitbucket.org/mmdatafocus/anbar_erp/models"
	"bitbucket.org/mmdatafocus/anbar_erp/storage"
)

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func main() {
	godotenv.Load()

	dbPath := flag.String("db", os.Getenv("DB_PATH"), "Path to the sqlite store")
	flag.Parse()

	if strings.TrimSpace(*dbPath) == "" {
		fatal("--db (or DB_PATH) is required")
	}

	kv, err := storage.OpenSQLite(*dbPath)
	if err != nil {
		fatal("open store: %v", err)
	}

	ctx := context.Background()
	bk := models.NewBooks(kv, config.GetLogger())
	if err := bk.Load(ctx); err != nil {
		fatal("load store: %v", err)
	}
	if bk.Products.Count() > 0 {
		fatal("store already has products, refusing to seed")
	}

	if err := models.UpdateExchangeRate(ctx, bk, "USD", decimal.NewFromFloat(1.7)); err != nil {
		fatal("seed rate: %v", err)
	}

	main_, err := models.CreateWarehouse(ctx, bk, &models.NewWarehouse{
		Name: "Main Warehouse", Type: models.WarehouseTypeMain, Address: "Baku",
	})
	if err != nil {
		fatal("seed warehouse: %v", err)
	}
	branch, err := models.CreateWarehouse(ctx, bk, &models.NewWarehouse{
		Name: "Branch Warehouse", Type: models.WarehouseTypeBranch, Address: "Ganja",
	})
	if err != nil {
		fatal("seed warehouse: %v", err)
	}

	supplier, err := models.CreateSupplier(ctx, bk, &models.NewSupplier{Name: "Demo Supplier"})
	if err != nil {
		fatal("seed supplier: %v", err)
	}
	customer, err := models.CreateCustomer(ctx, bk, &models.NewCustomer{Name: "Demo Customer"})
	if err != nil {
		fatal("seed customer: %v", err)
	}

	mouse, err := models.CreateProduct(ctx, bk, &models.NewProduct{
		Sku: "MOUSE-1", Name: "Mouse", MinStock: decimal.NewFromInt(5),
	})
	if err != nil {
		fatal("seed product: %v", err)
	}
	keyboard, err := models.CreateProduct(ctx, bk, &models.NewProduct{
		Sku: "KB-1", Name: "Keyboard",
	})
	if err != nil {
		fatal("seed product: %v", err)
	}

	po, err := models.CreatePurchaseOrder(ctx, bk, &models.NewPurchaseOrder{
		SupplierId:         supplier.ID,
		WarehouseId:        main_.ID,
		CurrentStatus:      models.PurchaseOrderStatusReceived,
		Currency:           "USD",
		ExchangeRate:       decimal.NewFromFloat(1.7),
		TransportationFees: decimal.NewFromInt(50),
		Details: []models.NewPurchaseOrderDetail{
			{ProductId: mouse.ID, DetailQty: decimal.NewFromInt(20), DetailUnitRate: decimal.NewFromInt(10)},
			{ProductId: keyboard.ID, DetailQty: decimal.NewFromInt(10), DetailUnitRate: decimal.NewFromInt(25)},
		},
	})
	if err != nil {
		fatal("seed purchase order: %v", err)
	}

	if _, err := models.CreateProductMovement(ctx, bk, &models.NewProductMovement{
		SourceWarehouseId: main_.ID,
		DestWarehouseId:   branch.ID,
		Items: []models.NewProductMovementItem{
			{ProductId: mouse.ID, Quantity: decimal.NewFromInt(5)},
		},
	}); err != nil {
		fatal("seed movement: %v", err)
	}

	so, err := models.CreateSellOrder(ctx, bk, &models.NewSellOrder{
		CustomerId:    customer.ID,
		WarehouseId:   main_.ID,
		CurrentStatus: models.SellOrderStatusShipped,
		VatPercent:    decimal.NewFromInt(18),
		Details: []models.NewSellOrderDetail{
			{ProductId: mouse.ID, DetailQty: decimal.NewFromInt(3), DetailUnitRate: decimal.NewFromInt(35)},
		},
	})
	if err != nil {
		fatal("seed sell order: %v", err)
	}

	if _, err := models.CreatePayment(ctx, bk, &models.NewPayment{
		Type:     models.PaymentTypeIncoming,
		OrderId:  so.ID,
		Category: models.PaymentCategoryProducts,
		Amount:   so.OrderTotal,
		Currency: bk.Settings.LedgerCurrency,
	}); err != nil {
		fatal("seed payment: %v", err)
	}

	fmt.Printf("seeded: %s (%s), %s (%s), valuation %s %s\n",
		po.OrderNumber, po.OrderTotal.String(),
		so.OrderNumber, so.OrderTotal.String(),
		models.StockValuation(ctx, bk).String(), bk.Settings.LedgerCurrency)
}
