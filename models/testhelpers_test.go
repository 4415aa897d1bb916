package models_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"bitbucket.org/mmdatafocus/anbar_erp/models"
	"bitbucket.org/mmdatafocus/anbar_erp/storage"
)

type fixture struct {
	bk       *models.Books
	main     *models.Warehouse
	branch   *models.Warehouse
	supplier *models.Supplier
	customer *models.Customer
}

func newFixture(t *testing.T) (context.Context, *fixture) {
	t.Helper()
	ctx := context.Background()

	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	bk := models.NewBooks(storage.NewMemKV(), logger)
	if err := bk.Load(ctx); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := models.UpdateExchangeRate(ctx, bk, "USD", decimal.NewFromInt(2)); err != nil {
		t.Fatalf("UpdateExchangeRate: %v", err)
	}

	main, err := models.CreateWarehouse(ctx, bk, &models.NewWarehouse{
		Name: "Main Warehouse", Type: models.WarehouseTypeMain,
	})
	if err != nil {
		t.Fatalf("CreateWarehouse: %v", err)
	}
	branch, err := models.CreateWarehouse(ctx, bk, &models.NewWarehouse{
		Name: "Branch Warehouse", Type: models.WarehouseTypeBranch,
	})
	if err != nil {
		t.Fatalf("CreateWarehouse: %v", err)
	}
	supplier, err := models.CreateSupplier(ctx, bk, &models.NewSupplier{Name: "Supplier"})
	if err != nil {
		t.Fatalf("CreateSupplier: %v", err)
	}
	customer, err := models.CreateCustomer(ctx, bk, &models.NewCustomer{Name: "Customer"})
	if err != nil {
		t.Fatalf("CreateCustomer: %v", err)
	}

	return ctx, &fixture{bk: bk, main: main, branch: branch, supplier: supplier, customer: customer}
}

func (f *fixture) product(t *testing.T, ctx context.Context, sku string) *models.Product {
	t.Helper()
	product, err := models.CreateProduct(ctx, f.bk, &models.NewProduct{Sku: sku, Name: sku})
	if err != nil {
		t.Fatalf("CreateProduct(%s): %v", sku, err)
	}
	return product
}

// receive books a Received purchase order in the ledger currency at the given
// per-unit price, the quickest way to stage stock for a test.
func (f *fixture) receive(t *testing.T, ctx context.Context, product *models.Product, warehouse *models.Warehouse, qty, price int64) *models.PurchaseOrder {
	t.Helper()
	po, err := models.CreatePurchaseOrder(ctx, f.bk, &models.NewPurchaseOrder{
		SupplierId:    f.supplier.ID,
		WarehouseId:   warehouse.ID,
		CurrentStatus: models.PurchaseOrderStatusReceived,
		Currency:      f.bk.Settings.LedgerCurrency,
		Details: []models.NewPurchaseOrderDetail{
			{ProductId: product.ID, DetailQty: decimal.NewFromInt(qty), DetailUnitRate: decimal.NewFromInt(price)},
		},
	})
	if err != nil {
		t.Fatalf("CreatePurchaseOrder: %v", err)
	}
	return po
}

func mustEqual(t *testing.T, got decimal.Decimal, want string, label string) {
	t.Helper()
	if !got.Equal(decimal.RequireFromString(want)) {
		t.Fatalf("%s: got %s, want %s", label, got.String(), want)
	}
}
