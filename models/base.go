package models

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"bitbucket.org/mmdatafocus/anbar_erp/storage"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const (
	collectionProducts       = "products"
	collectionWarehouses     = "warehouses"
	collectionSuppliers      = "suppliers"
	collectionCustomers      = "customers"
	collectionPurchaseOrders = "purchase_orders"
	collectionSellOrders     = "sell_orders"
	collectionMovements      = "product_movements"
	collectionPayments       = "payments"
	collectionRecycleBin     = "recycle_bin"
	settingsKey              = "settings"
)

type Record interface {
	GetId() int
	SetId(id int)
}

// Books is the whole application state: every collection, the recycle bin and
// the currency settings, hydrated from a storage.KV and owned by the caller.
// There are no package-level singletons; every core operation takes *Books.
type Books struct {
	kv     storage.KV
	logger *logrus.Logger

	Settings *Settings

	Products       *Collection[*Product]
	Warehouses     *Collection[*Warehouse]
	Suppliers      *Collection[*Supplier]
	Customers      *Collection[*Customer]
	PurchaseOrders *Collection[*PurchaseOrder]
	SellOrders     *Collection[*SellOrder]
	Movements      *Collection[*ProductMovement]
	Payments       *Collection[*Payment]
	RecycleBin     *Collection[*RecycleEntry]

	restorers map[string]func(context.Context, json.RawMessage) error
}

func NewBooks(kv storage.KV, logger *logrus.Logger) *Books {
	bk := &Books{
		kv:     kv,
		logger: logger,
		Settings: &Settings{
			LedgerCurrency: DefaultLedgerCurrency,
			Rates:          map[string]decimal.Decimal{},
		},
		Products:       newCollection[*Product](collectionProducts, kv),
		Warehouses:     newCollection[*Warehouse](collectionWarehouses, kv),
		Suppliers:      newCollection[*Supplier](collectionSuppliers, kv),
		Customers:      newCollection[*Customer](collectionCustomers, kv),
		PurchaseOrders: newCollection[*PurchaseOrder](collectionPurchaseOrders, kv),
		SellOrders:     newCollection[*SellOrder](collectionSellOrders, kv),
		Movements:      newCollection[*ProductMovement](collectionMovements, kv),
		Payments:       newCollection[*Payment](collectionPayments, kv),
		RecycleBin:     newCollection[*RecycleEntry](collectionRecycleBin, kv),
		restorers:      map[string]func(context.Context, json.RawMessage) error{},
	}
	registerRestorer(bk, bk.Products)
	registerRestorer(bk, bk.Warehouses)
	registerRestorer(bk, bk.Suppliers)
	registerRestorer(bk, bk.Customers)
	registerRestorer(bk, bk.PurchaseOrders)
	registerRestorer(bk, bk.SellOrders)
	registerRestorer(bk, bk.Movements)
	registerRestorer(bk, bk.Payments)
	return bk
}

// Load hydrates every collection from the store. Missing keys leave the
// defaults in place, so Load on an empty store yields an empty Books.
func (bk *Books) Load(ctx context.Context) error {
	if _, err := bk.kv.Get(ctx, settingsKey, bk.Settings); err != nil {
		return err
	}
	if bk.Settings.Rates == nil {
		bk.Settings.Rates = map[string]decimal.Decimal{}
	}
	loaders := []func(context.Context) error{
		bk.Products.load,
		bk.Warehouses.load,
		bk.Suppliers.load,
		bk.Customers.load,
		bk.PurchaseOrders.load,
		bk.SellOrders.load,
		bk.Movements.load,
		bk.Payments.load,
		bk.RecycleBin.load,
	}
	for _, load := range loaders {
		if err := load(ctx); err != nil {
			return err
		}
	}
	return nil
}

func (bk *Books) SaveSettings(ctx context.Context, settings *Settings) error {
	if settings.Rates == nil {
		settings.Rates = map[string]decimal.Decimal{}
	}
	bk.Settings = settings
	return bk.kv.Set(ctx, settingsKey, settings)
}

func (bk *Books) Logger() *logrus.Logger {
	return bk.logger
}

type collectionSnapshot[T any] struct {
	LastId  int `json:"last_id"`
	Records []T `json:"records"`
}

// Collection is a generic repository over one named collection: monotonic id
// allocation, lookup by id, and synchronous snapshot writes through the KV.
type Collection[T Record] struct {
	name   string
	kv     storage.KV
	items  map[int]T
	lastId int
}

func newCollection[T Record](name string, kv storage.KV) *Collection[T] {
	return &Collection[T]{
		name:  name,
		kv:    kv,
		items: map[int]T{},
	}
}

func (c *Collection[T]) load(ctx context.Context) error {
	var snap collectionSnapshot[T]
	found, err := c.kv.Get(ctx, c.name, &snap)
	if err != nil {
		return fmt.Errorf("load %s: %w", c.name, err)
	}
	if !found {
		return nil
	}
	c.items = make(map[int]T, len(snap.Records))
	c.lastId = snap.LastId
	for _, rec := range snap.Records {
		c.items[rec.GetId()] = rec
		if rec.GetId() > c.lastId {
			c.lastId = rec.GetId()
		}
	}
	return nil
}

func (c *Collection[T]) flush(ctx context.Context) error {
	snap := collectionSnapshot[T]{
		LastId:  c.lastId,
		Records: c.All(),
	}
	return c.kv.Set(ctx, c.name, snap)
}

// NextId allocates the next sequential id. Counters only ever move forward,
// so ids are never reused, including across soft delete and restore.
func (c *Collection[T]) NextId() int {
	c.lastId++
	return c.lastId
}

func (c *Collection[T]) Get(id int) (T, bool) {
	rec, ok := c.items[id]
	return rec, ok
}

func (c *Collection[T]) Count() int {
	return len(c.items)
}

func (c *Collection[T]) All() []T {
	records := make([]T, 0, len(c.items))
	for _, rec := range c.items {
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].GetId() < records[j].GetId()
	})
	return records
}

// Save inserts rec with a freshly allocated id when its id is zero or not
// present, else replaces the stored record, then writes the snapshot through.
func (c *Collection[T]) Save(ctx context.Context, rec T) (T, error) {
	if _, exists := c.items[rec.GetId()]; rec.GetId() == 0 || !exists {
		rec.SetId(c.NextId())
	}
	c.items[rec.GetId()] = rec
	if err := c.flush(ctx); err != nil {
		return rec, err
	}
	return rec, nil
}

// insert keeps the record's existing id. Used by restore.
func (c *Collection[T]) insert(ctx context.Context, rec T) error {
	c.items[rec.GetId()] = rec
	if rec.GetId() > c.lastId {
		c.lastId = rec.GetId()
	}
	return c.flush(ctx)
}

func (c *Collection[T]) remove(ctx context.Context, id int) error {
	delete(c.items, id)
	return c.flush(ctx)
}
