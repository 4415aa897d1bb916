package models

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"bitbucket.org/mmdatafocus/anbar_erp/utils"
)

// RecycleEntry holds a soft-deleted record. Data is the record exactly as it
// was at delete time; restore reinserts it unchanged.
type RecycleEntry struct {
	ID         int             `json:"id"`
	Collection string          `json:"collection"`
	OriginalId int             `json:"original_id"`
	Data       json.RawMessage `json:"data"`
	DeletedAt  time.Time       `json:"deleted_at"`
}

func (e *RecycleEntry) GetId() int {
	return e.ID
}

func (e *RecycleEntry) SetId(id int) {
	e.ID = id
}

// softDeleteRecord moves a record from its collection into the recycle bin.
// Referential-integrity guards run in the per-entity Delete functions before
// this is called.
func softDeleteRecord[T Record](ctx context.Context, bk *Books, c *Collection[T], id int) (*RecycleEntry, error) {
	rec, ok := c.Get(id)
	if !ok {
		return nil, utils.ErrorRecordNotFound
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, err
	}
	entry := &RecycleEntry{
		Collection: c.name,
		OriginalId: id,
		Data:       raw,
		DeletedAt:  time.Now(),
	}
	entry, err = bk.RecycleBin.Save(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := c.remove(ctx, id); err != nil {
		return nil, err
	}
	return entry, nil
}

func registerRestorer[T Record](bk *Books, c *Collection[T]) {
	bk.restorers[c.name] = func(ctx context.Context, data json.RawMessage) error {
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		if _, exists := c.Get(rec.GetId()); exists {
			return utils.NewIntegrityError(fmt.Sprintf("id %d already exists in %s", rec.GetId(), c.name))
		}
		return c.insert(ctx, rec)
	}
}

// RestoreFromRecycleBin reinserts a binned record into its original
// collection. On an id collision the entry stays in the bin. Ledger effects
// are not re-applied; run the inventory rebuild tool after restoring
// completed orders or movements.
func (bk *Books) RestoreFromRecycleBin(ctx context.Context, recycleId int) error {
	entry, ok := bk.RecycleBin.Get(recycleId)
	if !ok {
		return utils.ErrorRecordNotFound
	}
	restore, ok := bk.restorers[entry.Collection]
	if !ok {
		return errors.New("unknown collection in recycle bin")
	}
	if err := restore(ctx, entry.Data); err != nil {
		return err
	}
	return bk.RecycleBin.remove(ctx, recycleId)
}

func (bk *Books) EmptyRecycleBin(ctx context.Context) error {
	for _, entry := range bk.RecycleBin.All() {
		if err := bk.RecycleBin.remove(ctx, entry.ID); err != nil {
			return err
		}
	}
	return nil
}
