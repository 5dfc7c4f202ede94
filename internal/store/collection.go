// Package store holds the in-memory collections behind every entity kind.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/devansh1234523/whole-sale/internal/storage"
)

// Record is implemented by the pointer type of every stored entity.
type Record interface {
	RecordID() int
	// Assign sets the id and creation timestamps of a new record.
	Assign(id int, now time.Time)
	// Touch refreshes the modification timestamp.
	Touch(now time.Time)
}

// Collection is an ordered set of T persisted as a full snapshot on every write.
// Insertion order is kept and survives a save/load round trip.
type Collection[T any, P interface {
	*T
	Record
}] struct {
	mu        sync.RWMutex
	key       string
	snapshots storage.SnapshotStore
	items     []T
	lastID    int
	now       func() time.Time
}

// Open loads the snapshot saved under key. When there is none the collection
// starts from seed, which is persisted right away.
func Open[T any, P interface {
	*T
	Record
}](ctx context.Context, snapshots storage.SnapshotStore, key string, seed []T) (*Collection[T, P], error) {
	c := &Collection[T, P]{
		key:       key,
		snapshots: snapshots,
		now:       time.Now,
	}

	blob, err := snapshots.Load(ctx, key)
	switch {
	case err == nil:
		if err := json.Unmarshal(blob, &c.items); err != nil {
			return nil, fmt.Errorf("decode %s snapshot: %w", key, err)
		}
	case errors.Is(err, storage.ErrSnapshotNotFound):
		items := append([]T(nil), seed...)
		if err := c.persist(ctx, items); err != nil {
			return nil, err
		}
		c.items = items
	default:
		return nil, err
	}

	for i := range c.items {
		if id := P(&c.items[i]).RecordID(); id > c.lastID {
			c.lastID = id
		}
	}
	return c, nil
}

// SetClock replaces the time source used for ids and timestamps.
func (c *Collection[T, P]) SetClock(now func() time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = now
}

func (c *Collection[T, P]) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.now()
}

func (c *Collection[T, P]) Key() string { return c.key }

func (c *Collection[T, P]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// All returns a copy of the records in insertion order.
func (c *Collection[T, P]) All() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append(make([]T, 0, len(c.items)), c.items...)
}

func (c *Collection[T, P]) GetByID(id int) (T, bool) {
	return c.Find(func(p P) bool { return p.RecordID() == id })
}

// Find returns the first record matching pred.
func (c *Collection[T, P]) Find(pred func(P) bool) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for i := range c.items {
		if pred(P(&c.items[i])) {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}

// Add assigns the next id and timestamps to item, appends it and persists.
func (c *Collection[T, P]) Add(ctx context.Context, item T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.lastID + 1
	P(&item).Assign(id, c.now())

	next := make([]T, 0, len(c.items)+1)
	next = append(next, c.items...)
	next = append(next, item)
	if err := c.persist(ctx, next); err != nil {
		var zero T
		return zero, err
	}

	c.items = next
	c.lastID = id
	return item, nil
}

// Update applies mutate to a copy of the record with the given id, refreshes its
// modification time and persists. A missing id is a no-op reported through the
// boolean. When mutate returns an error nothing changes and the error is returned.
func (c *Collection[T, P]) Update(ctx context.Context, id int, mutate func(P) error) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.update(ctx, id, c.now(), mutate)
}

// UpdateAt is Update with the modification time fixed to at, so callers can
// stamp related fields inside mutate with the same instant.
func (c *Collection[T, P]) UpdateAt(ctx context.Context, id int, at time.Time, mutate func(P) error) (T, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.update(ctx, id, at, mutate)
}

func (c *Collection[T, P]) update(ctx context.Context, id int, at time.Time, mutate func(P) error) (T, bool, error) {
	var zero T
	idx := c.indexOf(id)
	if idx < 0 {
		return zero, false, nil
	}

	updated := c.items[idx]
	if err := mutate(P(&updated)); err != nil {
		return zero, true, err
	}
	if P(&updated).RecordID() != id {
		return zero, true, fmt.Errorf("%s %d: record id cannot change", c.key, id)
	}
	P(&updated).Touch(at)

	next := append(make([]T, 0, len(c.items)), c.items...)
	next[idx] = updated
	if err := c.persist(ctx, next); err != nil {
		return zero, true, err
	}

	c.items = next
	return updated, true, nil
}

// Restore puts a previously read record back exactly as it was, timestamps
// included. It reports false when the record no longer exists.
func (c *Collection[T, P]) Restore(ctx context.Context, item T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.indexOf(P(&item).RecordID())
	if idx < 0 {
		return false, nil
	}

	next := append(make([]T, 0, len(c.items)), c.items...)
	next[idx] = item
	if err := c.persist(ctx, next); err != nil {
		return true, err
	}

	c.items = next
	return true, nil
}

// Remove drops the record with the given id. Removing an unknown id is not an error.
func (c *Collection[T, P]) Remove(ctx context.Context, id int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, 0, len(c.items))
	for i := range c.items {
		if P(&c.items[i]).RecordID() != id {
			next = append(next, c.items[i])
		}
	}
	if err := c.persist(ctx, next); err != nil {
		return err
	}

	c.items = next
	return nil
}

func (c *Collection[T, P]) indexOf(id int) int {
	for i := range c.items {
		if P(&c.items[i]).RecordID() == id {
			return i
		}
	}
	return -1
}

func (c *Collection[T, P]) persist(ctx context.Context, items []T) error {
	blob, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s snapshot: %w", c.key, err)
	}
	if err := c.snapshots.Save(ctx, c.key, blob); err != nil {
		return fmt.Errorf("persist %s: %w", c.key, err)
	}
	return nil
}
