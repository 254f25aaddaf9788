package stores

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
)

// document is a JSON list persisted wholesale to one storage key.
type document[T any] struct {
	mu      sync.Mutex
	storage Storage
	key     string
	items   []T
}

func openDocument[T any](ctx context.Context, storage Storage, key string) (*document[T], error) {
	d := &document[T]{storage: storage, key: key, items: []T{}}
	data, err := storage.Load(ctx, key)
	if errors.Is(err, ErrNotExist) {
		return d, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &d.items); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	if d.items == nil {
		d.items = []T{}
	}
	return d, nil
}

// snapshot copies the list; callers hold mu.
func (d *document[T]) snapshot() []T {
	out := make([]T, len(d.items))
	copy(out, d.items)
	return out
}

// update applies fn under the lock and persists the result. The in-memory
// list is only replaced when the save succeeds.
func (d *document[T]) update(ctx context.Context, fn func(items []T) ([]T, error)) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, err := fn(d.snapshot())
	if err != nil {
		return err
	}
	data, err := json.Marshal(next)
	if err != nil {
		return err
	}
	if err := d.storage.Save(ctx, d.key, data); err != nil {
		return fmt.Errorf("save %s: %w", d.key, err)
	}
	d.items = next
	return nil
}

func (d *document[T]) list() []T {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.snapshot()
}
