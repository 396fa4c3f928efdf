// Package localstore persists each domain collection as a JSON document
// under a well-known key in the key-value store. The layout is one
// document per collection, read and rewritten whole on every mutation.
package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ganot/tempus-mcp/internal/repository"
	"github.com/ganot/tempus-mcp/internal/storage"
)

var (
	_ repository.TimeLogRepository    = (*TimeLogStore)(nil)
	_ repository.ProjectRepository    = (*ProjectStore)(nil)
	_ repository.EventLogRepository   = (*EventLogStore)(nil)
	_ repository.AlertRepository      = (*AlertStore)(nil)
	_ repository.TimerStateRepository = (*TimerStateStore)(nil)
	_ repository.SelectionRepository  = (*SelectionStore)(nil)
)

// loadSlice reads a JSON array document. A missing key yields an empty
// slice; unparseable content yields ErrCorruptData rather than silently
// discarding the document.
func loadSlice[T any](ctx context.Context, kv storage.KV, key string) ([]T, error) {
	raw, err := kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decoding %s: %w: %v", key, repository.ErrCorruptData, err)
	}
	return items, nil
}

func storeSlice[T any](ctx context.Context, kv storage.KV, key string, items []T) error {
	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	return nil
}
