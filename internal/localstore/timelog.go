package localstore

import (
	"context"
	"fmt"

	"github.com/ganot/tempus-mcp/internal/domain/timelog"
	"github.com/ganot/tempus-mcp/internal/repository"
	"github.com/ganot/tempus-mcp/internal/storage"
)

// TimeLogStore keeps the time log collection as a single JSON document.
type TimeLogStore struct {
	kv storage.KV
}

func NewTimeLogStore(kv storage.KV) *TimeLogStore {
	return &TimeLogStore{kv: kv}
}

func (s *TimeLogStore) Add(ctx context.Context, entry timelog.Entry) error {
	entries, err := loadSlice[timelog.Entry](ctx, s.kv, storage.KeyTimeLogs)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return storeSlice(ctx, s.kv, storage.KeyTimeLogs, entries)
}

func (s *TimeLogStore) List(ctx context.Context) ([]timelog.Entry, error) {
	return loadSlice[timelog.Entry](ctx, s.kv, storage.KeyTimeLogs)
}

func (s *TimeLogStore) Update(ctx context.Context, entry timelog.Entry) error {
	entries, err := loadSlice[timelog.Entry](ctx, s.kv, storage.KeyTimeLogs)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == entry.ID {
			entries[i] = entry
			return storeSlice(ctx, s.kv, storage.KeyTimeLogs, entries)
		}
	}
	return fmt.Errorf("time log %s: %w", entry.ID, repository.ErrNotFound)
}

func (s *TimeLogStore) Delete(ctx context.Context, id string) error {
	entries, err := loadSlice[timelog.Entry](ctx, s.kv, storage.KeyTimeLogs)
	if err != nil {
		return err
	}
	for i := range entries {
		if entries[i].ID == id {
			entries = append(entries[:i], entries[i+1:]...)
			return storeSlice(ctx, s.kv, storage.KeyTimeLogs, entries)
		}
	}
	return fmt.Errorf("time log %s: %w", id, repository.ErrNotFound)
}
