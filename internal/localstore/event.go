package localstore

import (
	"context"

	"github.com/ganot/tempus-mcp/internal/domain/event"
	"github.com/ganot/tempus-mcp/internal/storage"
)

// EventLogStore keeps the append-only event log as a single JSON document
// in append order.
type EventLogStore struct {
	kv storage.KV
}

func NewEventLogStore(kv storage.KV) *EventLogStore {
	return &EventLogStore{kv: kv}
}

func (s *EventLogStore) Append(ctx context.Context, entry event.Entry) error {
	entries, err := loadSlice[event.Entry](ctx, s.kv, storage.KeyEventLogs)
	if err != nil {
		return err
	}
	entries = append(entries, entry)
	return storeSlice(ctx, s.kv, storage.KeyEventLogs, entries)
}

func (s *EventLogStore) List(ctx context.Context) ([]event.Entry, error) {
	return loadSlice[event.Entry](ctx, s.kv, storage.KeyEventLogs)
}

func (s *EventLogStore) Clear(ctx context.Context) error {
	return storeSlice(ctx, s.kv, storage.KeyEventLogs, []event.Entry{})
}
