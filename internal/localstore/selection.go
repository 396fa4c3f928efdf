package localstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/ganot/tempus-mcp/internal/storage"
)

// SelectionStore persists the currently selected project code.
type SelectionStore struct {
	kv storage.KV
}

func NewSelectionStore(kv storage.KV) *SelectionStore {
	return &SelectionStore{kv: kv}
}

// Load returns an empty string when no selection has been made.
func (s *SelectionStore) Load(ctx context.Context) (string, error) {
	raw, err := s.kv.Get(ctx, storage.KeyCurrentProject)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading project selection: %w", err)
	}
	return string(raw), nil
}

func (s *SelectionStore) Store(ctx context.Context, projectCode string) error {
	if projectCode == "" {
		if err := s.kv.Remove(ctx, storage.KeyCurrentProject); err != nil {
			return fmt.Errorf("clearing project selection: %w", err)
		}
		return nil
	}
	if err := s.kv.Set(ctx, storage.KeyCurrentProject, []byte(projectCode)); err != nil {
		return fmt.Errorf("writing project selection: %w", err)
	}
	return nil
}
