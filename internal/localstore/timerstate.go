package localstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ganot/tempus-mcp/internal/domain/timer"
	"github.com/ganot/tempus-mcp/internal/repository"
	"github.com/ganot/tempus-mcp/internal/storage"
)

// TimerStateStore persists the single timer state record.
type TimerStateStore struct {
	kv storage.KV
}

func NewTimerStateStore(kv storage.KV) *TimerStateStore {
	return &TimerStateStore{kv: kv}
}

// Load returns (nil, nil) when no state has been persisted yet.
func (s *TimerStateStore) Load(ctx context.Context) (*timer.State, error) {
	raw, err := s.kv.Get(ctx, storage.KeyTimerState)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading timer state: %w", err)
	}
	var state timer.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decoding timer state: %w: %v", repository.ErrCorruptData, err)
	}
	return &state, nil
}

func (s *TimerStateStore) Store(ctx context.Context, state timer.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encoding timer state: %w", err)
	}
	if err := s.kv.Set(ctx, storage.KeyTimerState, raw); err != nil {
		return fmt.Errorf("writing timer state: %w", err)
	}
	return nil
}

func (s *TimerStateStore) Clear(ctx context.Context) error {
	if err := s.kv.Remove(ctx, storage.KeyTimerState); err != nil {
		return fmt.Errorf("clearing timer state: %w", err)
	}
	return nil
}
