package localstore

import (
	"context"

	"github.com/ganot/tempus-mcp/internal/domain/alert"
	"github.com/ganot/tempus-mcp/internal/storage"
)

// AlertStore keeps the budget alert ledger as a single JSON document,
// newest first.
type AlertStore struct {
	kv storage.KV
}

func NewAlertStore(kv storage.KV) *AlertStore {
	return &AlertStore{kv: kv}
}

func (s *AlertStore) List(ctx context.Context) ([]alert.Alert, error) {
	return loadSlice[alert.Alert](ctx, s.kv, storage.KeyBudgetAlerts)
}

func (s *AlertStore) Save(ctx context.Context, alerts []alert.Alert) error {
	return storeSlice(ctx, s.kv, storage.KeyBudgetAlerts, alerts)
}
