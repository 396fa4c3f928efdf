package localstore

import (
	"context"

	"github.com/ganot/tempus-mcp/internal/domain/project"
	"github.com/ganot/tempus-mcp/internal/storage"
)

// ProjectStore keeps the project directory as a single JSON document.
// The directory service owns all list manipulation; the store only reads
// and replaces the whole collection.
type ProjectStore struct {
	kv storage.KV
}

func NewProjectStore(kv storage.KV) *ProjectStore {
	return &ProjectStore{kv: kv}
}

func (s *ProjectStore) List(ctx context.Context) ([]project.Project, error) {
	return loadSlice[project.Project](ctx, s.kv, storage.KeyProjects)
}

func (s *ProjectStore) Save(ctx context.Context, projects []project.Project) error {
	return storeSlice(ctx, s.kv, storage.KeyProjects, projects)
}
