package settings

import (
	"context"
	"errors"

	"github.com/lumapos/lumapos/internal/platform/store"
)

// Repository persists the connection panel state.
type Repository struct {
	store *store.Store
}

func NewRepository(st *store.Store) *Repository {
	return &Repository{store: st}
}

// Load returns the stored config, or the defaults when none was saved yet.
func (r *Repository) Load(ctx context.Context) (DbConfig, error) {
	var cfg DbConfig
	if err := r.store.Get(ctx, store.KeyConfig, &cfg); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return DefaultConfig(), nil
		}
		return DbConfig{}, err
	}
	return cfg, nil
}

func (r *Repository) Save(ctx context.Context, cfg DbConfig) error {
	return r.store.Put(ctx, store.KeyConfig, cfg)
}
