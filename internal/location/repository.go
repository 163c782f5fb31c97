package location

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/nekogravitycat/smartpark-backend/internal/kv"
)

// ErrMalformed reports a stored blob that failed schema validation.
var ErrMalformed = errors.New("stored location config is malformed")

type Repository interface {
	// Load returns the stored configuration. Missing data yields kv.ErrNotFound,
	// data failing validation yields ErrMalformed.
	Load(ctx context.Context) (*Config, error)
	Save(ctx context.Context, c *Config) error
}

type kvRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) Load(ctx context.Context) (*Config, error) {
	blob, err := r.store.Load(ctx, kv.KeyConfig)
	if err != nil {
		return nil, err
	}

	var c Config
	if err := json.Unmarshal(blob, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return &c, nil
}

func (r *kvRepository) Save(ctx context.Context, c *Config) error {
	blob, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode location config failed: %w", err)
	}
	return r.store.Save(ctx, kv.KeyConfig, blob)
}
