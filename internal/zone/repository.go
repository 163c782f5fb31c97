package zone

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/nekogravitycat/smartpark-backend/internal/kv"
)

// ErrMalformed reports a stored blob that failed schema validation.
var ErrMalformed = errors.New("stored parking data is malformed")

type Repository interface {
	// Load returns the stored zones. Missing data yields kv.ErrNotFound,
	// data failing validation yields ErrMalformed.
	Load(ctx context.Context) (Zones, error)
	Save(ctx context.Context, zs Zones) error
}

type kvRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) Load(ctx context.Context) (Zones, error) {
	blob, err := r.store.Load(ctx, kv.KeyParking)
	if err != nil {
		return nil, err
	}

	zs, err := Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return zs, nil
}

func (r *kvRepository) Save(ctx context.Context, zs Zones) error {
	blob, err := json.Marshal(zs)
	if err != nil {
		return fmt.Errorf("encode parking data failed: %w", err)
	}
	return r.store.Save(ctx, kv.KeyParking, blob)
}

// Decode parses and validates a parking data blob.
func Decode(blob []byte) (Zones, error) {
	var zs Zones
	if err := json.Unmarshal(blob, &zs); err != nil {
		return nil, err
	}
	if err := zs.Validate(); err != nil {
		return nil, err
	}
	return zs, nil
}
