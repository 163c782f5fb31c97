package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/nekogravitycat/smartpark-backend/internal/kv"
)

// ErrMalformed reports a stored blob that failed schema validation.
var ErrMalformed = errors.New("stored bookings are malformed")

type Repository interface {
	// Load returns the stored collection. Missing data yields kv.ErrNotFound,
	// data failing validation yields ErrMalformed.
	Load(ctx context.Context) (Bookings, error)
	Save(ctx context.Context, bs Bookings) error
}

type kvRepository struct {
	store kv.Store
}

func NewKVRepository(store kv.Store) Repository {
	return &kvRepository{store: store}
}

func (r *kvRepository) Load(ctx context.Context) (Bookings, error) {
	blob, err := r.store.Load(ctx, kv.KeyBookings)
	if err != nil {
		return nil, err
	}

	bs, err := Decode(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return bs, nil
}

func (r *kvRepository) Save(ctx context.Context, bs Bookings) error {
	blob, err := Encode(bs)
	if err != nil {
		return err
	}
	return r.store.Save(ctx, kv.KeyBookings, blob)
}

// Encode serializes the collection; an empty collection is written as [].
func Encode(bs Bookings) ([]byte, error) {
	if bs == nil {
		bs = Bookings{}
	}
	blob, err := json.Marshal(bs)
	if err != nil {
		return nil, fmt.Errorf("encode bookings failed: %w", err)
	}
	return blob, nil
}

// Decode parses and validates a bookings blob.
func Decode(blob []byte) (Bookings, error) {
	var bs Bookings
	if err := json.Unmarshal(blob, &bs); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(bs))
	active := make(map[string]string)
	for i, b := range bs {
		if b == nil {
			return nil, fmt.Errorf("booking %d is null", i)
		}
		if err := b.validate(); err != nil {
			return nil, err
		}
		if seen[b.ID] {
			return nil, fmt.Errorf("duplicate booking id %s", b.ID)
		}
		seen[b.ID] = true

		if b.IsActive() {
			if other, ok := active[b.SlotID]; ok {
				return nil, fmt.Errorf("bookings %s and %s both hold slot %s", other, b.ID, b.SlotID)
			}
			active[b.SlotID] = b.ID
		}
	}
	if bs == nil {
		bs = Bookings{}
	}
	return bs, nil
}
