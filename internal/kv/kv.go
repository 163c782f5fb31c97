// Package kv is the persistence adapter: named JSON blobs stored whole,
// with no transactions, versioning or migration.
package kv

import (
	"context"
	"errors"
)

// Keys of the three independently stored blobs.
const (
	KeyBookings = "smartpark_bookings"
	KeyParking  = "smartpark_parking"
	KeyConfig   = "smartpark_config"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{KeyBookings, KeyParking, KeyConfig}

// ErrNotFound is returned by Load when no blob is stored under the key.
var ErrNotFound = errors.New("kv: key not found")

// Store gets, sets and clears whole blobs by key.
type Store interface {
	// Load returns the blob stored under key, or ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)

	// Save replaces the blob stored under key.
	Save(ctx context.Context, key string, blob []byte) error

	// Clear removes the blob stored under key. Clearing an absent key is not an error.
	Clear(ctx context.Context, key string) error
}
