package kv

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-redis/redismock/v9"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the contract every backend must satisfy.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()

	_, err := s.Load(ctx, KeyBookings)
	assert.ErrorIs(t, err, ErrNotFound, "absent key should report ErrNotFound")

	require.NoError(t, s.Save(ctx, KeyBookings, []byte(`[]`)))
	require.NoError(t, s.Save(ctx, KeyBookings, []byte(`[{"id":"BK1"}]`)))

	b, err := s.Load(ctx, KeyBookings)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"BK1"}]`, string(b), "save should replace the whole blob")

	require.NoError(t, s.Clear(ctx, KeyBookings))
	_, err = s.Load(ctx, KeyBookings)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.NoError(t, s.Clear(ctx, KeyBookings), "clearing an absent key is not an error")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestMemoryStoreCopiesBlobs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	blob := []byte(`{"a":1}`)
	require.NoError(t, s.Save(ctx, KeyConfig, blob))
	blob[2] = 'X'

	got, err := s.Load(ctx, KeyConfig)
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)

	exerciseStore(t, s)
}

func TestFileStoreLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)

	require.NoError(t, s.Save(context.Background(), KeyParking, []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, KeyParking+".json", entries[0].Name())
}

func TestFileStoreRejectsPathKeys(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	assert.Error(t, s.Save(context.Background(), "../escape", []byte(`{}`)))
}

func TestRedisStore(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client, "smartpark:")
	ctx := context.Background()

	mock.ExpectGet("smartpark:" + KeyConfig).RedisNil()
	_, err := s.Load(ctx, KeyConfig)
	assert.ErrorIs(t, err, ErrNotFound)

	blob := []byte(`{"name":"Lot"}`)
	mock.ExpectSet("smartpark:"+KeyConfig, blob, 0).SetVal("OK")
	require.NoError(t, s.Save(ctx, KeyConfig, blob))

	mock.ExpectGet("smartpark:" + KeyConfig).SetVal(string(blob))
	got, err := s.Load(ctx, KeyConfig)
	require.NoError(t, err)
	assert.Equal(t, blob, got)

	mock.ExpectDel("smartpark:" + KeyConfig).SetVal(1)
	require.NoError(t, s.Clear(ctx, KeyConfig))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisStoreSurfacesErrors(t *testing.T) {
	client, mock := redismock.NewClientMock()
	s := NewRedisStore(client, "")

	mock.ExpectGet(KeyBookings).SetErr(errors.New("connection refused"))
	_, err := s.Load(context.Background(), KeyBookings)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIsUndefinedTable(t *testing.T) {
	assert.True(t, isUndefinedTable(&pgconn.PgError{Code: pgerrcode.UndefinedTable}))
	assert.False(t, isUndefinedTable(&pgconn.PgError{Code: pgerrcode.UniqueViolation}))
	assert.False(t, isUndefinedTable(errors.New("boom")))
}

func TestOpenUnknownDriver(t *testing.T) {
	_, closeFn, err := Open(context.Background(), Options{Driver: "tape"})
	assert.Error(t, err)
	assert.NotNil(t, closeFn)
}

func TestOpenFileDefault(t *testing.T) {
	s, closeFn, err := Open(context.Background(), Options{Dir: t.TempDir()})
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &FileStore{}, s)
}

func TestOpenPostgresNeedsDSN(t *testing.T) {
	_, closeFn, err := Open(context.Background(), Options{Driver: DriverPostgres})
	assert.ErrorContains(t, err, "DSN is empty")
	assert.NotNil(t, closeFn)
}
