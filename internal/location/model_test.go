package location

import (
	"context"
	"testing"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/smartpark-backend/internal/kv"
)

func TestDefault(t *testing.T) {
	c := Default()

	assert.Equal(t, "College Campus Parking", c.Name)
	assert.Equal(t, "₹20 for 7 Hours", c.Pricing.Label)
	assert.Equal(t, "Full 24/7 CCTV Surveillance", c.Description)
	assert.NoError(t, c.Validate())
}

func TestApplyDerivesLabels(t *testing.T) {
	name := "  Metro Station Lot "
	amount := decimal.NewFromInt(35)
	off := false

	next, err := Default().Apply(Update{Name: &name, Amount: &amount, Surveillance: &off})
	require.NoError(t, err)

	assert.Equal(t, "Metro Station Lot", next.Name)
	assert.Equal(t, "₹35 for 7 Hours", next.Pricing.Label)
	assert.Equal(t, "No Surveillance", next.Description)
	assert.False(t, next.Surveillance)
}

func TestApplyRejectsInvalid(t *testing.T) {
	c := Default()

	empty := ""
	_, err := c.Apply(Update{Name: &empty})
	assert.ErrorIs(t, err, ErrNameRequired)

	zero := decimal.Zero
	_, err = c.Apply(Update{Amount: &zero})
	assert.ErrorIs(t, err, ErrInvalidAmount)

	hours := 0
	_, err = c.Apply(Update{Duration: &hours})
	assert.ErrorIs(t, err, ErrInvalidHours)

	assert.Equal(t, "₹20 for 7 Hours", c.Pricing.Label, "failed update must not touch the original")
}

func TestJSONShape(t *testing.T) {
	b, err := json.Marshal(Default())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"name": "College Campus Parking",
		"pricing": {"amount": 20, "duration": 7, "label": "₹20 for 7 Hours"},
		"surveillance": true,
		"description": "Full 24/7 CCTV Surveillance"
	}`, string(b))
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewKVRepository(store)

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, repo.Save(ctx, Default()))
	first, err := store.Load(ctx, kv.KeyConfig)
	require.NoError(t, err)

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, loaded))

	second, err := store.Load(ctx, kv.KeyConfig)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestRepositoryRejectsMalformed(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewKVRepository(store)

	for _, blob := range []string{
		`[]`,
		`{"name":"","pricing":{"amount":20,"duration":7}}`,
		`{"name":"Lot","pricing":{"amount":-1,"duration":7}}`,
		`{"name":"Lot","pricing":{"amount":20,"duration":0}}`,
	} {
		require.NoError(t, store.Save(ctx, kv.KeyConfig, []byte(blob)))
		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, ErrMalformed, blob)
	}
}
