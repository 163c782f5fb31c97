package zone

import (
	"context"
	"math/rand/v2"
	"regexp"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/smartpark-backend/internal/kv"
)

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind(" Bike ")
	require.NoError(t, err)
	assert.Equal(t, KindBike, k)

	_, err = ParseKind("truck")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestSlotID(t *testing.T) {
	assert.Equal(t, "CAR-001", SlotID(KindCar, 1))
	assert.Equal(t, "BICYCLE-055", SlotID(KindBicycle, 55))
	assert.Equal(t, "BIKE-1234", SlotID(KindBike, 1234))
}

func TestSeed(t *testing.T) {
	zs := Seed(newRand())
	require.NoError(t, zs.Validate())

	car := zs[KindCar].Counts()
	assert.Equal(t, Counts{Total: 50, Available: 12, Occupied: 38}, car)
	assert.Equal(t, 52, zs[KindBike].Occupied)
	assert.Equal(t, 100, zs[KindBicycle].Total)

	for _, s := range zs[KindCar].Slots {
		assert.Equal(t, s.Occupied, s.VehicleNumber != nil, "slot %s vehicle presence", s.ID)
	}
}

func TestAppend(t *testing.T) {
	zs := Seed(newRand())
	car := zs[KindCar]

	added := car.Append(KindCar, 5)

	assert.Equal(t, 55, car.Total)
	assert.Len(t, car.Slots, 55)
	require.Len(t, added, 5)
	for i, s := range added {
		assert.Equal(t, 51+i, s.Number)
		assert.Equal(t, SlotID(KindCar, 51+i), s.ID)
		assert.False(t, s.Occupied)
		assert.False(t, s.Reserved)
		assert.Nil(t, s.VehicleNumber)
	}
	assert.NoError(t, zs.Validate())
}

func TestRedraw(t *testing.T) {
	zs := Seed(newRand())
	for _, z := range zs {
		for _, s := range z.Slots {
			s.Reserved = true
		}
	}

	zs.Redraw(newRand())

	total, occupied := 0, 0
	for _, k := range Kinds {
		z := zs[k]
		for _, s := range z.Slots {
			total++
			assert.False(t, s.Reserved, "reset must clear holds")
			assert.Equal(t, s.Occupied, s.VehicleNumber != nil)
			if s.Occupied {
				occupied++
			}
		}
		assert.Equal(t, z.Counts().Occupied, z.Occupied)
	}

	share := float64(occupied) / float64(total)
	assert.InDelta(t, OccupiedShare, share, 0.12)
}

func TestGeneratePlate(t *testing.T) {
	re := regexp.MustCompile(`^AP \d{1,2} [A-Z]{2} \d{1,4}$`)
	rng := newRand()
	for range 50 {
		assert.Regexp(t, re, GeneratePlate(rng))
	}
}

func TestMarshalKeepsZoneOrder(t *testing.T) {
	zs := Seed(newRand())
	b, err := json.Marshal(zs)
	require.NoError(t, err)

	s := string(b)
	car := strings.Index(s, `"car"`)
	bike := strings.Index(s, `"bike"`)
	bicycle := strings.Index(s, `"bicycle"`)
	assert.True(t, car < bike && bike < bicycle, "zones must keep display order")
	assert.Contains(t, s, `"vehicleNumber":null`)
}

func TestRoundTripIsByteIdentical(t *testing.T) {
	zs := Seed(newRand())
	zs[KindBike].Slots[70].Reserved = true

	first, err := json.Marshal(zs)
	require.NoError(t, err)

	decoded, err := Decode(first)
	require.NoError(t, err)

	second, err := json.Marshal(decoded)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestDecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		blob string
	}{
		{"Not JSON", `not json`},
		{"Missing zone", `{"car":{"total":0,"occupied":0,"slots":[]}}`},
		{"Total mismatch", `{"car":{"total":1,"occupied":0,"slots":[]},"bike":{"total":0,"occupied":0,"slots":[]},"bicycle":{"total":0,"occupied":0,"slots":[]}}`},
		{"Bad slot id", `{"car":{"total":1,"occupied":0,"slots":[{"id":"X","number":1}]},"bike":{"total":0,"occupied":0,"slots":[]},"bicycle":{"total":0,"occupied":0,"slots":[]}}`},
		{"Extra zone", `{"car":{"total":0,"occupied":0,"slots":[]},"bike":{"total":0,"occupied":0,"slots":[]},"bicycle":{"total":0,"occupied":0,"slots":[]},"truck":{"total":0,"occupied":0,"slots":[]}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.blob))
			assert.Error(t, err)
		})
	}
}

func TestRepository(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	repo := NewKVRepository(store)

	_, err := repo.Load(ctx)
	assert.ErrorIs(t, err, kv.ErrNotFound)

	zs := Seed(newRand())
	require.NoError(t, repo.Save(ctx, zs))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, zs[KindCar].Slots[0].ID, loaded[KindCar].Slots[0].ID)

	require.NoError(t, store.Save(ctx, kv.KeyParking, []byte(`{"car":1}`)))
	_, err = repo.Load(ctx)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestCloneIsDeep(t *testing.T) {
	zs := Seed(newRand())
	c := zs.Clone()

	c[KindCar].Slots[0].Occupied = false
	*c[KindCar].Slots[1].VehicleNumber = "changed"

	assert.True(t, zs[KindCar].Slots[0].Occupied)
	assert.NotEqual(t, "changed", *zs[KindCar].Slots[1].VehicleNumber)
}
