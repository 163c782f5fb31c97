package parking

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/smartpark-backend/internal/booking"
	"github.com/nekogravitycat/smartpark-backend/internal/kv"
	"github.com/nekogravitycat/smartpark-backend/internal/location"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smartpark-backend/internal/pricing"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

var (
	alice = Actor{UserID: "user_1", Name: "Alice"}
	bob   = Actor{UserID: "user_2", Name: "Bob"}
	admin = Actor{UserID: "user_3", Name: "Admin", Admin: true}
)

// fakeClock returns a strictly advancing time.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newTestService(t *testing.T, store kv.Store) *service {
	t.Helper()
	clock := &fakeClock{t: time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)}
	svc := NewService(context.Background(), Options{
		Store: store,
		Rand:  rand.New(rand.NewPCG(7, 11)),
		Now:   clock.Now,
	})
	return svc.(*service)
}

// freeSlot returns the id of the first free car slot (the seed occupies 1-38).
const freeSlot = "CAR-040"

func book(t *testing.T, s *service, actor Actor, slotID string) booking.Booking {
	t.Helper()
	b, err := s.CreateBooking(context.Background(), CreateRequest{
		Actor:         actor,
		Selection:     &Selection{Zone: zone.KindCar, SlotID: slotID},
		VehicleNumber: "AP 09 CD 1234",
		FromTime:      "09:00",
		ToTime:        "18:00",
	})
	require.NoError(t, err)
	return b
}

func TestNewServiceSeedsDefaults(t *testing.T) {
	s := newTestService(t, kv.NewMemoryStore())

	stats := s.Stats(context.Background())
	require.Len(t, stats, 3)
	assert.Equal(t, ZoneStats{Kind: zone.KindCar, Title: "Car Parking Zone A", Total: 50, Available: 12, Occupied: 38}, stats[0])
	assert.Equal(t, "College Campus Parking", s.Location(context.Background()).Name)
}

func TestSelectSlot(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())

	slot, err := s.SelectSlot(ctx, zone.KindCar, freeSlot)
	require.NoError(t, err)
	assert.Equal(t, 40, slot.Number)

	_, err = s.SelectSlot(ctx, zone.KindCar, "CAR-001")
	assert.ErrorIs(t, err, zone.ErrSlotOccupied)

	_, err = s.SelectSlot(ctx, zone.KindCar, "CAR-999")
	assert.ErrorIs(t, err, zone.ErrSlotNotFound)

	_, err = s.SelectSlot(ctx, zone.KindCar, "")
	assert.ErrorIs(t, err, zone.ErrSlotRequired)

	book(t, s, alice, freeSlot)
	_, err = s.SelectSlot(ctx, zone.KindCar, freeSlot)
	assert.ErrorIs(t, err, booking.ErrSlotBooked)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	s := newTestService(t, store)

	b := book(t, s, alice, freeSlot)

	assert.Regexp(t, `^BK\d+$`, b.ID)
	assert.Equal(t, booking.StatusActive, b.Status)
	assert.Equal(t, "Alice", b.UserName)
	assert.Equal(t, 9, b.Duration)
	assert.True(t, decimal.NewFromInt(30).Equal(b.Cost), "cost = %s", b.Cost)
	assert.Equal(t, "₹20 for 7 Hours", b.PricingModel)

	slot := s.zones[zone.KindCar].Find(freeSlot)
	assert.True(t, slot.Reserved, "booking holds the slot")
	assert.False(t, slot.Occupied, "booking must not mark physical occupancy")

	active := s.bookings.Filter(booking.Filter{Scope: booking.ScopeActive})
	require.Len(t, active, 1)
	assert.Equal(t, freeSlot, active[0].SlotID)

	// Persisted
	stored, err := booking.NewKVRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
	zs, err := zone.NewKVRepository(store).Load(ctx)
	require.NoError(t, err)
	assert.True(t, zs[zone.KindCar].Find(freeSlot).Reserved)
}

func TestCreateBookingSecondAttemptFails(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())
	book(t, s, alice, freeSlot)

	_, err := s.CreateBooking(ctx, CreateRequest{
		Actor:         bob,
		Selection:     &Selection{Zone: zone.KindCar, SlotID: freeSlot},
		VehicleNumber: "AP 01 ZZ 1",
		FromTime:      "10:00",
		ToTime:        "11:00",
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindPrecondition, apperror.KindOf(err))
	assert.Len(t, s.bookings, 1, "failed booking leaves no trace")
}

func TestCreateBookingValidation(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())
	sel := &Selection{Zone: zone.KindCar, SlotID: freeSlot}

	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"No selection", CreateRequest{Actor: alice, VehicleNumber: "X", FromTime: "09:00", ToTime: "10:00"}, zone.ErrSlotRequired},
		{"No vehicle", CreateRequest{Actor: alice, Selection: sel, VehicleNumber: "  ", FromTime: "09:00", ToTime: "10:00"}, booking.ErrVehicleRequired},
		{"No from time", CreateRequest{Actor: alice, Selection: sel, VehicleNumber: "X", ToTime: "10:00"}, pricing.ErrTimeRequired},
		{"Equal times", CreateRequest{Actor: alice, Selection: sel, VehicleNumber: "X", FromTime: "10:00", ToTime: "10:00"}, pricing.ErrEmptyInterval},
		{"Occupied slot", CreateRequest{Actor: alice, Selection: &Selection{Zone: zone.KindCar, SlotID: "CAR-002"}, VehicleNumber: "X", FromTime: "09:00", ToTime: "10:00"}, zone.ErrSlotOccupied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateBooking(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	assert.Empty(t, s.bookings)
	assert.False(t, s.zones[zone.KindCar].Find(freeSlot).Reserved)
}

func TestCreateBookingWrapsMidnight(t *testing.T) {
	s := newTestService(t, kv.NewMemoryStore())

	b, err := s.CreateBooking(context.Background(), CreateRequest{
		Actor:         alice,
		Selection:     &Selection{Zone: zone.KindCar, SlotID: freeSlot},
		VehicleNumber: "AP 1 AA 1",
		FromTime:      "23:00",
		ToTime:        "01:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, b.Duration)
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())
	b := book(t, s, alice, freeSlot)

	// Pretend a vehicle arrived on the held slot.
	slot := s.zones[zone.KindCar].Find(freeSlot)
	slot.Occupied = true

	cancelled, err := s.CancelBooking(ctx, alice, b.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCancelled, cancelled.Status)
	assert.False(t, slot.Reserved)
	assert.False(t, slot.Occupied, "cancellation frees physical occupancy too")

	_, err = s.CancelBooking(ctx, alice, b.ID)
	assert.ErrorIs(t, err, booking.ErrAlreadyCancelled)

	_, err = s.CancelBooking(ctx, alice, "BK0")
	assert.ErrorIs(t, err, booking.ErrNotFound)

	history, total := s.Bookings(ctx, booking.Filter{UserID: alice.UserID, Scope: booking.ScopeHistory})
	assert.Equal(t, 1, total)
	assert.Equal(t, b.ID, history[0].ID)
}

func TestCancelBookingPermissions(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())
	b := book(t, s, alice, freeSlot)

	_, err := s.CancelBooking(ctx, bob, b.ID)
	assert.ErrorIs(t, err, booking.ErrPermissionDenied)

	_, err = s.CancelBooking(ctx, admin, b.ID)
	assert.NoError(t, err)
}

func TestResetAllZones(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())
	b := book(t, s, alice, freeSlot)
	_, err := s.CancelBooking(ctx, alice, b.ID)
	require.NoError(t, err)
	book(t, s, bob, "CAR-041")

	require.NoError(t, s.ResetAllZones(ctx))

	assert.Empty(t, s.bookings)
	_, total := s.Bookings(ctx, booking.Filter{Scope: booking.ScopeAll})
	assert.Zero(t, total)
	for _, k := range zone.Kinds {
		for _, sl := range s.zones[k].Slots {
			assert.False(t, sl.Reserved, "slot %s", sl.ID)
		}
	}
}

func TestAddSlots(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())

	added, err := s.AddSlots(ctx, zone.KindCar, 5)
	require.NoError(t, err)
	require.Len(t, added, 5)
	assert.Equal(t, 51, added[0].Number)
	assert.Equal(t, "CAR-055", added[4].ID)
	assert.Equal(t, 55, s.zones[zone.KindCar].Total)
	for _, sl := range added {
		assert.False(t, sl.Occupied)
		assert.False(t, sl.Reserved)
	}

	_, err = s.AddSlots(ctx, zone.KindCar, 0)
	assert.ErrorIs(t, err, zone.ErrInvalidCount)
	_, err = s.AddSlots(ctx, zone.KindCar, zone.MaxSlotsPerAdd+1)
	assert.ErrorIs(t, err, zone.ErrInvalidCount)

	_, err = s.AddSlots(ctx, zone.Kind("truck"), 3)
	assert.ErrorIs(t, err, zone.ErrUnknownKind)
	assert.Equal(t, 55, s.zones[zone.KindCar].Total)
}

func TestAddSlotsAcceptsTheCap(t *testing.T) {
	s := newTestService(t, kv.NewMemoryStore())

	added, err := s.AddSlots(context.Background(), zone.KindBicycle, zone.MaxSlotsPerAdd)
	require.NoError(t, err)
	assert.Len(t, added, zone.MaxSlotsPerAdd)
}

func TestConfigureSnapshotsPricingLabel(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())
	first := book(t, s, alice, freeSlot)

	amount := decimal.NewFromInt(50)
	cfg, err := s.Configure(ctx, location.Update{Amount: &amount})
	require.NoError(t, err)
	assert.Equal(t, "₹50 for 7 Hours", cfg.Pricing.Label)

	second := book(t, s, alice, "CAR-041")
	assert.Equal(t, "₹20 for 7 Hours", first.PricingModel)
	assert.Equal(t, "₹50 for 7 Hours", second.PricingModel)
	assert.True(t, decimal.NewFromInt(60).Equal(second.Cost))

	q, err := s.Quote(ctx, "09:00", "10:00")
	require.NoError(t, err)
	assert.True(t, amount.Equal(q.Cost))
}

func TestZoneView(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())
	book(t, s, alice, freeSlot)

	view, err := s.Zone(ctx, zone.KindCar, alice.UserID)
	require.NoError(t, err)
	assert.Equal(t, SlotOccupied, view.Slots[0].Status)
	assert.Equal(t, SlotMine, view.Slots[39].Status)
	assert.False(t, view.Slots[39].Selectable)
	assert.Equal(t, SlotAvailable, view.Slots[40].Status)
	assert.True(t, view.Slots[40].Selectable)
	assert.Equal(t, 11, view.Stats.Available)

	other, err := s.Zone(ctx, zone.KindCar, bob.UserID)
	require.NoError(t, err)
	assert.Equal(t, SlotReserved, other.Slots[39].Status)

	_, err = s.Zone(ctx, zone.Kind("truck"), "")
	assert.ErrorIs(t, err, zone.ErrUnknownKind)
}

func TestActivity(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, kv.NewMemoryStore())
	for _, id := range []string{"CAR-040", "CAR-041", "CAR-042", "CAR-043", "CAR-044", "CAR-045"} {
		book(t, s, alice, id)
	}

	recent := s.Activity(ctx)
	require.Len(t, recent, RecentActivitySize)
	assert.Equal(t, "CAR-045", recent[0].SlotID)
	assert.Equal(t, "CAR-041", recent[4].SlotID)
}

func TestStateSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	s := newTestService(t, store)
	b := book(t, s, alice, freeSlot)
	_, err := s.AddSlots(ctx, zone.KindBike, 2)
	require.NoError(t, err)

	restarted := newTestService(t, store)
	assert.Equal(t, 82, restarted.zones[zone.KindBike].Total)
	require.NotNil(t, restarted.bookings.Find(b.ID))

	next := book(t, restarted, bob, "CAR-041")
	assert.Greater(t, next.ID, b.ID, "ids keep increasing across restarts")
}

func TestMalformedBlobsLoadAsAbsent(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	require.NoError(t, store.Save(ctx, kv.KeyParking, []byte(`{"car":"nope"}`)))
	require.NoError(t, store.Save(ctx, kv.KeyBookings, []byte(`42`)))
	require.NoError(t, store.Save(ctx, kv.KeyConfig, []byte(`{"name":""}`)))

	s := newTestService(t, store)

	assert.Equal(t, 50, s.zones[zone.KindCar].Total)
	assert.Empty(t, s.bookings)
	assert.Equal(t, location.DefaultName, s.config.Name)
}

// failingStore loads nothing and fails every write.
type failingStore struct{}

func (failingStore) Load(context.Context, string) ([]byte, error) { return nil, kv.ErrNotFound }
func (failingStore) Save(context.Context, string, []byte) error   { return errors.New("quota exceeded") }
func (failingStore) Clear(context.Context, string) error          { return errors.New("quota exceeded") }

func TestPersistenceFailureIsNotFatal(t *testing.T) {
	ctx := context.Background()
	s := newTestService(t, failingStore{})

	b := book(t, s, alice, freeSlot)
	assert.NotNil(t, s.bookings.Find(b.ID), "in-memory effect stands")

	_, err := s.CancelBooking(ctx, alice, b.ID)
	assert.NoError(t, err)
}

func TestWipe(t *testing.T) {
	ctx := context.Background()
	store := kv.NewMemoryStore()
	s := newTestService(t, store)
	book(t, s, alice, freeSlot)

	require.NoError(t, s.Wipe(ctx))

	assert.Empty(t, s.bookings)
	_, err := store.Load(ctx, kv.KeyBookings)
	assert.ErrorIs(t, err, kv.ErrNotFound)
}
