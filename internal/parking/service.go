// Package parking owns the site's parking state (zones, bookings and the
// location configuration) and implements every operation that changes it.
//
// All operations are serialized by a single mutex. Each one checks its
// preconditions before touching state, mutates the in-memory model, then
// writes the affected blobs back to storage. Storage failures are logged
// and counted but never undo the in-memory change.
package parking

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/smartpark-backend/internal/booking"
	"github.com/nekogravitycat/smartpark-backend/internal/kv"
	"github.com/nekogravitycat/smartpark-backend/internal/location"
	"github.com/nekogravitycat/smartpark-backend/internal/metrics"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/log"
	"github.com/nekogravitycat/smartpark-backend/internal/pricing"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

// RecentActivitySize is how many bookings the activity feed shows.
const RecentActivitySize = 5

// Actor identifies who performs an operation.
type Actor struct {
	UserID string
	Name   string
	Admin  bool
}

// Selection is a slot picked for booking.
type Selection struct {
	Zone   zone.Kind
	SlotID string
}

// CreateRequest carries the input of a booking.
type CreateRequest struct {
	Actor         Actor
	Selection     *Selection
	VehicleNumber string
	FromTime      string
	ToTime        string
}

type Service interface {
	Stats(ctx context.Context) []ZoneStats
	Zone(ctx context.Context, kind zone.Kind, viewerID string) (*ZoneView, error)
	SelectSlot(ctx context.Context, kind zone.Kind, slotID string) (zone.Slot, error)
	Quote(ctx context.Context, from, to string) (pricing.Quote, error)

	CreateBooking(ctx context.Context, req CreateRequest) (booking.Booking, error)
	CancelBooking(ctx context.Context, actor Actor, bookingID string) (booking.Booking, error)
	Bookings(ctx context.Context, filter booking.Filter) ([]booking.Booking, int)
	Activity(ctx context.Context) []booking.Booking

	ResetAllZones(ctx context.Context) error
	AddSlots(ctx context.Context, kind zone.Kind, count int) ([]zone.Slot, error)

	Location(ctx context.Context) location.Config
	Configure(ctx context.Context, u location.Update) (location.Config, error)
	SetPrice(ctx context.Context, amount decimal.Decimal, hours int) (location.Config, error)

	Export(ctx context.Context) ([]byte, error)
	Wipe(ctx context.Context) error
}

// Options wires a Service. Rand and Now default to a time-seeded
// generator and time.Now.
type Options struct {
	Store    kv.Store
	Zones    zone.Repository
	Bookings booking.Repository
	Location location.Repository
	Rand     zone.Rand
	Now      func() time.Time
}

type service struct {
	mu sync.Mutex

	store    kv.Store
	zoneRepo zone.Repository
	bookRepo booking.Repository
	locRepo  location.Repository
	rng      zone.Rand
	now      func() time.Time
	ids      booking.IDGenerator

	zones    zone.Zones
	bookings booking.Bookings
	config   *location.Config
}

// NewService loads the stored state, falling back to seed data for any blob
// that is missing, malformed or unreadable.
func NewService(ctx context.Context, opts Options) Service {
	s := &service{
		store:    opts.Store,
		zoneRepo: opts.Zones,
		bookRepo: opts.Bookings,
		locRepo:  opts.Location,
		rng:      opts.Rand,
		now:      opts.Now,
	}
	if s.zoneRepo == nil {
		s.zoneRepo = zone.NewKVRepository(opts.Store)
	}
	if s.bookRepo == nil {
		s.bookRepo = booking.NewKVRepository(opts.Store)
	}
	if s.locRepo == nil {
		s.locRepo = location.NewKVRepository(opts.Store)
	}
	if s.rng == nil {
		seed := uint64(time.Now().UnixNano())
		s.rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.load(ctx)
	return s
}

func (s *service) load(ctx context.Context) {
	zs, err := s.zoneRepo.Load(ctx)
	if err != nil {
		logLoadFallback(ctx, kv.KeyParking, err)
		zs = zone.Seed(s.rng)
	}
	s.zones = zs

	bs, err := s.bookRepo.Load(ctx)
	if err != nil {
		logLoadFallback(ctx, kv.KeyBookings, err)
		bs = booking.Bookings{}
	}
	s.bookings = bs
	for _, b := range bs {
		s.ids.Observe(b.ID)
	}

	cfg, err := s.locRepo.Load(ctx)
	if err != nil {
		logLoadFallback(ctx, kv.KeyConfig, err)
		cfg = location.Default()
	}
	s.config = cfg

	s.observe()
}

func logLoadFallback(ctx context.Context, key string, err error) {
	if errors.Is(err, kv.ErrNotFound) {
		log.Info(ctx, "no stored data, using defaults", slog.String("key", key))
		return
	}
	log.Warn(ctx, "ignoring stored data",
		slog.String("key", key),
		log.Err(err),
	)
}

// persist writes the given blobs. Failures are warnings: the in-memory
// state stays authoritative until the next successful write.
func (s *service) persist(ctx context.Context, keys ...string) {
	for _, key := range keys {
		var err error
		switch key {
		case kv.KeyParking:
			err = s.zoneRepo.Save(ctx, s.zones)
		case kv.KeyBookings:
			err = s.bookRepo.Save(ctx, s.bookings)
		case kv.KeyConfig:
			err = s.locRepo.Save(ctx, s.config)
		}
		if err != nil {
			metrics.PersistFailed(key)
			log.Warn(ctx, "failed to persist state",
				slog.String("key", key),
				log.Err(err),
			)
		}
	}
}

// observe refreshes the per-zone gauges.
func (s *service) observe() {
	for _, k := range zone.Kinds {
		z, ok := s.zones[k]
		if !ok {
			continue
		}
		c := z.Counts()
		metrics.ObserveZone(string(k), c.Total, c.Available, c.Occupied, c.Reserved)
	}
}

func (s *service) SelectSlot(ctx context.Context, kind zone.Kind, slotID string) (zone.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, err := s.selectable(kind, slotID)
	if err != nil {
		return zone.Slot{}, err
	}
	return *slot, nil
}

// selectable returns the slot when it may be booked right now.
func (s *service) selectable(kind zone.Kind, slotID string) (*zone.Slot, error) {
	if strings.TrimSpace(slotID) == "" {
		return nil, zone.ErrSlotRequired
	}
	slot, err := s.zones.FindSlot(kind, slotID)
	if err != nil {
		return nil, err
	}
	if s.bookings.ActiveForSlot(slot.ID) != nil {
		return nil, booking.ErrSlotBooked
	}
	if slot.Occupied {
		return nil, zone.ErrSlotOccupied
	}
	if slot.Reserved {
		return nil, zone.ErrSlotReserved
	}
	return slot, nil
}

func (s *service) Quote(ctx context.Context, from, to string) (pricing.Quote, error) {
	s.mu.Lock()
	plan := s.config.Pricing.Plan()
	s.mu.Unlock()

	return pricing.Calculate(from, to, plan)
}

func (s *service) CreateBooking(ctx context.Context, req CreateRequest) (booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 1. Validate input
	if req.Selection == nil || strings.TrimSpace(req.Selection.SlotID) == "" {
		return booking.Booking{}, zone.ErrSlotRequired
	}
	vehicle := strings.TrimSpace(req.VehicleNumber)
	if vehicle == "" {
		return booking.Booking{}, booking.ErrVehicleRequired
	}
	quote, err := pricing.Calculate(req.FromTime, req.ToTime, s.config.Pricing.Plan())
	if err != nil {
		return booking.Booking{}, err
	}

	// 2. Check the slot is still free
	slot, err := s.selectable(req.Selection.Zone, req.Selection.SlotID)
	if err != nil {
		return booking.Booking{}, err
	}

	// 3. Record the booking and hold the slot
	now := s.now().UTC().Truncate(time.Millisecond)
	b := &booking.Booking{
		ID:            s.ids.Next(now),
		UserID:        req.Actor.UserID,
		UserName:      req.Actor.Name,
		SlotID:        slot.ID,
		Zone:          req.Selection.Zone,
		VehicleNumber: vehicle,
		FromTime:      strings.TrimSpace(req.FromTime),
		ToTime:        strings.TrimSpace(req.ToTime),
		Duration:      quote.Hours,
		Cost:          quote.Cost,
		PricingModel:  s.config.Pricing.Label,
		Status:        booking.StatusActive,
		BookingTime:   now,
	}
	s.bookings = append(s.bookings, b)
	slot.Reserved = true

	s.persist(ctx, kv.KeyBookings, kv.KeyParking)
	s.observe()
	metrics.BookingCreated(string(b.Zone))

	log.Info(ctx, "booking created",
		slog.String("booking_id", b.ID),
		slog.String("slot_id", b.SlotID),
		slog.String("user_id", b.UserID),
	)
	return *b, nil
}

func (s *service) CancelBooking(ctx context.Context, actor Actor, bookingID string) (booking.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.bookings.Find(bookingID)
	if b == nil {
		return booking.Booking{}, booking.ErrNotFound
	}
	// Owners may cancel their own bookings, admins any booking.
	if b.UserID != actor.UserID && !actor.Admin {
		return booking.Booking{}, booking.ErrPermissionDenied
	}
	if !b.IsActive() {
		return booking.Booking{}, booking.ErrAlreadyCancelled
	}

	b.Status = booking.StatusCancelled
	if slot, err := s.zones.FindSlot(b.Zone, b.SlotID); err == nil {
		slot.Free()
		s.zones[b.Zone].Recount()
	}

	s.persist(ctx, kv.KeyBookings, kv.KeyParking)
	s.observe()
	metrics.BookingCancelled(string(b.Zone))

	log.Info(ctx, "booking cancelled",
		slog.String("booking_id", b.ID),
		slog.String("by", actor.UserID),
	)
	return *b, nil
}

func (s *service) ResetAllZones(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.zones.Redraw(s.rng)
	discarded := len(s.bookings)
	s.bookings = booking.Bookings{}

	s.persist(ctx, kv.KeyBookings, kv.KeyParking)
	s.observe()
	metrics.ZonesReset()

	log.Warn(ctx, "all zones reset", slog.Int("bookings_discarded", discarded))
	return nil
}

func (s *service) AddSlots(ctx context.Context, kind zone.Kind, count int) ([]zone.Slot, error) {
	if _, err := zone.ParseKind(string(kind)); err != nil {
		return nil, err
	}
	if count <= 0 || count > zone.MaxSlotsPerAdd {
		return nil, zone.ErrInvalidCount
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[kind]
	if !ok {
		return nil, zone.ErrUnknownKind
	}
	added := z.Append(kind, count)

	s.persist(ctx, kv.KeyParking)
	s.observe()
	metrics.SlotsAdded(string(kind), count)

	out := make([]zone.Slot, len(added))
	for i, sl := range added {
		out[i] = *sl
	}
	return out, nil
}

func (s *service) Location(ctx context.Context) location.Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *s.config
}

func (s *service) Configure(ctx context.Context, u location.Update) (location.Config, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := s.config.Apply(u)
	if err != nil {
		return location.Config{}, err
	}
	s.config = next

	s.persist(ctx, kv.KeyConfig)
	log.Info(ctx, "location configuration updated",
		slog.String("name", next.Name),
		slog.String("pricing", next.Pricing.Label),
	)
	return *next, nil
}

// SetPrice changes only the pricing plan. Existing bookings keep the label they were made under.
func (s *service) SetPrice(ctx context.Context, amount decimal.Decimal, hours int) (location.Config, error) {
	return s.Configure(ctx, location.Update{Amount: &amount, Duration: &hours})
}

func (s *service) Bookings(ctx context.Context, filter booking.Filter) ([]booking.Booking, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := s.bookings.Filter(filter)
	return copyBookings(matched.Page(filter.Page, filter.PageSize)), len(matched)
}

func (s *service) Activity(ctx context.Context) []booking.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyBookings(s.bookings.Recent(RecentActivitySize))
}

// Wipe clears every stored blob and starts over from seed data.
func (s *service) Wipe(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, key := range kv.AllKeys {
		if err := s.store.Clear(ctx, key); err != nil {
			errs = append(errs, err)
		}
	}

	s.zones = zone.Seed(s.rng)
	s.bookings = booking.Bookings{}
	s.config = location.Default()
	s.observe()

	return errors.Join(errs...)
}

func copyBookings(bs booking.Bookings) []booking.Booking {
	out := make([]booking.Booking, len(bs))
	for i, b := range bs {
		out[i] = *b
	}
	return out
}
