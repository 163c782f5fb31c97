package booking

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/smartpark-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/money"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

var (
	ErrNotFound         = apperror.NotFound("booking not found")
	ErrAlreadyCancelled = apperror.Precondition("booking is already cancelled")
	ErrSlotBooked       = apperror.Precondition("parking slot already has an active booking")
	ErrVehicleRequired  = apperror.Validation("vehicle number is required")
	ErrPermissionDenied = apperror.Permission("permission denied")
	ErrInvalidScope     = apperror.Validation("scope must be one of active, history, all")
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Booking is a user's claim on a slot for a time-of-day interval.
type Booking struct {
	ID            string          `json:"id"`
	UserID        string          `json:"userId"`
	UserName      string          `json:"userName"`
	SlotID        string          `json:"slotId"`
	Zone          zone.Kind       `json:"zone"`
	VehicleNumber string          `json:"vehicleNumber"`
	FromTime      string          `json:"fromTime"`
	ToTime        string          `json:"toTime"`
	Duration      int             `json:"duration"`
	Cost          decimal.Decimal `json:"cost"`
	PricingModel  string          `json:"pricingModel"`
	Status        Status          `json:"status"`
	BookingTime   time.Time       `json:"bookingTime"`
}

func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// validate checks the shape of a stored record.
func (b *Booking) validate() error {
	switch {
	case !strings.HasPrefix(b.ID, "BK"):
		return fmt.Errorf("booking id %q is malformed", b.ID)
	case b.UserID == "" || b.SlotID == "":
		return fmt.Errorf("booking %s lacks user or slot", b.ID)
	case b.Status != StatusActive && b.Status != StatusCancelled:
		return fmt.Errorf("booking %s has unknown status %q", b.ID, b.Status)
	case !money.Valid(b.Cost):
		return fmt.Errorf("booking %s has negative cost %s", b.ID, b.Cost)
	}
	if _, err := zone.ParseKind(string(b.Zone)); err != nil {
		return fmt.Errorf("booking %s has unknown zone %q", b.ID, b.Zone)
	}
	return nil
}

// Scope selects which bookings a listing returns.
type Scope string

const (
	ScopeActive  Scope = "active"
	ScopeHistory Scope = "history" // everything no longer active
	ScopeAll     Scope = "all"
)

func ParseScope(s string) (Scope, error) {
	switch Scope(s) {
	case "":
		return ScopeActive, nil
	case ScopeActive, ScopeHistory, ScopeAll:
		return Scope(s), nil
	default:
		return "", ErrInvalidScope
	}
}

// Filter narrows a booking listing.
type Filter struct {
	UserID   string // empty matches every user
	Scope    Scope
	Page     int
	PageSize int
}

func (f Filter) matches(b *Booking) bool {
	if f.UserID != "" && b.UserID != f.UserID {
		return false
	}
	switch f.Scope {
	case ScopeActive:
		return b.IsActive()
	case ScopeHistory:
		return !b.IsActive()
	default:
		return true
	}
}

// Bookings is the booking collection, oldest first.
type Bookings []*Booking

// Find returns the booking with the given id, or nil.
func (bs Bookings) Find(id string) *Booking {
	for _, b := range bs {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// ActiveForSlot returns the active booking holding the slot, or nil.
func (bs Bookings) ActiveForSlot(slotID string) *Booking {
	for _, b := range bs {
		if b.IsActive() && b.SlotID == slotID {
			return b
		}
	}
	return nil
}

// Filter returns matching bookings in stored order.
func (bs Bookings) Filter(f Filter) Bookings {
	var out Bookings
	for _, b := range bs {
		if f.matches(b) {
			out = append(out, b)
		}
	}
	return out
}

// Recent returns the last n bookings, newest first.
func (bs Bookings) Recent(n int) Bookings {
	if n > len(bs) {
		n = len(bs)
	}
	out := make(Bookings, 0, n)
	for i := len(bs) - 1; i >= len(bs)-n; i-- {
		out = append(out, bs[i])
	}
	return out
}

// Clone returns a deep copy.
func (bs Bookings) Clone() Bookings {
	out := make(Bookings, len(bs))
	for i, b := range bs {
		cp := *b
		out[i] = &cp
	}
	return out
}

// IDGenerator hands out time-derived booking ids (BK<unix-millis>),
// strictly increasing even when two bookings land in the same millisecond.
type IDGenerator struct {
	last int64
}

// Observe makes sure future ids sort after an existing one.
func (g *IDGenerator) Observe(id string) {
	n, err := strconv.ParseInt(strings.TrimPrefix(id, "BK"), 10, 64)
	if err == nil && n > g.last {
		g.last = n
	}
}

// Next returns a fresh id for a booking made at now. Not safe for concurrent use.
func (g *IDGenerator) Next(now time.Time) string {
	n := now.UnixMilli()
	if n <= g.last {
		n = g.last + 1
	}
	g.last = n
	return "BK" + strconv.FormatInt(n, 10)
}

// Page returns the 1-based page of the collection; pages past the end are empty.
func (bs Bookings) Page(page, pageSize int) Bookings {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}
	start := (page - 1) * pageSize
	if start >= len(bs) {
		return nil
	}
	end := min(start+pageSize, len(bs))
	return bs[start:end]
}
