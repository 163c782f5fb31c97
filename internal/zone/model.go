package zone

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/goccy/go-json"

	"github.com/nekogravitycat/smartpark-backend/internal/pkg/apperror"
)

// MaxSlotsPerAdd caps a single capacity increase.
const MaxSlotsPerAdd = 500

var (
	ErrUnknownKind  = apperror.Validation("zone must be one of car, bike, bicycle")
	ErrInvalidCount = apperror.Validation("slot count must be between 1 and 500")
	ErrSlotNotFound = apperror.NotFound("parking slot not found")
	ErrSlotOccupied = apperror.Precondition("parking slot is occupied")
	ErrSlotReserved = apperror.Precondition("parking slot is already reserved")
	ErrSlotRequired = apperror.Validation("please select a parking slot")
)

// Kind is one of the fixed vehicle categories, each with its own slot pool.
type Kind string

const (
	KindCar     Kind = "car"
	KindBike    Kind = "bike"
	KindBicycle Kind = "bicycle"
)

// Kinds lists every zone in display order.
var Kinds = []Kind{KindCar, KindBike, KindBicycle}

// ParseKind validates a zone name.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	switch k {
	case KindCar, KindBike, KindBicycle:
		return k, nil
	default:
		return "", ErrUnknownKind
	}
}

// Title is the zone heading shown on the dashboard.
func (k Kind) Title() string {
	switch k {
	case KindCar:
		return "Car Parking Zone A"
	case KindBike:
		return "Bike Parking Zone B"
	case KindBicycle:
		return "Bicycle Parking Zone C"
	default:
		return string(k)
	}
}

// SlotID derives the stable identifier of the n-th slot of a zone, e.g. CAR-007.
func SlotID(k Kind, n int) string {
	return fmt.Sprintf("%s-%03d", strings.ToUpper(string(k)), n)
}

// Slot is an individually addressable parking space.
type Slot struct {
	ID            string  `json:"id"`
	Number        int     `json:"number"`
	Occupied      bool    `json:"occupied"`
	Reserved      bool    `json:"reserved"`
	VehicleNumber *string `json:"vehicleNumber"`
}

// Available reports whether the slot can be selected for a new booking.
func (s *Slot) Available() bool {
	return !s.Occupied && !s.Reserved
}

// Free clears physical occupancy and any hold on the slot.
func (s *Slot) Free() {
	s.Occupied = false
	s.Reserved = false
	s.VehicleNumber = nil
}

// Zone is the slot pool of one vehicle category.
// Occupied mirrors the number of occupied slots and is kept current by Recount.
type Zone struct {
	Total    int     `json:"total"`
	Occupied int     `json:"occupied"`
	Slots    []*Slot `json:"slots"`
}

// Find returns the slot with the given id, or nil.
func (z *Zone) Find(id string) *Slot {
	for _, s := range z.Slots {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// Append adds count free slots numbered after the current total.
func (z *Zone) Append(k Kind, count int) []*Slot {
	added := make([]*Slot, 0, count)
	for n := z.Total + 1; n <= z.Total+count; n++ {
		s := &Slot{ID: SlotID(k, n), Number: n}
		z.Slots = append(z.Slots, s)
		added = append(added, s)
	}
	z.Total += count
	return added
}

// Recount refreshes the cached occupied count.
func (z *Zone) Recount() {
	n := 0
	for _, s := range z.Slots {
		if s.Occupied {
			n++
		}
	}
	z.Occupied = n
}

// Counts summarizes slot states of a zone.
type Counts struct {
	Total     int
	Available int
	Occupied  int
	Reserved  int
}

func (z *Zone) Counts() Counts {
	c := Counts{Total: z.Total}
	for _, s := range z.Slots {
		if s.Available() {
			c.Available++
		}
		if s.Occupied {
			c.Occupied++
		}
		if s.Reserved {
			c.Reserved++
		}
	}
	return c
}

func (z *Zone) clone() *Zone {
	c := &Zone{Total: z.Total, Occupied: z.Occupied, Slots: make([]*Slot, len(z.Slots))}
	for i, s := range z.Slots {
		cp := *s
		if s.VehicleNumber != nil {
			v := *s.VehicleNumber
			cp.VehicleNumber = &v
		}
		c.Slots[i] = &cp
	}
	return c
}

// Zones holds the slot pool of every kind.
type Zones map[Kind]*Zone

// Clone returns a deep copy.
func (zs Zones) Clone() Zones {
	c := make(Zones, len(zs))
	for k, z := range zs {
		c[k] = z.clone()
	}
	return c
}

// FindSlot looks a slot up by zone and id.
func (zs Zones) FindSlot(k Kind, id string) (*Slot, error) {
	z, ok := zs[k]
	if !ok {
		return nil, ErrUnknownKind
	}
	s := z.Find(id)
	if s == nil {
		return nil, ErrSlotNotFound
	}
	return s, nil
}

// Validate checks the structural invariants of stored parking data.
func (zs Zones) Validate() error {
	for _, k := range Kinds {
		z, ok := zs[k]
		if !ok || z == nil {
			return fmt.Errorf("zone %s missing", k)
		}
		if z.Total != len(z.Slots) {
			return fmt.Errorf("zone %s total %d does not match %d slots", k, z.Total, len(z.Slots))
		}
		for i, s := range z.Slots {
			if s == nil {
				return fmt.Errorf("zone %s slot %d is null", k, i+1)
			}
			if s.Number != i+1 || s.ID != SlotID(k, s.Number) {
				return fmt.Errorf("zone %s slot %d has unexpected id %q", k, i+1, s.ID)
			}
		}
	}
	if len(zs) != len(Kinds) {
		return fmt.Errorf("unexpected zones in parking data")
	}
	return nil
}

// MarshalJSON writes zones in display order so the encoding is stable.
func (zs Zones) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	first := true
	for _, k := range Kinds {
		z, ok := zs[k]
		if !ok {
			continue
		}
		if !first {
			buf.WriteByte(',')
		}
		first = false

		key, _ := json.Marshal(string(k))
		val, err := json.Marshal(z)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
