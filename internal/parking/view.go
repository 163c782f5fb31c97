package parking

import (
	"context"

	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

// SlotStatus is how a slot appears to a particular viewer.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotOccupied  SlotStatus = "occupied"
	SlotReserved  SlotStatus = "reserved"
	SlotMine      SlotStatus = "mine" // held by the viewer's own active booking
)

// ZoneStats are the dashboard counters of one zone.
type ZoneStats struct {
	Kind      zone.Kind
	Title     string
	Total     int
	Available int
	Occupied  int
	Reserved  int
}

// SlotView is a slot with its status for the viewer.
type SlotView struct {
	zone.Slot
	Status     SlotStatus
	Selectable bool
}

// ZoneView is a zone's grid as seen by one viewer.
type ZoneView struct {
	Stats ZoneStats
	Slots []SlotView
}

func (s *service) Stats(ctx context.Context) []ZoneStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]ZoneStats, 0, len(zone.Kinds))
	for _, k := range zone.Kinds {
		if z, ok := s.zones[k]; ok {
			out = append(out, statsOf(k, z))
		}
	}
	return out
}

func (s *service) Zone(ctx context.Context, kind zone.Kind, viewerID string) (*ZoneView, error) {
	if _, err := zone.ParseKind(string(kind)); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	z, ok := s.zones[kind]
	if !ok {
		return nil, zone.ErrUnknownKind
	}

	view := &ZoneView{
		Stats: statsOf(kind, z),
		Slots: make([]SlotView, len(z.Slots)),
	}
	for i, sl := range z.Slots {
		v := SlotView{Slot: *sl, Status: SlotAvailable}
		held := s.bookings.ActiveForSlot(sl.ID)

		switch {
		case held != nil && viewerID != "" && held.UserID == viewerID:
			v.Status = SlotMine
		case sl.Occupied:
			v.Status = SlotOccupied
		case sl.Reserved || held != nil:
			v.Status = SlotReserved
		}
		v.Selectable = sl.Available() && held == nil
		view.Slots[i] = v
	}
	return view, nil
}

func statsOf(k zone.Kind, z *zone.Zone) ZoneStats {
	c := z.Counts()
	return ZoneStats{
		Kind:      k,
		Title:     k.Title(),
		Total:     c.Total,
		Available: c.Available,
		Occupied:  c.Occupied,
		Reserved:  c.Reserved,
	}
}
