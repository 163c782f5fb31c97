package parking

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/goccy/go-json"

	"github.com/nekogravitycat/smartpark-backend/internal/booking"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

// Snapshot is the read-only export document.
type Snapshot struct {
	ParkingData zone.Zones       `json:"parkingData"`
	Bookings    booking.Bookings `json:"bookings"`
	ExportTime  time.Time        `json:"exportTime"`
}

// ExportFilename names the download for an export taken at t.
func ExportFilename(t time.Time) string {
	return "smartpark-data-" + t.UTC().Format("2006-01-02") + ".json"
}

// Export renders the full parking data and booking collection as indented JSON.
func (s *service) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	snap := Snapshot{
		ParkingData: s.zones.Clone(),
		Bookings:    s.bookings.Clone(),
		ExportTime:  s.now().UTC().Truncate(time.Millisecond),
	}
	s.mu.Unlock()

	blob, err := EncodeSnapshot(snap)
	if err != nil {
		return nil, apperror.Wrap(err, http.StatusInternalServerError, "export failed")
	}
	return blob, nil
}

// EncodeSnapshot writes a snapshot with two-space indentation.
func EncodeSnapshot(snap Snapshot) ([]byte, error) {
	if snap.Bookings == nil {
		snap.Bookings = booking.Bookings{}
	}
	b, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export failed: %w", err)
	}
	return b, nil
}

// DecodeSnapshot parses and validates an export document.
func DecodeSnapshot(blob []byte) (*Snapshot, error) {
	var raw struct {
		ParkingData json.RawMessage `json:"parkingData"`
		Bookings    json.RawMessage `json:"bookings"`
		ExportTime  time.Time       `json:"exportTime"`
	}
	if err := json.Unmarshal(blob, &raw); err != nil {
		return nil, fmt.Errorf("decode export failed: %w", err)
	}

	zs, err := zone.Decode(raw.ParkingData)
	if err != nil {
		return nil, fmt.Errorf("decode export parking data failed: %w", err)
	}
	bs, err := booking.Decode(raw.Bookings)
	if err != nil {
		return nil, fmt.Errorf("decode export bookings failed: %w", err)
	}
	return &Snapshot{ParkingData: zs, Bookings: bs, ExportTime: raw.ExportTime}, nil
}
