package http

import (
	"github.com/nekogravitycat/smartpark-backend/internal/parking"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

// ZoneURI binds the :zone path parameter.
type ZoneURI struct {
	Zone string `uri:"zone" binding:"required,oneof=car bike bicycle"`
}

// AddSlotsRequest is the payload for POST /v1/zones/:zone/slots.
// The max tag mirrors zone.MaxSlotsPerAdd.
type AddSlotsRequest struct {
	Count int `json:"count" binding:"required,min=1,max=500"`
}

type ZoneStatsResponse struct {
	Zone      zone.Kind `json:"zone"`
	Title     string    `json:"title"`
	Total     int       `json:"total"`
	Available int       `json:"available"`
	Occupied  int       `json:"occupied"`
	Reserved  int       `json:"reserved"`
}

type SlotResponse struct {
	ID            string  `json:"id"`
	Number        int     `json:"number"`
	Status        string  `json:"status"`
	Selectable    bool    `json:"selectable"`
	VehicleNumber *string `json:"vehicle_number,omitempty"`
}

type ZoneResponse struct {
	ZoneStatsResponse
	Slots []SlotResponse `json:"slots"`
}

type AddSlotsResponse struct {
	Added []SlotResponse    `json:"added"`
	Zone  ZoneStatsResponse `json:"zone"`
}

func NewZoneStatsResponse(s parking.ZoneStats) ZoneStatsResponse {
	return ZoneStatsResponse{
		Zone:      s.Kind,
		Title:     s.Title,
		Total:     s.Total,
		Available: s.Available,
		Occupied:  s.Occupied,
		Reserved:  s.Reserved,
	}
}

// NewZoneResponse renders a zone grid. Plates are only shown to admins.
func NewZoneResponse(v *parking.ZoneView, showPlates bool) ZoneResponse {
	slots := make([]SlotResponse, len(v.Slots))
	for i, s := range v.Slots {
		slots[i] = SlotResponse{
			ID:         s.ID,
			Number:     s.Number,
			Status:     string(s.Status),
			Selectable: s.Selectable,
		}
		if showPlates {
			slots[i].VehicleNumber = s.VehicleNumber
		}
	}
	return ZoneResponse{
		ZoneStatsResponse: NewZoneStatsResponse(v.Stats),
		Slots:             slots,
	}
}
