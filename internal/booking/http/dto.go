package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/smartpark-backend/internal/booking"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/request"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

// ListBookingsRequest defines query parameters for listing bookings.
type ListBookingsRequest struct {
	request.ListParams
	Scope  string `form:"scope" binding:"omitempty,oneof=active history all"`
	UserID string `form:"user_id" binding:"omitempty,startswith=user_"`
}

// CreateBookingRequest is the payload for POST /v1/bookings.
// The slot comes from the session's selection.
type CreateBookingRequest struct {
	VehicleNumber string `json:"vehicle_number"`
	FromTime      string `json:"from_time"`
	ToTime        string `json:"to_time"`
}

// QuoteRequest defines query parameters for GET /v1/quote.
type QuoteRequest struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type QuoteResponse struct {
	Hours int             `json:"hours"`
	Cost  decimal.Decimal `json:"cost"`
}

type BookingResponse struct {
	ID            string          `json:"id"`
	UserID        string          `json:"user_id"`
	UserName      string          `json:"user_name"`
	SlotID        string          `json:"slot_id"`
	Zone          zone.Kind       `json:"zone"`
	VehicleNumber string          `json:"vehicle_number"`
	FromTime      string          `json:"from_time"`
	ToTime        string          `json:"to_time"`
	Duration      int             `json:"duration"`
	Cost          decimal.Decimal `json:"cost"`
	PricingModel  string          `json:"pricing_model"`
	Status        booking.Status  `json:"status"`
	BookingTime   time.Time       `json:"booking_time"`
}

func NewBookingResponse(b booking.Booking) BookingResponse {
	return BookingResponse{
		ID:            b.ID,
		UserID:        b.UserID,
		UserName:      b.UserName,
		SlotID:        b.SlotID,
		Zone:          b.Zone,
		VehicleNumber: b.VehicleNumber,
		FromTime:      b.FromTime,
		ToTime:        b.ToTime,
		Duration:      b.Duration,
		Cost:          b.Cost,
		PricingModel:  b.PricingModel,
		Status:        b.Status,
		BookingTime:   b.BookingTime,
	}
}

func newBookingResponses(bs []booking.Booking) []BookingResponse {
	items := make([]BookingResponse, len(bs))
	for i, b := range bs {
		items[i] = NewBookingResponse(b)
	}
	return items
}
