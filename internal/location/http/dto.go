package http

import (
	"github.com/shopspring/decimal"

	"github.com/nekogravitycat/smartpark-backend/internal/location"
)

// UpdateLocationRequest is the payload for PUT /v1/location. Omitted fields are kept.
type UpdateLocationRequest struct {
	Name         *string          `json:"name"`
	Amount       *decimal.Decimal `json:"amount"`
	Duration     *int             `json:"duration"`
	Surveillance *bool            `json:"surveillance"`
}

// SetPricingRequest is the payload for PUT /v1/location/pricing.
type SetPricingRequest struct {
	Amount   decimal.Decimal `json:"amount" binding:"required"`
	Duration int             `json:"duration" binding:"required"`
}

type PricingResponse struct {
	Amount   decimal.Decimal `json:"amount"`
	Duration int             `json:"duration"`
	Label    string          `json:"label"`
}

type LocationResponse struct {
	Name         string          `json:"name"`
	Pricing      PricingResponse `json:"pricing"`
	Surveillance bool            `json:"surveillance"`
	Description  string          `json:"description"`
}

func NewLocationResponse(c location.Config) LocationResponse {
	return LocationResponse{
		Name: c.Name,
		Pricing: PricingResponse{
			Amount:   c.Pricing.Amount,
			Duration: c.Pricing.Duration,
			Label:    c.Pricing.Label,
		},
		Surveillance: c.Surveillance,
		Description:  c.Description,
	}
}
