package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smartpark-backend/internal/location"
	"github.com/nekogravitycat/smartpark-backend/internal/parking"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/response"
)

type Handler struct {
	service parking.Service
}

func NewHandler(service parking.Service) *Handler {
	return &Handler{service: service}
}

//
// GET /v1/location
//

func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, NewLocationResponse(h.service.Location(c.Request.Context())))
}

//
// PUT /v1/location
//

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	cfg, err := h.service.Configure(c.Request.Context(), location.Update{
		Name:         req.Name,
		Amount:       req.Amount,
		Duration:     req.Duration,
		Surveillance: req.Surveillance,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLocationResponse(cfg))
}

//
// PUT /v1/location/pricing
//

func (h *Handler) SetPricing(c *gin.Context) {
	var req SetPricingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	cfg, err := h.service.SetPrice(c.Request.Context(), req.Amount, req.Duration)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewLocationResponse(cfg))
}
