package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smartpark-backend/internal/auth"
	"github.com/nekogravitycat/smartpark-backend/internal/parking"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/response"
	"github.com/nekogravitycat/smartpark-backend/internal/session"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

type Handler struct {
	service  parking.Service
	sessions session.Service
}

func NewHandler(service parking.Service, sessions session.Service) *Handler {
	return &Handler{service: service, sessions: sessions}
}

//
// GET /v1/zones
//

func (h *Handler) List(c *gin.Context) {
	stats := h.service.Stats(c.Request.Context())

	items := make([]ZoneStatsResponse, len(stats))
	for i, s := range stats {
		items[i] = NewZoneStatsResponse(s)
	}
	c.JSON(http.StatusOK, items)
}

//
// GET /v1/zones/:zone
//

func (h *Handler) Get(c *gin.Context) {
	var uri ZoneURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	kind := zone.Kind(uri.Zone)

	view, err := h.service.Zone(ctx, kind, auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	if err := h.sessions.EnterZone(ctx, auth.GetSessionID(c), kind); err != nil {
		response.Error(c, err)
		return
	}

	isAdmin := auth.GetRole(c) == string(session.RoleAdmin)
	c.JSON(http.StatusOK, NewZoneResponse(view, isAdmin))
}

//
// POST /v1/zones/:zone/slots
//

func (h *Handler) AddSlots(c *gin.Context) {
	var uri ZoneURI
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}
	var req AddSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	kind := zone.Kind(uri.Zone)

	added, err := h.service.AddSlots(ctx, kind, req.Count)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := AddSlotsResponse{Added: make([]SlotResponse, len(added))}
	for i, s := range added {
		resp.Added[i] = SlotResponse{
			ID:         s.ID,
			Number:     s.Number,
			Status:     string(parking.SlotAvailable),
			Selectable: true,
		}
	}
	for _, s := range h.service.Stats(ctx) {
		if s.Kind == kind {
			resp.Zone = NewZoneStatsResponse(s)
		}
	}

	c.JSON(http.StatusCreated, resp)
}

//
// POST /v1/zones/reset
//

func (h *Handler) Reset(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.service.ResetAllZones(ctx); err != nil {
		response.Error(c, err)
		return
	}

	stats := h.service.Stats(ctx)
	items := make([]ZoneStatsResponse, len(stats))
	for i, s := range stats {
		items[i] = NewZoneStatsResponse(s)
	}
	c.JSON(http.StatusOK, items)
}
