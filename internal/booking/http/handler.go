package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/smartpark-backend/internal/auth"
	"github.com/nekogravitycat/smartpark-backend/internal/booking"
	"github.com/nekogravitycat/smartpark-backend/internal/parking"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/request"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/response"
	"github.com/nekogravitycat/smartpark-backend/internal/session"
)

type Handler struct {
	service  parking.Service
	sessions session.Service
}

func NewHandler(service parking.Service, sessions session.Service) *Handler {
	return &Handler{service: service, sessions: sessions}
}

func actorOf(c *gin.Context) parking.Actor {
	return parking.Actor{
		UserID: auth.GetUserID(c),
		Name:   auth.GetUserName(c),
		Admin:  auth.GetRole(c) == string(session.RoleAdmin),
	}
}

//
// GET /v1/bookings
//

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	scope, err := booking.ParseScope(req.Scope)
	if err != nil {
		response.Error(c, err)
		return
	}

	// Users only ever see their own bookings; admins see everyone's or filter by user.
	actor := actorOf(c)
	filterUserID := actor.UserID
	if actor.Admin {
		filterUserID = req.UserID
	}

	filter := booking.Filter{
		UserID:   filterUserID,
		Scope:    scope,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	bookings, total := h.service.Bookings(c.Request.Context(), filter)

	resp := response.NewPageResponse(newBookingResponses(bookings), req.Page, req.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

//
// GET /v1/bookings/activity
//

func (h *Handler) Activity(c *gin.Context) {
	c.JSON(http.StatusOK, newBookingResponses(h.service.Activity(c.Request.Context())))
}

//
// POST /v1/bookings
//

func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	sessionID := auth.GetSessionID(c)

	req := parking.CreateRequest{
		Actor:         actorOf(c),
		VehicleNumber: body.VehicleNumber,
		FromTime:      body.FromTime,
		ToTime:        body.ToTime,
	}
	if sel, err := h.sessions.Selection(ctx, sessionID); err == nil {
		req.Selection = &parking.Selection{Zone: sel.Zone, SlotID: sel.SlotID}
	}

	b, err := h.service.CreateBooking(ctx, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// The pick has been used up.
	if err := h.sessions.ClearSelection(ctx, sessionID); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

//
// POST /v1/bookings/:id/cancel
//

func (h *Handler) Cancel(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BadRequest(c, err)
		return
	}

	b, err := h.service.CancelBooking(c.Request.Context(), actorOf(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

//
// GET /v1/quote
//

func (h *Handler) Quote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	q, err := h.service.Quote(c.Request.Context(), req.From, req.To)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{Hours: q.Hours, Cost: q.Cost})
}
