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
	service    session.Service
	parking    parking.Service
	jwtManager *auth.JWTManager
}

func NewHandler(service session.Service, parkingService parking.Service, jwtManager *auth.JWTManager) *Handler {
	return &Handler{
		service:    service,
		parking:    parkingService,
		jwtManager: jwtManager,
	}
}

//
// POST /v1/auth/login
//

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()

	s, err := h.service.Login(ctx, session.LoginRequest{
		Name:     req.Name,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	token, err := h.jwtManager.GenerateAccessToken(auth.Identity{
		SessionID: s.ID,
		UserID:    s.User.ID,
		Name:      s.User.Name,
		Role:      string(s.User.Role),
	})
	if err != nil {
		// Do not leave a session nobody can use.
		_ = h.service.Logout(ctx, s.ID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken: token,
		User:        NewUserResponse(s.User),
	})
}

//
// POST /v1/auth/logout
//

func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), auth.GetSessionID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

//
// GET /v1/me
//

func (h *Handler) Me(c *gin.Context) {
	s, err := h.service.Get(c.Request.Context(), auth.GetSessionID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, NewMeResponse(s))
}

//
// PUT /v1/selection
//

func (h *Handler) Select(c *gin.Context) {
	var req SelectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	kind := zone.Kind(req.Zone)

	slot, err := h.parking.SelectSlot(ctx, kind, req.SlotID)
	if err != nil {
		response.Error(c, err)
		return
	}

	sel := session.Selection{Zone: kind, SlotID: slot.ID}
	if err := h.service.Select(ctx, auth.GetSessionID(c), sel); err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, SelectionResponse{Zone: kind, SlotID: slot.ID, Number: slot.Number})
}

//
// DELETE /v1/selection
//

func (h *Handler) ClearSelection(c *gin.Context) {
	if err := h.service.ClearSelection(c.Request.Context(), auth.GetSessionID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
