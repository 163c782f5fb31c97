package http

import (
	"github.com/nekogravitycat/smartpark-backend/internal/session"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

// LoginRequest is the payload for POST /v1/auth/login.
type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
	Role     string `json:"role" binding:"omitempty,oneof=admin user"`
}

// SelectRequest is the payload for PUT /v1/selection.
type SelectRequest struct {
	Zone   string `json:"zone" binding:"required,oneof=car bike bicycle"`
	SlotID string `json:"slot_id" binding:"required"`
}

type UserResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

type SelectionResponse struct {
	Zone   zone.Kind `json:"zone"`
	SlotID string    `json:"slot_id"`
	Number int       `json:"number,omitempty"`
}

// LoginResponse is the response for POST /v1/auth/login.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        UserResponse `json:"user"`
}

// MeResponse is the response for GET /v1/me.
type MeResponse struct {
	User        UserResponse       `json:"user"`
	CurrentZone zone.Kind          `json:"current_zone,omitempty"`
	Selection   *SelectionResponse `json:"selection"`
}

func NewUserResponse(u session.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Role: string(u.Role)}
}

func NewMeResponse(s *session.Session) MeResponse {
	resp := MeResponse{
		User:        NewUserResponse(s.User),
		CurrentZone: s.CurrentZone,
	}
	if s.Selection != nil {
		resp.Selection = &SelectionResponse{Zone: s.Selection.Zone, SlotID: s.Selection.SlotID}
	}
	return resp
}
