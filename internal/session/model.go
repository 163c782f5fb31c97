package session

import (
	"net/http"
	"time"

	"github.com/nekogravitycat/smartpark-backend/internal/pkg/apperror"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

var (
	ErrNameRequired       = apperror.Validation("name is required")
	ErrPasswordRequired   = apperror.Validation("password is required")
	ErrInvalidRole        = apperror.Validation("role must be admin or user")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid admin credentials")
	ErrNotFound           = apperror.New(http.StatusUnauthorized, "session not found")
	ErrNoSelection        = apperror.Validation("no slot selected")
)

// Role is what a user may do in the app.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole reads a role; empty means a regular user.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin, nil
	case RoleUser, "":
		return RoleUser, nil
	default:
		return "", ErrInvalidRole
	}
}

// User lives only as long as its session.
type User struct {
	ID   string
	Name string
	Role Role
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Selection is the slot a user picked and has not booked yet.
type Selection struct {
	Zone   zone.Kind
	SlotID string
}

// Session is one login. Nothing in it is persisted.
type Session struct {
	ID          string
	User        User
	CreatedAt   time.Time
	CurrentZone zone.Kind
	Selection   *Selection
}

func (s *Session) clone() *Session {
	cp := *s
	if s.Selection != nil {
		sel := *s.Selection
		cp.Selection = &sel
	}
	return &cp
}
