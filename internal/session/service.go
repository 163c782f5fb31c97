package session

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nekogravitycat/smartpark-backend/internal/auth"
	"github.com/nekogravitycat/smartpark-backend/internal/pkg/log"
	"github.com/nekogravitycat/smartpark-backend/internal/zone"
)

// LoginRequest carries the login form.
type LoginRequest struct {
	Name     string
	Password string
	Role     string
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (*Session, error)
	Logout(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*Session, error)
	Exists(ctx context.Context, id string) bool

	EnterZone(ctx context.Context, id string, kind zone.Kind) error
	Select(ctx context.Context, id string, sel Selection) error
	Selection(ctx context.Context, id string) (*Selection, error)
	ClearSelection(ctx context.Context, id string) error
}

type service struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	lastID   int64

	hasher    auth.PasswordHasher
	adminHash string
	ttl       time.Duration
	now       func() time.Time
}

// NewService creates the session registry. When adminHash is non-empty,
// admin logins must present the matching password. Sessions older than ttl
// are treated as gone; a ttl of zero keeps them until logout.
func NewService(hasher auth.PasswordHasher, adminHash string, ttl time.Duration, now func() time.Time) Service {
	if now == nil {
		now = time.Now
	}
	return &service{
		sessions:  make(map[string]*Session),
		hasher:    hasher,
		adminHash: adminHash,
		ttl:       ttl,
		now:       now,
	}
}

func (s *service) expired(sess *Session, now time.Time) bool {
	return s.ttl > 0 && !now.Before(sess.CreatedAt.Add(s.ttl))
}

// lookup returns the live session for id. Callers hold s.mu.
func (s *service) lookup(id string) (*Session, bool) {
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, s.now()) {
		return nil, false
	}
	return sess, true
}

// prune drops every expired session. Callers hold s.mu for writing.
func (s *service) prune(ctx context.Context, now time.Time) {
	n := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		log.Debug(ctx, "expired sessions pruned", slog.Int("count", n))
	}
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Session, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}
	role, err := ParseRole(req.Role)
	if err != nil {
		return nil, err
	}
	if role == RoleAdmin && s.adminHash != "" {
		if err := s.hasher.Compare(s.adminHash, req.Password); err != nil {
			log.Warn(ctx, "admin login rejected", slog.String("name", name))
			return nil, ErrInvalidCredentials
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().UTC()
	s.prune(ctx, now)
	sess := &Session{
		ID:        uuid.NewString(),
		User:      User{ID: s.nextUserID(now), Name: name, Role: role},
		CreatedAt: now,
	}
	s.sessions[sess.ID] = sess

	log.Info(ctx, "user logged in",
		slog.String("user_id", sess.User.ID),
		slog.String("role", string(role)),
	)
	return sess.clone(), nil
}

// nextUserID returns user_<unix-millis>, bumped past the previous id on collision.
func (s *service) nextUserID(now time.Time) string {
	n := now.UnixMilli()
	if n <= s.lastID {
		n = s.lastID + 1
	}
	s.lastID = n
	return "user_" + strconv.FormatInt(n, 10)
}

func (s *service) Logout(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(id)
	delete(s.sessions, id)
	if !ok {
		return ErrNotFound
	}

	log.Info(ctx, "user logged out", slog.String("user_id", sess.User.ID))
	return nil
}

func (s *service) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.lookup(id)
	if !ok {
		return nil, ErrNotFound
	}
	return sess.clone(), nil
}

func (s *service) Exists(ctx context.Context, id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.lookup(id)
	return ok
}

// EnterZone switches the viewed zone and drops any pending selection.
func (s *service) EnterZone(ctx context.Context, id string, kind zone.Kind) error {
	return s.update(id, func(sess *Session) {
		if sess.CurrentZone != kind {
			sess.Selection = nil
		}
		sess.CurrentZone = kind
	})
}

func (s *service) Select(ctx context.Context, id string, sel Selection) error {
	return s.update(id, func(sess *Session) {
		sess.CurrentZone = sel.Zone
		sess.Selection = &sel
	})
}

func (s *service) Selection(ctx context.Context, id string) (*Selection, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if sess.Selection == nil {
		return nil, ErrNoSelection
	}
	return sess.Selection, nil
}

func (s *service) ClearSelection(ctx context.Context, id string) error {
	return s.update(id, func(sess *Session) {
		sess.Selection = nil
	})
}

func (s *service) update(id string, fn func(*Session)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.lookup(id)
	if !ok {
		return ErrNotFound
	}
	fn(sess)
	return nil
}
