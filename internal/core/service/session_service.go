package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/roxiler/storerating-client/internal/api/metrics"
	"github.com/roxiler/storerating-client/internal/core/domain"
	"github.com/roxiler/storerating-client/internal/core/ports"
)

// SessionListener is notified with the new session after every transition.
type SessionListener func(domain.Session)

// SessionService owns the client session. It is the only writer of the
// durable session storage and keeps the in-memory copy in step with it.
type SessionService struct {
	storage ports.SessionStorage
	logger  zerolog.Logger
	now     func() time.Time

	mu      sync.RWMutex
	current domain.Session

	lmu       sync.Mutex
	listeners []SessionListener
}

func NewSessionService(storage ports.SessionStorage, logger zerolog.Logger) *SessionService {
	return &SessionService{
		storage: storage,
		logger:  logger.With().Str("component", "session").Logger(),
		now:     time.Now,
	}
}

// Subscribe registers fn for session transitions. Listeners run synchronously
// before Login, Logout or Restore return.
func (s *SessionService) Subscribe(fn SessionListener) {
	s.lmu.Lock()
	s.listeners = append(s.listeners, fn)
	s.lmu.Unlock()
}

// Current returns a snapshot of the session.
func (s *SessionService) Current() domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.NewSession(s.current.User, s.current.Token)
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *SessionService) CurrentUser() *domain.User {
	return s.Current().User
}

// CurrentToken returns the bearer token and whether a session is active.
func (s *SessionService) CurrentToken() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Token, s.current.Active()
}

// Login replaces the session and persists both keys. A missing user or token
// leaves the session empty. Storage errors are logged, never returned: the
// in-memory session stays authoritative for this process.
func (s *SessionService) Login(ctx context.Context, user *domain.User, token string) domain.Session {
	next := domain.NewSession(user, token)
	if !next.Active() {
		s.logger.Warn().Msg("login without user or token ignored")
		s.Logout(ctx)
		return domain.Session{}
	}

	raw, err := json.Marshal(next.User)
	if err == nil {
		err = s.storage.Write(ctx, ports.SessionRecord{Token: next.Token, User: string(raw)})
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("persist session")
	}

	s.set(next)
	metrics.SessionEventsTotal.WithLabelValues("login").Inc()
	s.logger.Info().Int64("user_id", next.User.ID).Str("role", string(next.User.Role)).Msg("signed in")
	return next
}

// Logout clears both storage keys and the in-memory session. Calling it with
// no active session still clears storage.
func (s *SessionService) Logout(ctx context.Context) {
	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("clear session storage")
	}

	s.mu.RLock()
	wasActive := s.current.Active()
	s.mu.RUnlock()

	s.set(domain.Session{})
	if wasActive {
		metrics.SessionEventsTotal.WithLabelValues("logout").Inc()
		s.logger.Info().Msg("signed out")
	}
}

// Restore loads the session from storage. Anything short of a well-formed
// pair (user with id and known role, non-empty token) yields the empty
// session and clears storage; a JWT whose exp is in the past is treated the
// same way. Opaque tokens are accepted as is.
func (s *SessionService) Restore(ctx context.Context) domain.Session {
	rec, err := s.storage.Read(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("read session storage")
		s.reject(ctx, "restore_rejected")
		return domain.Session{}
	}
	if rec.Empty() {
		s.set(domain.Session{})
		return domain.Session{}
	}

	user, ok := decodeStoredUser(rec)
	if !ok {
		s.logger.Warn().Bool("has_token", rec.Token != "").Bool("has_user", rec.User != "").Msg("discarding partial session")
		s.reject(ctx, "restore_rejected")
		return domain.Session{}
	}
	if s.tokenExpired(rec.Token) {
		s.logger.Info().Int64("user_id", user.ID).Msg("stored token expired")
		s.reject(ctx, "expired")
		return domain.Session{}
	}

	next := domain.NewSession(user, rec.Token)
	s.set(next)
	metrics.SessionEventsTotal.WithLabelValues("restored").Inc()
	s.logger.Debug().Int64("user_id", user.ID).Msg("session restored")
	return next
}

func (s *SessionService) reject(ctx context.Context, event string) {
	if err := s.storage.Clear(ctx); err != nil {
		s.logger.Error().Err(err).Msg("clear session storage")
	}
	s.set(domain.Session{})
	metrics.SessionEventsTotal.WithLabelValues(event).Inc()
}

func (s *SessionService) set(next domain.Session) {
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()

	s.lmu.Lock()
	listeners := append([]SessionListener(nil), s.listeners...)
	s.lmu.Unlock()
	for _, fn := range listeners {
		fn(domain.NewSession(next.User, next.Token))
	}
}

func (s *SessionService) tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return !exp.After(s.now())
}

func decodeStoredUser(rec ports.SessionRecord) (*domain.User, bool) {
	if rec.Token == "" || rec.User == "" {
		return nil, false
	}
	var u domain.User
	if err := json.Unmarshal([]byte(rec.User), &u); err != nil {
		return nil, false
	}
	if u.ID == 0 || !u.Role.Valid() {
		return nil, false
	}
	return &u, true
}
