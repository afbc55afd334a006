package application

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	gatewayerrors "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/domain/errors"
	gatewayports "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
	domainerrors "github.com/16SULPHUR/courseify/contexts/identity-access/session-service/domain/errors"
	"github.com/16SULPHUR/courseify/contexts/identity-access/session-service/ports"
)

// Service owns per-browser-session auth state. Lifecycle per session:
// anonymous -> authenticated on login/register, back to anonymous on logout or
// failed token verification, with a restoring transient while the persisted
// token is being rehydrated and verified.
type Service struct {
	Store  ports.TokenStore
	Auth   ports.Authenticator
	Clock  ports.Clock
	Logger *slog.Logger

	mu   sync.Mutex
	live map[string]*entry
}

type entry struct {
	state ports.State
	token string
	user  *gatewayports.User
}

func NewService(store ports.TokenStore, auth ports.Authenticator, clock ports.Clock, logger *slog.Logger) *Service {
	return &Service{
		Store:  store,
		Auth:   auth,
		Clock:  clock,
		Logger: logger,
		live:   make(map[string]*entry),
	}
}

// Current returns the session snapshot, restoring from persisted state on the
// session's first touch. Restoration verifies the stored token against the
// upstream; a token the upstream rejects destroys the persisted session. An
// upstream that cannot be reached leaves the session in the restoring state
// so the next request retries instead of flashing a login redirect.
func (s *Service) Current(ctx context.Context, sessionID string) ports.Snapshot {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return ports.Snapshot{State: ports.StateAnonymous}
	}

	s.mu.Lock()
	if e, ok := s.live[sessionID]; ok {
		snapshot := e.snapshot()
		s.mu.Unlock()
		return snapshot
	}
	restoring := &entry{state: ports.StateRestoring}
	s.live[sessionID] = restoring
	s.mu.Unlock()

	return s.restore(ctx, sessionID)
}

// Peek reports the session state without triggering restoration. Sessions
// never seen by this process report restoring, not anonymous.
func (s *Service) Peek(sessionID string) ports.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.live[sessionID]; ok {
		return e.snapshot()
	}
	return ports.Snapshot{State: ports.StateRestoring}
}

func (s *Service) restore(ctx context.Context, sessionID string) ports.Snapshot {
	record, found, err := s.Store.Get(ctx, sessionID)
	if err != nil || !found || record.Token == "" {
		if err != nil {
			s.logger().Warn("session store read failed",
				"event", "session_restore_store_error",
				"module", "identity-access/session-service",
				"layer", "application",
				"session_id", sessionID,
				"error", err.Error(),
			)
		}
		return s.settle(sessionID, &entry{state: ports.StateAnonymous})
	}

	if tokenExpired(record.Token, s.now()) {
		// Locally provable expiry: skip the network round trip.
		_ = s.Store.Delete(ctx, sessionID)
		s.logger().Info("persisted token expired",
			"event", "session_token_expired",
			"module", "identity-access/session-service",
			"layer", "application",
			"session_id", sessionID,
		)
		return s.settle(sessionID, &entry{state: ports.StateAnonymous})
	}

	user, err := s.Auth.Me(ctx, record.Token)
	if err != nil {
		if errors.Is(err, gatewayerrors.ErrNetwork) {
			// Verification inconclusive: stay restoring and retry on the
			// next request rather than discarding a possibly valid token.
			s.mu.Lock()
			delete(s.live, sessionID)
			s.mu.Unlock()
			return ports.Snapshot{State: ports.StateRestoring}
		}
		_ = s.Store.Delete(ctx, sessionID)
		s.logger().Info("persisted token rejected",
			"event", "session_token_rejected",
			"module", "identity-access/session-service",
			"layer", "application",
			"session_id", sessionID,
		)
		return s.settle(sessionID, &entry{state: ports.StateAnonymous})
	}

	return s.settle(sessionID, &entry{
		state: ports.StateAuthenticated,
		token: record.Token,
		user:  &user,
	})
}

func (s *Service) Login(ctx context.Context, sessionID string, credentials gatewayports.Credentials) (ports.Snapshot, error) {
	if strings.TrimSpace(sessionID) == "" {
		return ports.Snapshot{}, domainerrors.ErrInvalidRequest
	}
	session, err := s.Auth.Login(ctx, credentials)
	if err != nil {
		return ports.Snapshot{}, err
	}
	return s.adopt(ctx, sessionID, session)
}

func (s *Service) Register(ctx context.Context, sessionID string, input gatewayports.RegisterInput) (ports.Snapshot, error) {
	if strings.TrimSpace(sessionID) == "" {
		return ports.Snapshot{}, domainerrors.ErrInvalidRequest
	}
	session, err := s.Auth.Register(ctx, input)
	if err != nil {
		return ports.Snapshot{}, err
	}
	return s.adopt(ctx, sessionID, session)
}

func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return domainerrors.ErrInvalidRequest
	}
	if err := s.Store.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.settle(sessionID, &entry{state: ports.StateAnonymous})
	s.logger().Info("session logged out",
		"event", "session_logged_out",
		"module", "identity-access/session-service",
		"layer", "application",
		"session_id", sessionID,
	)
	return nil
}

// BearerToken implements the gateway's token source: authenticated outbound
// calls pick up the token of the session carried by the request context. No
// token is not a local failure; the upstream owns authorization.
func (s *Service) BearerToken(ctx context.Context) string {
	sessionID := ports.SessionIDFromContext(ctx)
	if sessionID == "" {
		return ""
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.live[sessionID]; ok && e.state == ports.StateAuthenticated {
		return e.token
	}
	return ""
}

func (s *Service) adopt(ctx context.Context, sessionID string, session gatewayports.AuthSession) (ports.Snapshot, error) {
	userJSON, err := json.Marshal(session.User)
	if err != nil {
		return ports.Snapshot{}, err
	}
	if err := s.Store.Put(ctx, ports.SessionRecord{
		SessionID:     sessionID,
		Token:         session.Token,
		UserJSON:      userJSON,
		Authenticated: true,
		UpdatedAt:     s.now(),
	}); err != nil {
		return ports.Snapshot{}, err
	}
	user := session.User
	snapshot := s.settle(sessionID, &entry{
		state: ports.StateAuthenticated,
		token: session.Token,
		user:  &user,
	})
	s.logger().Info("session authenticated",
		"event", "session_authenticated",
		"module", "identity-access/session-service",
		"layer", "application",
		"session_id", sessionID,
		"user_id", user.UserID,
	)
	return snapshot, nil
}

func (s *Service) settle(sessionID string, e *entry) ports.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live[sessionID] = e
	return e.snapshot()
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now().UTC()
	}
	return s.Clock.Now().UTC()
}

func (s *Service) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (e *entry) snapshot() ports.Snapshot {
	snapshot := ports.Snapshot{State: e.state, Token: e.token}
	if e.user != nil {
		user := *e.user
		snapshot.User = &user
	}
	return snapshot
}

// tokenExpired reports whether the token is a JWT whose exp claim is provably
// in the past. Opaque tokens are left for the upstream to judge.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return false
	}
	return claims.ExpiresAt != nil && claims.ExpiresAt.Before(now)
}
