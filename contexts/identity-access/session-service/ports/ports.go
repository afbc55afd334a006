package ports

import (
	"context"
	"time"

	gatewayports "github.com/16SULPHUR/courseify/contexts/catalog-experience/catalog-gateway/ports"
)

type State int

const (
	// StateRestoring covers the window between first touch and the outcome of
	// token verification. Protected views must neither redirect nor render
	// privileged content while a session is restoring.
	StateRestoring State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAuthenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Snapshot is an immutable view of one browser session's auth state.
type Snapshot struct {
	State State
	Token string
	User  *gatewayports.User
}

func (s Snapshot) Authenticated() bool {
	return s.State == StateAuthenticated
}

// SessionRecord is the persisted bundle: token, serialized user, and the
// authenticated flag, each survives process restarts.
type SessionRecord struct {
	SessionID     string
	Token         string
	UserJSON      []byte
	Authenticated bool
	UpdatedAt     time.Time
}

type TokenStore interface {
	Get(ctx context.Context, sessionID string) (SessionRecord, bool, error)
	Put(ctx context.Context, record SessionRecord) error
	Delete(ctx context.Context, sessionID string) error
}

// Authenticator is the slice of the catalog gateway the session service
// needs. Satisfied by the gateway application service.
type Authenticator interface {
	Login(ctx context.Context, credentials gatewayports.Credentials) (gatewayports.AuthSession, error)
	Register(ctx context.Context, input gatewayports.RegisterInput) (gatewayports.AuthSession, error)
	Me(ctx context.Context, token string) (gatewayports.User, error)
}

type Clock interface {
	Now() time.Time
}

type contextKey struct{}

// WithSessionID tags a request context with the browser session id so the
// gateway's token source can resolve the caller without plumbing extra
// parameters through every operation.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, contextKey{}, sessionID)
}

func SessionIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(contextKey{}).(string); ok {
		return v
	}
	return ""
}
