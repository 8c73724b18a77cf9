package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/colorbulb/nexteliteweb2/pkg/models"
)

const (
	DefaultTTL = 12 * time.Hour
	issuer     = "academy"
)

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Manager issues HS256 session tokens for users accepted by a Provider and
// notifies subscribers when a session starts or ends.
type Manager struct {
	provider Provider
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
	newID    models.IDGenerator

	mu      sync.Mutex
	revoked map[string]time.Time
	subs    map[int]func(*User)
	nextSub int
}

type ManagerOption func(*Manager)

func WithTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) { m.ttl = ttl }
}

func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(gen models.IDGenerator) ManagerOption {
	return func(m *Manager) { m.newID = gen }
}

func NewManager(provider Provider, secret []byte, opts ...ManagerOption) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	m := &Manager{
		provider: provider,
		secret:   secret,
		ttl:      DefaultTTL,
		now:      time.Now,
		newID:    models.UUIDGenerator,
		revoked:  make(map[string]time.Time),
		subs:     make(map[int]func(*User)),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// SignIn checks the credentials and issues a session token.
func (m *Manager) SignIn(ctx context.Context, email, password string) (Session, error) {
	user, err := m.provider.SignIn(ctx, email, password)
	if err != nil {
		return Session{}, err
	}
	now := m.now()
	exp := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        m.newID(),
			Issuer:    issuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	m.notify(&user)
	return Session{Token: signed, User: user, ExpiresAt: exp.Truncate(time.Second)}, nil
}

func (m *Manager) parse(token string) (*claims, error) {
	c := &claims{}
	_, err := jwt.ParseWithClaims(token, c, func(*jwt.Token) (any, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	m.mu.Lock()
	_, revoked := m.revoked[c.ID]
	m.mu.Unlock()
	if revoked {
		return nil, fmt.Errorf("%w: signed out", ErrInvalidToken)
	}
	return c, nil
}

// Validate returns the user a live token was issued to.
func (m *Manager) Validate(token string) (User, error) {
	c, err := m.parse(token)
	if err != nil {
		return User{}, err
	}
	return User{ID: c.Subject, Email: c.Email}, nil
}

// SignOut revokes token for the rest of its lifetime.
func (m *Manager) SignOut(token string) error {
	c, err := m.parse(token)
	if err != nil {
		return err
	}
	now := m.now()
	m.mu.Lock()
	for id, exp := range m.revoked {
		if now.After(exp) {
			delete(m.revoked, id)
		}
	}
	m.revoked[c.ID] = c.ExpiresAt.Time
	m.mu.Unlock()
	m.notify(nil)
	return nil
}

// OnSessionChange calls fn with the signed-in user after every sign-in and with
// nil after every sign-out. The returned func unsubscribes.
func (m *Manager) OnSessionChange(fn func(*User)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

func (m *Manager) notify(user *User) {
	m.mu.Lock()
	subs := make([]func(*User), 0, len(m.subs))
	for _, fn := range m.subs {
		subs = append(subs, fn)
	}
	m.mu.Unlock()
	for _, fn := range subs {
		if user == nil {
			fn(nil)
			continue
		}
		u := *user
		fn(&u)
	}
}
