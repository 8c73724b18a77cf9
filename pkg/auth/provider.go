// Package auth signs admins in and out and tracks their session tokens.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired session token")
)

type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// Provider verifies credentials. Errors are shown to the user as is.
type Provider interface {
	SignIn(ctx context.Context, email, password string) (User, error)
}

// PasswordProvider checks passwords against bcrypt hashes of a fixed set of
// admin accounts.
type PasswordProvider struct {
	mu     sync.RWMutex
	hashes map[string][]byte
}

func NewPasswordProvider() *PasswordProvider {
	return &PasswordProvider{hashes: make(map[string][]byte)}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AddAccount registers email with an existing bcrypt hash.
func (p *PasswordProvider) AddAccount(email, hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("invalid password hash for %s: %w", email, err)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.hashes[normalizeEmail(email)] = []byte(hash)
	return nil
}

// AddPassword hashes password and registers it for email.
func (p *PasswordProvider) AddPassword(email, password string, cost int) error {
	hash, err := HashPassword(password, cost)
	if err != nil {
		return err
	}
	return p.AddAccount(email, hash)
}

func (p *PasswordProvider) SignIn(_ context.Context, email, password string) (User, error) {
	email = normalizeEmail(email)
	p.mu.RLock()
	hash, ok := p.hashes[email]
	p.mu.RUnlock()
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return User{ID: email, Email: email}, nil
}

// HashPassword returns the bcrypt hash of password. A zero cost uses
// bcrypt.DefaultCost.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
