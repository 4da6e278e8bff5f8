package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"vidtok/internal/core/domain"
	"vidtok/internal/core/ports"
)

type account struct {
	user     *domain.User
	password string
}

type MemoryUserRepository struct {
	mu       sync.RWMutex
	accounts map[string]account // keyed by lowercased email
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		accounts: make(map[string]account),
	}
}

// SeedDemoUser registers the fixed demo account (demo@example.com / 123456).
func (r *MemoryUserRepository) SeedDemoUser() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.accounts["demo@example.com"] = account{
		user: &domain.User{
			ID:        "demo",
			Username:  "demo_user",
			Email:     "demo@example.com",
			Avatar:    "https://api.dicebear.com/7.x/avataaars/svg?seed=demo_user",
			CreatedAt: time.Now(),
		},
		password: "123456",
	}
}

func (r *MemoryUserRepository) Create(ctx context.Context, user *domain.User, password string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, exists := r.accounts[key]; exists {
		return fmt.Errorf("account already exists: %s", user.Email)
	}

	r.accounts[key] = account{user: user, password: password}
	return nil
}

func (r *MemoryUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, exists := r.accounts[strings.ToLower(email)]
	if !exists {
		return nil, domain.ErrUserNotFound
	}
	return acc.user, nil
}

func (r *MemoryUserRepository) VerifyPassword(ctx context.Context, email, password string) (*domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	acc, exists := r.accounts[strings.ToLower(email)]
	if !exists || acc.password != password {
		return nil, false
	}
	return acc.user, true
}

var _ ports.UserRepository = (*MemoryUserRepository)(nil)
