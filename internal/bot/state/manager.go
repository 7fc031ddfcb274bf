package state

import (
	"context"
	"sync"
	"time"

	"github.com/Cinemaker123/nutrition-tracker/internal/domain"
)

// Chat states
const (
	None               = "none"
	WaitingForPassword = "waiting_for_password"
	WaitingForFood     = "waiting_for_food"
)

// StateManager keeps per-chat bot state: the conversation step, whether the
// chat passed /login and which date it is looking at.
type StateManager interface {
	SetUserState(ctx context.Context, chatID int64, state string) error
	GetUserState(ctx context.Context, chatID int64) (string, error)

	Authorize(ctx context.Context, chatID int64, ttl time.Duration) error
	IsAuthorized(ctx context.Context, chatID int64) (bool, error)
	Revoke(ctx context.Context, chatID int64) error

	SetSelectedDate(ctx context.Context, chatID int64, date domain.Date) error
	// SelectedDate reports false when the chat never picked a date
	SelectedDate(ctx context.Context, chatID int64) (domain.Date, bool, error)

	Close() error
}

// Manager keeps chat state in memory
type Manager struct {
	userStates map[int64]string
	authUntil  map[int64]time.Time
	dates      map[int64]domain.Date
	now        func() time.Time
	mu         sync.RWMutex
}

var _ StateManager = (*Manager)(nil)

// NewManager creates a new state manager
func NewManager() *Manager {
	return &Manager{
		userStates: make(map[int64]string),
		authUntil:  make(map[int64]time.Time),
		dates:      make(map[int64]domain.Date),
		now:        time.Now,
	}
}

// WithClock replaces the time source used for authorization expiry
func (m *Manager) WithClock(now func() time.Time) *Manager {
	m.now = now
	return m
}

// SetUserState sets the state for a chat. None clears it.
func (m *Manager) SetUserState(ctx context.Context, chatID int64, state string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if state == None {
		delete(m.userStates, chatID)
		return nil
	}
	m.userStates[chatID] = state
	return nil
}

// GetUserState gets the state for a chat
func (m *Manager) GetUserState(ctx context.Context, chatID int64) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, exists := m.userStates[chatID]
	if !exists {
		return None, nil
	}
	return state, nil
}

func (m *Manager) Authorize(ctx context.Context, chatID int64, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.authUntil[chatID] = m.now().Add(ttl)
	return nil
}

func (m *Manager) IsAuthorized(ctx context.Context, chatID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	until, ok := m.authUntil[chatID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(until) {
		delete(m.authUntil, chatID)
		return false, nil
	}
	return true, nil
}

func (m *Manager) Revoke(ctx context.Context, chatID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.authUntil, chatID)
	return nil
}

func (m *Manager) SetSelectedDate(ctx context.Context, chatID int64, date domain.Date) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dates[chatID] = date
	return nil
}

func (m *Manager) SelectedDate(ctx context.Context, chatID int64) (domain.Date, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	d, ok := m.dates[chatID]
	return d, ok, nil
}

// Close is a no-op for the in-memory manager
func (m *Manager) Close() error {
	return nil
}
