package session

import (
	"context"
	"log"
	"sync"

	"agriscan/internal/dashboard/client"
	"agriscan/internal/models"
)

// Manager owns the authenticated operator state. Every read and write of
// the token or the user goes through it under one mutex, so a logout can
// never race a login.
type Manager struct {
	mu       sync.Mutex
	api      *client.Client
	tokens   client.TokenStore
	user     *models.User
	loading  bool
	initOnce sync.Once
}

func NewManager(api *client.Client, tokens client.TokenStore) *Manager {
	return &Manager{
		api:     api,
		tokens:  tokens,
		loading: true,
	}
}

// Init resolves the persisted token into a user exactly once. A stored
// token with a failing profile fetch leaves the manager unauthenticated
// with the token cleared.
func (m *Manager) Init(ctx context.Context) {
	m.initOnce.Do(func() {
		defer func() {
			m.mu.Lock()
			m.loading = false
			m.mu.Unlock()
		}()

		if _, ok := m.tokens.Token(); !ok {
			return
		}
		user, err := m.api.GetProfile(ctx)
		if err != nil {
			log.Printf("Stored token did not resolve to a profile: %v", err)
			if err := m.tokens.Clear(); err != nil {
				log.Printf("failed to clear persisted token: %v", err)
			}
			return
		}
		m.mu.Lock()
		m.user = user
		m.mu.Unlock()
	})
}

// Login authenticates and populates the user. The token is persisted by
// the client on success.
func (m *Manager) Login(ctx context.Context, phone, password string) (*models.User, error) {
	data, err := m.api.Login(ctx, phone, password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		UserID:   data.UserID,
		Phone:    data.Phone,
		FullName: data.FullName,
		Role:     data.Role,
	}
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return user, nil
}

// Logout clears the persisted token and forgets the user. Backend session
// revocation is best effort.
func (m *Manager) Logout(ctx context.Context) {
	if err := m.api.Logout(ctx); err != nil {
		log.Printf("Backend logout failed: %v", err)
	}
	m.mu.Lock()
	m.user = nil
	m.mu.Unlock()
	if err := m.tokens.Clear(); err != nil {
		log.Printf("failed to clear persisted token: %v", err)
	}
}

func (m *Manager) UpdateProfile(ctx context.Context, req *models.UpdateProfileRequest) (*models.User, error) {
	user, err := m.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.user = user
	m.mu.Unlock()
	return user, nil
}

func (m *Manager) CurrentUser() *models.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

func (m *Manager) IsAuthenticated() bool {
	return m.CurrentUser() != nil
}

func (m *Manager) Loading() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loading
}
