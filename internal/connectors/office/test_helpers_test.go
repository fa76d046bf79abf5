package office

import (
	"context"
	"fmt"
	"sync"

	"github.com/raksonibs/waffle/internal/core/domain"
	"github.com/raksonibs/waffle/internal/core/ports/driven"
)

// fakeSurface is a scripted auth surface: it replays a fixed sequence of
// navigation URLs after Navigate is called.
type fakeSurface struct {
	urls     []string
	navs     chan string
	closed   chan struct{}
	mu       sync.Mutex
	shut     bool
	navCalls []string
}

func newFakeSurface(urls ...string) *fakeSurface {
	return &fakeSurface{
		urls:   urls,
		navs:   make(chan string, len(urls)+1),
		closed: make(chan struct{}),
	}
}

func (s *fakeSurface) Navigate(url string) error {
	s.mu.Lock()
	s.navCalls = append(s.navCalls, url)
	s.mu.Unlock()

	for _, u := range s.urls {
		s.navs <- u
	}
	return nil
}

func (s *fakeSurface) Navigations() <-chan string { return s.navs }

func (s *fakeSurface) Closed() <-chan struct{} { return s.closed }

func (s *fakeSurface) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shut = true
}

// userClose simulates the user dismissing the window.
func (s *fakeSurface) userClose() {
	close(s.closed)
}

func (s *fakeSurface) wasClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shut
}

func (s *fakeSurface) lastNavigation() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.navCalls) == 0 {
		return ""
	}
	return s.navCalls[len(s.navCalls)-1]
}

// fakeOpener hands out a prepared surface and records visibility requests.
type fakeOpener struct {
	surface   *fakeSurface
	mu        sync.Mutex
	visible   []bool
	openCount int
}

func (o *fakeOpener) Open(_ context.Context, visible bool) (driven.AuthSurface, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.visible = append(o.visible, visible)
	o.openCount++
	return o.surface, nil
}

// memStore is an in-memory account store.
type memStore struct {
	mu       sync.Mutex
	accounts map[string]*domain.Account
	updates  int
}

func newMemStore() *memStore {
	return &memStore{accounts: make(map[string]*domain.Account)}
}

func (m *memStore) Create(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[account.Username]; ok {
		return fmt.Errorf("account %q: %w", account.Username, domain.ErrAlreadyExists)
	}
	cp := *account
	m.accounts[account.Username] = &cp
	return nil
}

func (m *memStore) Get(_ context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	account, ok := m.accounts[username]
	if !ok {
		return nil, fmt.Errorf("account %q: %w", username, domain.ErrNotFound)
	}
	cp := *account
	return &cp, nil
}

func (m *memStore) List(_ context.Context) ([]domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Account, 0, len(m.accounts))
	for _, account := range m.accounts {
		out = append(out, *account)
	}
	return out, nil
}

func (m *memStore) Update(_ context.Context, account *domain.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates++
	cp := *account
	// Reauthentication may rename the username; store under the new key.
	for username, existing := range m.accounts {
		if existing.ID == account.ID && username != account.Username {
			delete(m.accounts, username)
		}
	}
	m.accounts[account.Username] = &cp
	return nil
}

func (m *memStore) Delete(_ context.Context, username string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.accounts[username]; !ok {
		return fmt.Errorf("account %q: %w", username, domain.ErrNotFound)
	}
	delete(m.accounts, username)
	return nil
}

// fakeReauthenticator scripts the engine's silent reauth path.
type fakeReauthenticator struct {
	mu     sync.Mutex
	bundle *domain.TokenBundle
	err    error
	calls  []string
}

func (f *fakeReauthenticator) Authenticate(_ context.Context, existingUser string) (*domain.TokenBundle, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, existingUser)
	if f.err != nil {
		return nil, f.err
	}
	return f.bundle, nil
}

func (f *fakeReauthenticator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}
