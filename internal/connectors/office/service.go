package office

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/raksonibs/waffle/internal/core/domain"
	"github.com/raksonibs/waffle/internal/core/ports/driven"
	"github.com/raksonibs/waffle/internal/core/ports/driving"
	"github.com/raksonibs/waffle/internal/logger"
)

// Ensure Service implements the driving port.
var _ driving.CalendarService = (*Service)(nil)

// accountDisplayName is the label given to newly connected accounts.
const accountDisplayName = "Office 365"

// Service composes the authenticator and sync engine into the two entry
// points consumers call: AddAccount and CalendarView.
type Service struct {
	cfg      *Config
	auth     *Authenticator
	engine   *Engine
	accounts driven.AccountStore
}

// NewService creates the Office 365 calendar service.
func NewService(cfg *Config, surfaces driven.SurfaceOpener, accounts driven.AccountStore) *Service {
	auth := NewAuthenticator(cfg.OAuth, surfaces)
	return &Service{
		cfg:      cfg,
		auth:     auth,
		engine:   NewEngine(cfg, auth, accounts),
		accounts: accounts,
	}
}

// AddAccount runs an interactive authorization round-trip and stores the
// resulting account, identified by the email carried in the id_token.
func (s *Service) AddAccount(ctx context.Context) (*domain.Account, error) {
	bundle, err := s.auth.Authenticate(ctx, "")
	if err != nil {
		return nil, err
	}
	if bundle.IDToken == "" {
		return nil, fmt.Errorf("office: authorization response carried no id_token")
	}

	email, err := EmailFromIDToken(bundle.IDToken)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:        uuid.NewString(),
		Name:      accountDisplayName,
		Username:  email,
		Strategy:  domain.StrategyOffice,
		OAuth:     bundle,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("office: store account: %w", err)
	}

	logger.Info("office: connected account %s", account.Username)
	return account, nil
}

// CalendarView fetches the event window for a connected account and persists
// the delta token captured during the run.
func (s *Service) CalendarView(
	ctx context.Context,
	start, end time.Time,
	username string,
	opts domain.SyncOptions,
) (*domain.SyncResult, error) {
	account, err := s.accounts.Get(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("office: load account %q: %w", username, err)
	}

	result, err := s.engine.CalendarView(ctx, start, end, account, opts)
	if err != nil {
		return nil, err
	}

	if result.DeltaToken != account.DeltaToken {
		account.DeltaToken = result.DeltaToken
		if err := s.accounts.Update(ctx, account); err != nil {
			logger.Warn("office: persisting delta token for %s failed: %v", username, err)
		}
	}

	return result, nil
}

// Accounts lists the connected accounts.
func (s *Service) Accounts(ctx context.Context) ([]domain.Account, error) {
	return s.accounts.List(ctx)
}

// RemoveAccount disconnects an account.
func (s *Service) RemoveAccount(ctx context.Context, username string) error {
	return s.accounts.Delete(ctx, username)
}
