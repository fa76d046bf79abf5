// Package driven defines the ports the core depends on: persistence for
// accounts and the browser surface used for OAuth redirects.
package driven

import (
	"context"

	"github.com/raksonibs/waffle/internal/core/domain"
)

// AccountStore persists connected calendar accounts. Implementations own the
// record lifecycle; sync code only updates the OAuth bundle and delta token
// through Update.
type AccountStore interface {
	// Create stores a new account. Returns domain.ErrAlreadyExists when an
	// account with the same username is already connected.
	Create(ctx context.Context, account *domain.Account) error

	// Get returns the account for a username.
	// Returns domain.ErrNotFound when no such account exists.
	Get(ctx context.Context, username string) (*domain.Account, error)

	// List returns all connected accounts.
	List(ctx context.Context) ([]domain.Account, error)

	// Update persists changes to an existing account.
	// Returns domain.ErrNotFound when the account does not exist.
	Update(ctx context.Context, account *domain.Account) error

	// Delete removes an account.
	// Returns domain.ErrNotFound when the account does not exist.
	Delete(ctx context.Context, username string) error
}
