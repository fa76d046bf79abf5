// Package driving defines the ports through which user-facing adapters drive
// the core.
package driving

import (
	"context"
	"time"

	"github.com/raksonibs/waffle/internal/core/domain"
)

// CalendarService is the consumer-facing entry point for account management
// and calendar synchronisation.
type CalendarService interface {
	// AddAccount runs an interactive authorization round-trip and stores
	// the resulting account. Returns office.ErrAuthCancelled when the user
	// dismisses the authorization window.
	AddAccount(ctx context.Context) (*domain.Account, error)

	// CalendarView fetches events between start and end for a connected
	// account, applying delta sync according to opts. The account's stored
	// delta token is updated when the provider issues a new one.
	CalendarView(
		ctx context.Context,
		start, end time.Time,
		username string,
		opts domain.SyncOptions,
	) (*domain.SyncResult, error)

	// Accounts lists the connected accounts.
	Accounts(ctx context.Context) ([]domain.Account, error)

	// RemoveAccount disconnects an account.
	RemoveAccount(ctx context.Context, username string) error
}
